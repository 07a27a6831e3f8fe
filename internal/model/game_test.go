package model

import (
	"errors"
	"testing"

	"github.com/notnil/chess"
)

func TestNewGameString(t *testing.T) {
	g := NewGame()
	if got, want := g.String(), startBFEN+" | "+startBFEN; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseGameRejectsMissingSeparator(t *testing.T) {
	_, err := ParseGame(startBFEN)
	if err == nil {
		t.Fatal("ParseGame without separator succeeded")
	}
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Errorf("error %v is not a ParseError", err)
	}
}

func TestOpeningMoves(t *testing.T) {
	g := NewGame()
	if err := g.MakeMove(BoardA, mustMove(t, "e2e4")); err != nil {
		t.Fatalf("e2e4: %v", err)
	}
	if g.Board(BoardA).SideToMove() != chess.Black {
		t.Error("board A side to move did not flip")
	}
	if g.Board(BoardB).SideToMove() != chess.White {
		t.Error("board B was touched by a move on board A")
	}
	if err := g.MakeMove(BoardA, mustMove(t, "e7e5")); err != nil {
		t.Fatalf("e7e5: %v", err)
	}
	if !g.Board(BoardA).Reserve().Empty() || !g.Board(BoardB).Reserve().Empty() {
		t.Error("capture-free moves changed a reserve")
	}
}

func TestCaptureTransfersToPartnerBoard(t *testing.T) {
	g, err := ParseGame("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1 | " + startBFEN)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.MakeMove(BoardA, mustMove(t, "e4d5")); err != nil {
		t.Fatalf("e4xd5: %v", err)
	}

	var want Reserve
	want.Add(chess.White, chess.Knight)
	if got := g.Board(BoardB).Reserve(); got != want {
		t.Errorf("board B reserve = %v, want exactly one white knight", got)
	}
	if !g.Board(BoardA).Reserve().Empty() {
		t.Error("capturing board's own reserve changed")
	}
}

func TestFailedMoveLeavesPartnerUntouched(t *testing.T) {
	g, err := ParseGame("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1 | " + startBFEN)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.MakeMove(BoardA, mustMove(t, "e4e6")); err == nil {
		t.Fatal("illegal move succeeded")
	}
	if !g.Board(BoardB).Reserve().Empty() {
		t.Error("failed move mutated the partner reserve")
	}
}

func TestPromotionReversion(t *testing.T) {
	g, err := ParseGame("4k3/7P/8/q7/8/8/8/3K4 w - - 0 1 | " + startBFEN)
	if err != nil {
		t.Fatal(err)
	}
	moves := []string{
		"h7h8q", // promotion, marks h8
		"e8e7",  // king steps out of the rank-8 check
		"h8h5",  // marker follows the queen
		"a5h5",  // promoted queen is captured
	}
	for _, text := range moves {
		if err := g.MakeMove(BoardA, mustMove(t, text)); err != nil {
			t.Fatalf("%s: %v", text, err)
		}
	}

	// The queen reverts to a pawn on the way into the partner reserve.
	var want Reserve
	want.Add(chess.Black, chess.Pawn)
	if got := g.Board(BoardB).Reserve(); got != want {
		t.Errorf("board B reserve = %v, want exactly one black pawn", got)
	}
	if g.Board(BoardA).Promotions() != (Promotions{}) {
		t.Error("capture left a stale promotion marker")
	}
}

func TestPromotionMarkerFollowsQueen(t *testing.T) {
	g, err := ParseGame("4k3/7P/8/q7/8/8/8/3K4 w - - 0 1 | " + startBFEN)
	if err != nil {
		t.Fatal(err)
	}
	if err := g.MakeMove(BoardA, mustMove(t, "h7h8q")); err != nil {
		t.Fatal(err)
	}
	if !g.Board(BoardA).Promotions().IsMarked(chess.White, chess.H8) {
		t.Error("promotion square not marked")
	}
	if err := g.MakeMove(BoardA, mustMove(t, "e8e7")); err != nil {
		t.Fatal(err)
	}
	if err := g.MakeMove(BoardA, mustMove(t, "h8h5")); err != nil {
		t.Fatal(err)
	}
	promos := g.Board(BoardA).Promotions()
	if promos.IsMarked(chess.White, chess.H8) || !promos.IsMarked(chess.White, chess.H5) {
		t.Error("marker did not follow the promoted queen")
	}
}

func TestShortBughouseGame(t *testing.T) {
	g := NewGame()
	moves := []struct {
		board BoardID
		text  string
	}{
		{BoardA, "e2e4"},
		{BoardA, "e7e5"},
		{BoardA, "f1c4"},
		{BoardA, "b8c6"},
		{BoardA, "c4f7"}, // bishop takes the f7 pawn
		{BoardA, "e8f7"}, // king takes the bishop
		{BoardA, "g1f3"},
		{BoardA, "f7e8"},
		{BoardA, "f3g5"},
		{BoardA, "g8e7"},
		{BoardB, "e2e4"},
		{BoardB, "d7d5"},
		{BoardB, "e4d5"}, // white wins a pawn for board A
		{BoardB, "d8d5"}, // black wins a pawn for board A
	}
	for _, mv := range moves {
		if err := g.MakeMove(mv.board, mustMove(t, mv.text)); err != nil {
			t.Fatalf("%s on board %s: %v", mv.text, mv.board, err)
		}
	}

	if g.Board(BoardA).IsMated() {
		t.Fatal("board A mated before the final drop")
	}

	var wantA Reserve
	wantA.Add(chess.White, chess.Pawn)
	wantA.Add(chess.Black, chess.Pawn)
	if got := g.Board(BoardA).Reserve(); got != wantA {
		t.Errorf("board A reserve = %v, want one pawn per color", got)
	}
	var wantB Reserve
	wantB.Add(chess.White, chess.Pawn)
	wantB.Add(chess.Black, chess.Bishop)
	if got := g.Board(BoardB).Reserve(); got != wantB {
		t.Errorf("board B reserve = %v, want white pawn and black bishop", got)
	}

	// The dropped pawn delivers an unblockable adjacent check.
	if err := g.MakeMove(BoardA, mustMove(t, "P@f7")); err != nil {
		t.Fatalf("P@f7: %v", err)
	}
	if !g.Board(BoardA).IsMated() {
		t.Error("board A not mated after the pawn drop")
	}
}
