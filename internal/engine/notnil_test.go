package engine

import (
	"strings"
	"testing"

	"github.com/notnil/chess"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestNewStartingPosition(t *testing.T) {
	pos := New()
	if got := pos.FEN(); got != startFEN {
		t.Errorf("FEN() = %q, want %q", got, startFEN)
	}
	if pos.SideToMove() != chess.White {
		t.Errorf("SideToMove() = %v, want white", pos.SideToMove())
	}
	if pos.PieceAt(chess.E2) != chess.Pawn {
		t.Errorf("PieceAt(e2) = %v, want pawn", pos.PieceAt(chess.E2))
	}
	if pos.ColorAt(chess.E2) != chess.White {
		t.Errorf("ColorAt(e2) = %v, want white", pos.ColorAt(chess.E2))
	}
	if pos.PieceAt(chess.E4) != chess.NoPieceType {
		t.Errorf("PieceAt(e4) = %v, want empty", pos.PieceAt(chess.E4))
	}
	if pos.InCheck() {
		t.Error("InCheck() = true in the starting position")
	}
	if pos.KingSquare(chess.White) != chess.E1 {
		t.Errorf("KingSquare(white) = %v, want e1", pos.KingSquare(chess.White))
	}
}

func TestFromFENRejectsGarbage(t *testing.T) {
	if _, err := FromFEN("not a position"); err == nil {
		t.Error("FromFEN accepted garbage")
	}
}

func TestLegalAndMove(t *testing.T) {
	pos := New()
	if !pos.IsLegal(chess.E2, chess.E4, chess.NoPieceType) {
		t.Error("e2e4 reported illegal in starting position")
	}
	if pos.IsLegal(chess.E2, chess.E5, chess.NoPieceType) {
		t.Error("e2e5 reported legal")
	}

	next, err := pos.Move(chess.E2, chess.E4, chess.NoPieceType)
	if err != nil {
		t.Fatalf("Move(e2e4) error: %v", err)
	}
	if next.SideToMove() != chess.Black {
		t.Errorf("side to move after e2e4 = %v, want black", next.SideToMove())
	}
	if next.PieceAt(chess.E4) != chess.Pawn {
		t.Error("pawn missing from e4 after e2e4")
	}
	// The original position is untouched.
	if pos.PieceAt(chess.E4) != chess.NoPieceType {
		t.Error("Move mutated the receiver")
	}

	if _, err := pos.Move(chess.E2, chess.E5, chess.NoPieceType); err == nil {
		t.Error("Move(e2e5) did not fail")
	}
}

func TestPlace(t *testing.T) {
	pos := New()
	next, err := pos.Place(chess.Knight, chess.White, chess.E5)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	if next.PieceAt(chess.E5) != chess.Knight || next.ColorAt(chess.E5) != chess.White {
		t.Error("placed knight not found on e5")
	}
	if next.SideToMove() != chess.Black {
		t.Errorf("side to move after place = %v, want black", next.SideToMove())
	}
	if !strings.Contains(next.FEN(), "4N3") {
		t.Errorf("FEN after place = %q, want a lone knight rank", next.FEN())
	}
	if pos.PieceAt(chess.E5) != chess.NoPieceType {
		t.Error("Place mutated the receiver")
	}

	if _, err := pos.Place(chess.Knight, chess.White, chess.E2); err == nil {
		t.Error("Place on an occupied square did not fail")
	}
}

func TestPlaceClearsEnPassant(t *testing.T) {
	pos, err := FromFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	if err != nil {
		t.Fatal(err)
	}
	next, err := pos.Place(chess.Knight, chess.Black, chess.E5)
	if err != nil {
		t.Fatalf("Place error: %v", err)
	}
	fields := strings.Fields(next.FEN())
	if fields[3] != "-" {
		t.Errorf("en passant target survived placement: %q", next.FEN())
	}
	if fields[1] != "w" {
		t.Errorf("side to move after place = %q, want w", fields[1])
	}
}

func TestCheckers(t *testing.T) {
	tests := []struct {
		name string
		fen  string
		want []chess.Square
	}{
		{
			name: "no check",
			fen:  startFEN,
			want: nil,
		},
		{
			name: "single rank check",
			fen:  "3k4/8/8/8/8/8/8/K6q w - - 0 1",
			want: []chess.Square{chess.H1},
		},
		{
			name: "double check",
			fen:  "3k4/8/8/8/8/8/2n5/K6q w - - 0 1",
			want: []chess.Square{chess.H1, chess.C2},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos, err := FromFEN(tt.fen)
			if err != nil {
				t.Fatal(err)
			}
			got := pos.Checkers()
			if len(got) != len(tt.want) {
				t.Fatalf("Checkers() = %v, want %v", got, tt.want)
			}
			for _, sq := range tt.want {
				found := false
				for _, g := range got {
					if g == sq {
						found = true
					}
				}
				if !found {
					t.Errorf("Checkers() = %v, missing %s", got, sq)
				}
			}
			if pos.InCheck() != (len(tt.want) > 0) {
				t.Errorf("InCheck() = %v, want %v", pos.InCheck(), len(tt.want) > 0)
			}
		})
	}
}

func TestIsCheckmate(t *testing.T) {
	pos, err := FromFEN("6k1/8/8/8/8/8/5PPP/r5K1 w - - 0 1")
	if err != nil {
		t.Fatal(err)
	}
	if !pos.IsCheckmate() {
		t.Error("back-rank mate not reported as checkmate")
	}

	if New().IsCheckmate() {
		t.Error("starting position reported as checkmate")
	}
}
