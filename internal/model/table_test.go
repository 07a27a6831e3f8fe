package model

import (
	"testing"
)

func TestAddPlayerSeatOrder(t *testing.T) {
	table := NewTable("t1")

	want := []struct {
		player string
		seat   Seat
	}{
		{"p1", SeatWhiteA},
		{"p2", SeatBlackB},
		{"p3", SeatBlackA},
		{"p4", SeatWhiteB},
	}
	for _, w := range want {
		seat, err := table.AddPlayer(w.player)
		if err != nil {
			t.Fatalf("AddPlayer(%s): %v", w.player, err)
		}
		if seat != w.seat {
			t.Errorf("AddPlayer(%s) = %s, want %s", w.player, seat, w.seat)
		}
	}

	if _, err := table.AddPlayer("p5"); err == nil {
		t.Error("fifth player was seated at a full table")
	}
}

func TestAddPlayerIdempotent(t *testing.T) {
	table := NewTable("t1")

	first, err := table.AddPlayer("p1")
	if err != nil {
		t.Fatal(err)
	}
	again, err := table.AddPlayer("p1")
	if err != nil {
		t.Fatal(err)
	}
	if first != again {
		t.Errorf("re-adding a player moved them from %s to %s", first, again)
	}
	if !table.IsPlayerSeated("p1") {
		t.Error("seated player not reported as seated")
	}
	if table.IsPlayerSeated("p2") {
		t.Error("unknown player reported as seated")
	}
}

func TestMakeMoveRequiresSeat(t *testing.T) {
	table := NewTable("t1")
	for _, id := range []string{"p1", "p2", "p3", "p4"} {
		if _, err := table.AddPlayer(id); err != nil {
			t.Fatal(err)
		}
	}

	// p1 holds white on board A, p3 black on board A.
	if err := table.MakeMove("p3", BoardA, mustMove(t, "e2e4")); err == nil {
		t.Error("black's player moved for white")
	}
	if err := table.MakeMove("p1", BoardB, mustMove(t, "e2e4")); err == nil {
		t.Error("board A's player moved on board B")
	}
	if err := table.MakeMove("p1", BoardA, mustMove(t, "e2e4")); err != nil {
		t.Errorf("seated player on turn: %v", err)
	}
	if err := table.MakeMove("p1", BoardA, mustMove(t, "d2d4")); err == nil {
		t.Error("white's player moved twice in a row")
	}
	if err := table.MakeMove("p3", BoardA, mustMove(t, "e7e5")); err != nil {
		t.Errorf("black's reply: %v", err)
	}
	if err := table.MakeMove("p4", BoardB, mustMove(t, "g1f3")); err != nil {
		t.Errorf("board B opening: %v", err)
	}

	state := table.GetState()
	if state.BoardA.ToMove != "white" {
		t.Errorf("board A to move = %q after two plies, want white", state.BoardA.ToMove)
	}
	if state.BoardB.ToMove != "black" {
		t.Errorf("board B to move = %q after one ply, want black", state.BoardB.ToMove)
	}
	if len(state.Players) != 4 {
		t.Errorf("state lists %d players, want 4", len(state.Players))
	}
}

func TestMoveRejectedAtUnseatedTable(t *testing.T) {
	table := NewTable("t1")
	if err := table.MakeMove("ghost", BoardA, mustMove(t, "e2e4")); err == nil {
		t.Error("move accepted with nobody seated")
	}
}
