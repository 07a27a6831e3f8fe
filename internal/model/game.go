package model

import (
	"strings"

	"github.com/notnil/chess"
)

// BoardID addresses one of the two boards of a bughouse game.
type BoardID int

const (
	BoardA BoardID = iota
	BoardB
)

// BoardIDs lists both boards in order.
var BoardIDs = [2]BoardID{BoardA, BoardB}

func (id BoardID) String() string {
	if id == BoardB {
		return "B"
	}
	return "A"
}

// ParseBoardID reads "A" or "B" (case-insensitive).
func ParseBoardID(s string) (BoardID, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "A":
		return BoardA, nil
	case "B":
		return BoardB, nil
	}
	return BoardA, &ParseError{What: "board", Text: s}
}

func (id BoardID) partner() BoardID {
	return 1 - id
}

// Game is one bughouse game: two boards joined by the capture-transfer
// rule. Legality on one board never reads the other; only a successful
// capture mutates the partner board's reserve.
type Game struct {
	boards [2]*Board
}

// NewGame returns a game with both boards in the starting position.
func NewGame() *Game {
	return &Game{boards: [2]*Board{NewBoard(), NewBoard()}}
}

// ParseGame reads two board BFEN strings joined by " | ".
func ParseGame(s string) (*Game, error) {
	aStr, bStr, found := strings.Cut(s, " | ")
	if !found {
		return nil, &ParseError{What: "game", Text: s}
	}
	a, err := ParseBoard(aStr)
	if err != nil {
		return nil, err
	}
	b, err := ParseBoard(bStr)
	if err != nil {
		return nil, err
	}
	return &Game{boards: [2]*Board{a, b}}, nil
}

// Board returns the addressed board.
func (g *Game) Board(id BoardID) *Board {
	return g.boards[id]
}

// MakeMove plays the move on the addressed board. When the move captures,
// the captured piece joins the partner board's reserve under the mover's
// color; a promotion-derived capture reverts to a pawn on the way over. A
// failed move changes nothing on either board. Capture detection reads the
// destination square, so an en passant capture transfers nothing.
func (g *Game) MakeMove(id BoardID, m Move) error {
	board := g.boards[id]
	mover := board.SideToMove()
	dst := m.Dest()
	captured := board.pos.PieceAt(dst)
	capturedColor := board.pos.ColorAt(dst)
	wasPromo := board.promos.IsMarked(capturedColor, dst)

	if err := board.Apply(m); err != nil {
		return err
	}
	if captured != chess.NoPieceType {
		transferred := captured
		if wasPromo {
			transferred = chess.Pawn
		}
		g.boards[id.partner()].addToReserve(mover, transferred)
	}
	return nil
}

// String renders both boards joined by " | ".
func (g *Game) String() string {
	return g.boards[BoardA].String() + " | " + g.boards[BoardB].String()
}
