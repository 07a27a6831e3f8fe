package model

import (
	"errors"
	"fmt"

	"github.com/notnil/chess"
)

// Sentinels for errors.Is matching. The concrete error types below carry
// the offending input.
var (
	// ErrIllegalMove matches every move rejected by a legality check.
	ErrIllegalMove = errors.New("illegal move")
	// ErrInsufficientReserve matches the reserve-is-empty sub-case of
	// ErrIllegalMove.
	ErrInsufficientReserve = errors.New("insufficient reserve")
)

// ParseError reports text that could not be understood as a position,
// holdings field, move or game string.
type ParseError struct {
	What string // "board", "holdings", "move" or "game"
	Text string // the offending segment
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse %s: %q", e.What, e.Text)
}

// IllegalMoveError reports a move that failed a legality predicate.
type IllegalMoveError struct {
	Move   Move
	Reason string
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s: %s", e.Move, e.Reason)
}

func (e *IllegalMoveError) Is(target error) bool {
	return target == ErrIllegalMove
}

// InsufficientReserveError reports a drop of a piece the player does not
// hold. It matches both ErrInsufficientReserve and ErrIllegalMove.
type InsufficientReserveError struct {
	Color chess.Color
	Piece chess.PieceType
}

func (e *InsufficientReserveError) Error() string {
	return fmt.Sprintf("%s holds no %s to drop", colorName(e.Color), pieceName(e.Piece))
}

func (e *InsufficientReserveError) Is(target error) bool {
	return target == ErrInsufficientReserve || target == ErrIllegalMove
}

func colorName(c chess.Color) string {
	switch c {
	case chess.White:
		return "white"
	case chess.Black:
		return "black"
	}
	return "no color"
}

func pieceName(pt chess.PieceType) string {
	switch pt {
	case chess.Pawn:
		return "pawn"
	case chess.Knight:
		return "knight"
	case chess.Bishop:
		return "bishop"
	case chess.Rook:
		return "rook"
	case chess.Queen:
		return "queen"
	case chess.King:
		return "king"
	}
	return "no piece"
}
