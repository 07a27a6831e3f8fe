// Package engine wraps the external chess rules implementation behind the
// narrow capability the bughouse layer needs. Nothing outside this package
// should assume which library backs it.
package engine

import "github.com/notnil/chess"

// Position is one immutable chess position. Move and Place return a new
// Position and leave the receiver untouched.
type Position interface {
	// PieceAt returns the piece type on sq, or chess.NoPieceType.
	PieceAt(sq chess.Square) chess.PieceType
	// ColorAt returns the color of the piece on sq, or chess.NoColor.
	ColorAt(sq chess.Square) chess.Color
	// SideToMove returns the color whose turn it is.
	SideToMove() chess.Color
	// InCheck reports whether the side to move is in check.
	InCheck() bool
	// Checkers returns the squares of all pieces giving check to the side
	// to move.
	Checkers() []chess.Square
	// IsCheckmate reports whether the side to move is checkmated under
	// standard chess rules. Drops are not part of this judgment.
	IsCheckmate() bool
	// KingSquare returns the square of c's king.
	KingSquare(c chess.Color) chess.Square
	// IsLegal reports whether the standard move src->dst (with optional
	// promotion) is legal in this position.
	IsLegal(src, dst chess.Square, promo chess.PieceType) bool
	// Move applies a legal standard move and returns the new position.
	Move(src, dst chess.Square, promo chess.PieceType) (Position, error)
	// Place puts a piece of the given type and color on an empty square,
	// clears any en passant target and flips the side to move. Placement
	// is not a chess move; it exists for drops.
	Place(pt chess.PieceType, c chess.Color, sq chess.Square) (Position, error)
	// FEN returns the position in FEN text.
	FEN() string
}

// Between returns the squares strictly between a and b when they share a
// rank, file or diagonal, and nil otherwise. Adjacent squares have nothing
// between them.
func Between(a, b chess.Square) []chess.Square {
	df := int(b.File()) - int(a.File())
	dr := int(b.Rank()) - int(a.Rank())
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil
	}
	stepF := sign(df)
	stepR := sign(dr)
	var sqs []chess.Square
	f := int(a.File()) + stepF
	r := int(a.Rank()) + stepR
	for f != int(b.File()) || r != int(b.Rank()) {
		sqs = append(sqs, square(f, r))
		f += stepF
		r += stepR
	}
	return sqs
}

func square(file, rank int) chess.Square {
	return chess.Square(rank*8 + file)
}

func onBoard(file, rank int) bool {
	return file >= 0 && file < 8 && rank >= 0 && rank < 8
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
