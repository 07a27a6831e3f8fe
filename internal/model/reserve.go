package model

import (
	"strings"

	"github.com/notnil/chess"
)

// heldPieceTypes are the droppable piece kinds in holdings order. Kings are
// never held.
var heldPieceTypes = [...]chess.PieceType{
	chess.Pawn, chess.Knight, chess.Bishop, chess.Rook, chess.Queen,
}

// Reserve counts the pieces each color holds for dropping. The zero value
// is an empty reserve; Reserve is a comparable value type.
type Reserve struct {
	counts [2][len(heldPieceTypes)]uint8
}

// parseReserve reads a holdings segment: one letter per held unit,
// uppercase for white, lowercase for black, drawn from {p,n,b,r,q}. The
// empty string means empty holdings.
func parseReserve(s string) (Reserve, error) {
	var r Reserve
	for _, ch := range strings.TrimSpace(s) {
		color := chess.White
		letter := ch
		if ch >= 'a' && ch <= 'z' {
			color = chess.Black
		} else {
			letter = ch + ('a' - 'A')
		}
		pt := pieceTypeFromLetter(byte(letter))
		if heldIndex(pt) < 0 {
			return Reserve{}, &ParseError{What: "holdings", Text: s}
		}
		r.Add(color, pt)
	}
	return r, nil
}

// HasPiece reports whether color holds at least one piece of the type.
func (r Reserve) HasPiece(c chess.Color, pt chess.PieceType) bool {
	return r.Count(c, pt) > 0
}

// Count returns the number of held pieces of the type, zero for types that
// are never held.
func (r Reserve) Count(c chess.Color, pt chess.PieceType) int {
	i := heldIndex(pt)
	if i < 0 {
		return 0
	}
	return int(r.counts[colorIndex(c)][i])
}

// Remove takes one piece of the type out of color's holdings. It fails
// without side effects when the count is zero.
func (r *Reserve) Remove(c chess.Color, pt chess.PieceType) error {
	i := heldIndex(pt)
	if i < 0 || r.counts[colorIndex(c)][i] == 0 {
		return &InsufficientReserveError{Color: c, Piece: pt}
	}
	r.counts[colorIndex(c)][i]--
	return nil
}

// Add puts one piece of the type into color's holdings. There is no upper
// bound. Types that can never be held (kings) are ignored.
func (r *Reserve) Add(c chess.Color, pt chess.PieceType) {
	i := heldIndex(pt)
	if i < 0 {
		return
	}
	r.counts[colorIndex(c)][i]++
}

// Empty reports whether neither color holds anything.
func (r Reserve) Empty() bool {
	return r == Reserve{}
}

// String renders the holdings segment in canonical order: white pieces
// first, each color in pawn-to-queen order.
func (r Reserve) String() string {
	var sb strings.Builder
	for ci, c := range [2]chess.Color{chess.White, chess.Black} {
		for pi, pt := range heldPieceTypes {
			letter := letterFromPieceType(pt)
			if c == chess.White {
				letter -= 'a' - 'A'
			}
			for n := 0; n < int(r.counts[ci][pi]); n++ {
				sb.WriteByte(letter)
			}
		}
	}
	return sb.String()
}

func colorIndex(c chess.Color) int {
	if c == chess.Black {
		return 1
	}
	return 0
}

func heldIndex(pt chess.PieceType) int {
	for i, held := range heldPieceTypes {
		if pt == held {
			return i
		}
	}
	return -1
}
