package model

import (
	"strings"

	"github.com/notnil/chess"
)

// Move is either a standard move (source, destination, optional promotion)
// or a drop of a held piece onto an empty square. Values are immutable
// once built.
type Move struct {
	src   chess.Square
	dst   chess.Square
	promo chess.PieceType // NoPieceType unless promoting
	piece chess.PieceType // droppable piece, NoPieceType for standard moves
	drop  bool
}

// NewMove builds a standard move. Pass chess.NoPieceType when the move is
// not a promotion.
func NewMove(src, dst chess.Square, promo chess.PieceType) Move {
	return Move{src: src, dst: dst, promo: promo}
}

// NewDrop builds a drop of pt onto dst. Kings can never be dropped; that is
// rejected at legality time.
func NewDrop(pt chess.PieceType, dst chess.Square) Move {
	return Move{dst: dst, piece: pt, drop: true}
}

// ParseMove reads either grammar: a drop "P@e4" (piece letter
// case-insensitive) or a coordinate move "e2e4" / "e7e8q".
func ParseMove(text string) (Move, error) {
	s := strings.TrimSpace(text)
	if i := strings.IndexByte(s, '@'); i >= 0 {
		return parseDrop(s, i)
	}
	if len(s) != 4 && len(s) != 5 {
		return Move{}, &ParseError{What: "move", Text: text}
	}
	src, ok := parseSquare(s[0:2])
	if !ok {
		return Move{}, &ParseError{What: "move", Text: text}
	}
	dst, ok := parseSquare(s[2:4])
	if !ok {
		return Move{}, &ParseError{What: "move", Text: text}
	}
	promo := chess.NoPieceType
	if len(s) == 5 {
		promo = pieceTypeFromLetter(lower(s[4]))
		switch promo {
		case chess.Knight, chess.Bishop, chess.Rook, chess.Queen:
		default:
			return Move{}, &ParseError{What: "move", Text: text}
		}
	}
	return NewMove(src, dst, promo), nil
}

func parseDrop(s string, at int) (Move, error) {
	if at != 1 || len(s) != 4 {
		return Move{}, &ParseError{What: "move", Text: s}
	}
	pt := pieceTypeFromLetter(lower(s[0]))
	if heldIndex(pt) < 0 {
		return Move{}, &ParseError{What: "move", Text: s}
	}
	dst, ok := parseSquare(s[2:4])
	if !ok {
		return Move{}, &ParseError{What: "move", Text: s}
	}
	return NewDrop(pt, dst), nil
}

// IsDrop reports whether the move has no source square.
func (m Move) IsDrop() bool { return m.drop }

// Source returns the source square of a standard move. It is meaningless
// for drops; check IsDrop first.
func (m Move) Source() chess.Square { return m.src }

// Dest returns the destination square.
func (m Move) Dest() chess.Square { return m.dst }

// Promo returns the promotion piece type, chess.NoPieceType when absent.
func (m Move) Promo() chess.PieceType { return m.promo }

// DropPiece returns the dropped piece type, chess.NoPieceType for standard
// moves.
func (m Move) DropPiece() chess.PieceType { return m.piece }

// String renders canonical move text: uppercase piece letter for drops,
// lowercase squares and promotion letter otherwise.
func (m Move) String() string {
	if m.drop {
		letter := letterFromPieceType(m.piece) - ('a' - 'A')
		return string(letter) + "@" + m.dst.String()
	}
	s := m.src.String() + m.dst.String()
	if m.promo != chess.NoPieceType {
		s += string(letterFromPieceType(m.promo))
	}
	return s
}

func parseSquare(s string) (chess.Square, bool) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, false
	}
	return chess.Square(int(s[1]-'1')*8 + int(s[0]-'a')), true
}

func lower(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}

func pieceTypeFromLetter(b byte) chess.PieceType {
	switch b {
	case 'p':
		return chess.Pawn
	case 'n':
		return chess.Knight
	case 'b':
		return chess.Bishop
	case 'r':
		return chess.Rook
	case 'q':
		return chess.Queen
	case 'k':
		return chess.King
	}
	return chess.NoPieceType
}

func letterFromPieceType(pt chess.PieceType) byte {
	switch pt {
	case chess.Pawn:
		return 'p'
	case chess.Knight:
		return 'n'
	case chess.Bishop:
		return 'b'
	case chess.Rook:
		return 'r'
	case chess.Queen:
		return 'q'
	case chess.King:
		return 'k'
	}
	return '?'
}
