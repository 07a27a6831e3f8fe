package model

import (
	"strings"

	"github.com/bughouse/bughouse-backend/internal/engine"
	"github.com/notnil/chess"
)

// Board is one playable bughouse board: a chess position owned by the
// external engine plus the reserve and promotion markers this layer adds.
// A rejected Apply leaves the Board unchanged.
type Board struct {
	pos     engine.Position
	reserve Reserve
	promos  Promotions
}

// NewBoard returns the standard starting position with empty reserves and
// no promotion markers.
func NewBoard() *Board {
	return &Board{pos: engine.New()}
}

// ParseBoard reads a single-board BFEN string: a FEN whose piece-placement
// field may carry `~` promotion markers and may be followed by a ninth
// `/`-separated segment of holdings letters. Trailing time fields are
// accepted and ignored.
func ParseBoard(s string) (*Board, error) {
	slashes := strings.Count(s, "/")
	if slashes < 7 || slashes > 8 {
		return nil, &ParseError{What: "board", Text: s}
	}
	space := strings.IndexByte(s, ' ')
	if space < 0 {
		return nil, &ParseError{What: "board", Text: s}
	}
	placement := s[:space]
	holdingsStr := ""
	if slashes == 8 {
		cut := strings.LastIndexByte(placement, '/')
		placement, holdingsStr = placement[:cut], placement[cut+1:]
	}
	reserve, err := parseReserve(holdingsStr)
	if err != nil {
		return nil, err
	}
	promos := parsePromotions(placement)

	// Everything after the placement field: side to move, castling, en
	// passant, then optional clock fields we drop on the floor.
	rest := strings.Fields(s[space+1:])
	if len(rest) < 1 {
		return nil, &ParseError{What: "board", Text: s}
	}
	turn, castling, enPassant := rest[0], "-", "-"
	if len(rest) > 1 {
		castling = rest[1]
	}
	if len(rest) > 2 {
		enPassant = rest[2]
	}
	fen := strings.ReplaceAll(placement, "~", "") + " " +
		turn + " " + castling + " " + enPassant + " 0 1"
	pos, err := engine.FromFEN(fen)
	if err != nil {
		return nil, &ParseError{What: "board", Text: s}
	}
	return &Board{pos: pos, reserve: reserve, promos: promos}, nil
}

// Position exposes the underlying engine position.
func (b *Board) Position() engine.Position { return b.pos }

// Reserve returns a copy of the board's holdings.
func (b *Board) Reserve() Reserve { return b.reserve }

// Promotions returns a copy of the board's promotion markers.
func (b *Board) Promotions() Promotions { return b.promos }

// SideToMove returns the color to move on this board.
func (b *Board) SideToMove() chess.Color { return b.pos.SideToMove() }

// InCheck reports whether the side to move is in check.
func (b *Board) InCheck() bool { return b.pos.InCheck() }

// LegalMove reports whether the move is legal on this board: drops go
// through the bughouse drop rules, standard moves are delegated to the
// engine.
func (b *Board) LegalMove(m Move) bool {
	if m.IsDrop() {
		return b.LegalDrop(m)
	}
	return b.pos.IsLegal(m.Source(), m.Dest(), m.Promo())
}

// LegalDrop reports whether the drop is legal: the piece is held, the
// destination is empty, pawns stay off the first and last ranks, and any
// check is blocked by the drop. There is no interposition square against a
// double check or a knight check, so every drop is then illegal.
func (b *Board) LegalDrop(m Move) bool {
	if !m.IsDrop() || heldIndex(m.DropPiece()) < 0 {
		return false
	}
	dst := m.Dest()
	return b.reserve.HasPiece(b.pos.SideToMove(), m.DropPiece()) &&
		b.pos.PieceAt(dst) == chess.NoPieceType &&
		(m.DropPiece() != chess.Pawn || !onEdgeRank(dst)) &&
		(!b.pos.InCheck() || b.dropBlocksCheck(dst))
}

func (b *Board) dropBlocksCheck(dst chess.Square) bool {
	checkers := b.pos.Checkers()
	if len(checkers) != 1 {
		return false
	}
	checker := checkers[0]
	if b.pos.PieceAt(checker) == chess.Knight {
		return false
	}
	king := b.pos.KingSquare(b.pos.SideToMove())
	for _, sq := range engine.Between(checker, king) {
		if sq == dst {
			return true
		}
	}
	return false
}

// Apply validates and plays the move. On any failure the board is left
// exactly as it was.
func (b *Board) Apply(m Move) error {
	if !b.LegalMove(m) {
		return &IllegalMoveError{Move: m, Reason: "fails legality check"}
	}
	if m.IsDrop() {
		mover := b.pos.SideToMove()
		next, err := b.pos.Place(m.DropPiece(), mover, m.Dest())
		if err != nil {
			return &IllegalMoveError{Move: m, Reason: "position rejects placement"}
		}
		if err := b.reserve.Remove(mover, m.DropPiece()); err != nil {
			return err
		}
		b.pos = next
		return nil
	}
	next, err := b.pos.Move(m.Source(), m.Dest(), m.Promo())
	if err != nil {
		return &IllegalMoveError{Move: m, Reason: "engine rejects move"}
	}
	// Markers are updated from pre-move occupancy; the engine position
	// only commits afterwards.
	b.promos.RecordMove(b.pos.SideToMove(), m.Source(), m.Dest(), m.Promo() != chess.NoPieceType)
	b.pos = next
	return nil
}

// IsMated reports whether the side to move is checkmated under bughouse
// rules. A standard checkmate is downgraded when a single non-knight
// checker leaves an interposition square: a drop there could still block
// the check. Whether the defender actually holds a droppable piece is
// deliberately not consulted.
func (b *Board) IsMated() bool {
	if !b.pos.IsCheckmate() {
		return false
	}
	checkers := b.pos.Checkers()
	if len(checkers) > 1 {
		return true
	}
	checker := checkers[0]
	if b.pos.PieceAt(checker) == chess.Knight {
		return true
	}
	king := b.pos.KingSquare(b.pos.SideToMove())
	return len(engine.Between(checker, king)) == 0
}

// String renders the board as BFEN: the engine FEN with `~` markers
// restored and the holdings segment appended when non-empty.
func (b *Board) String() string {
	fields := strings.Fields(b.pos.FEN())
	placement := insertPromoMarks(fields[0], b.promos)
	if !b.reserve.Empty() {
		placement += "/" + b.reserve.String()
	}
	return placement + " " + strings.Join(fields[1:], " ")
}

func (b *Board) addToReserve(c chess.Color, pt chess.PieceType) {
	b.reserve.Add(c, pt)
}

func onEdgeRank(sq chess.Square) bool {
	r := int(sq) / 8
	return r == 0 || r == 7
}

func insertPromoMarks(placement string, promos Promotions) string {
	var sb strings.Builder
	rank := 7
	file := 0
	for _, ch := range placement {
		switch {
		case ch == '/':
			sb.WriteRune(ch)
			rank--
			file = 0
		case ch >= '1' && ch <= '8':
			sb.WriteRune(ch)
			file += int(ch - '0')
		default:
			sb.WriteRune(ch)
			color := chess.White
			if ch >= 'a' && ch <= 'z' {
				color = chess.Black
			}
			if promos.IsMarked(color, chess.Square(rank*8+file)) {
				sb.WriteByte('~')
			}
			file++
		}
	}
	return sb.String()
}
