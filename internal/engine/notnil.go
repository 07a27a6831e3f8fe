package engine

import (
	"fmt"
	"strings"

	"github.com/notnil/chess"
)

// position implements Position on top of github.com/notnil/chess.
type position struct {
	pos *chess.Position
}

// New returns the standard chess starting position.
func New() Position {
	return &position{pos: chess.NewGame().Position()}
}

// FromFEN parses a full FEN string into a Position.
func FromFEN(fen string) (Position, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return nil, fmt.Errorf("engine: bad fen %q: %w", fen, err)
	}
	return &position{pos: pos}, nil
}

func (p *position) PieceAt(sq chess.Square) chess.PieceType {
	return p.pos.Board().Piece(sq).Type()
}

func (p *position) ColorAt(sq chess.Square) chess.Color {
	return p.pos.Board().Piece(sq).Color()
}

func (p *position) SideToMove() chess.Color {
	return p.pos.Turn()
}

func (p *position) InCheck() bool {
	return len(p.Checkers()) > 0
}

func (p *position) Checkers() []chess.Square {
	us := p.pos.Turn()
	return p.attackers(p.KingSquare(us), us.Other())
}

func (p *position) IsCheckmate() bool {
	return p.pos.Status() == chess.Checkmate
}

func (p *position) KingSquare(c chess.Color) chess.Square {
	for sq, pc := range p.pos.Board().SquareMap() {
		if pc.Type() == chess.King && pc.Color() == c {
			return sq
		}
	}
	// A parsed position always has both kings; this is unreachable for
	// positions built through this package.
	return chess.A1
}

func (p *position) IsLegal(src, dst chess.Square, promo chess.PieceType) bool {
	return p.findValid(src, dst, promo) != nil
}

func (p *position) Move(src, dst chess.Square, promo chess.PieceType) (Position, error) {
	mv := p.findValid(src, dst, promo)
	if mv == nil {
		return nil, fmt.Errorf("engine: no legal move %s%s", src, dst)
	}
	return &position{pos: p.pos.Update(mv)}, nil
}

func (p *position) Place(pt chess.PieceType, c chess.Color, sq chess.Square) (Position, error) {
	fields := strings.Fields(p.pos.String())
	if len(fields) != 6 {
		return nil, fmt.Errorf("engine: malformed internal fen %q", p.pos.String())
	}
	board, err := placeOnBoardField(fields[0], pt, c, sq)
	if err != nil {
		return nil, err
	}
	fields[0] = board
	if fields[1] == "w" {
		fields[1] = "b"
	} else {
		fields[1] = "w"
	}
	// A placement can never create an en passant target.
	fields[3] = "-"
	return FromFEN(strings.Join(fields, " "))
}

func (p *position) FEN() string {
	return p.pos.String()
}

// findValid matches (src, dst, promo) against the legal moves of the
// position. notnil/chess keeps move internals unexported, so legality
// testing and application both go through its generated move list.
func (p *position) findValid(src, dst chess.Square, promo chess.PieceType) *chess.Move {
	for _, mv := range p.pos.ValidMoves() {
		if mv.S1() == src && mv.S2() == dst && mv.Promo() == promo {
			return mv
		}
	}
	return nil
}

var (
	rookDirs   = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	bishopDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	knightDirs = [8][2]int{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {1, -2}, {-1, 2}, {-1, -2}}
	kingDirs   = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// attackers scans outward from target and collects every square holding a
// piece of the given color that attacks it.
func (p *position) attackers(target chess.Square, by chess.Color) []chess.Square {
	board := p.pos.Board()
	tf, tr := int(target.File()), int(target.Rank())
	var found []chess.Square

	slide := func(dirs [4][2]int, slider chess.PieceType) {
		for _, dir := range dirs {
			f, r := tf+dir[0], tr+dir[1]
			for onBoard(f, r) {
				pc := board.Piece(square(f, r))
				if pc != chess.NoPiece {
					if pc.Color() == by && (pc.Type() == chess.Queen || pc.Type() == slider) {
						found = append(found, square(f, r))
					}
					break
				}
				f += dir[0]
				r += dir[1]
			}
		}
	}
	slide(rookDirs, chess.Rook)
	slide(bishopDirs, chess.Bishop)

	for _, dir := range knightDirs {
		f, r := tf+dir[0], tr+dir[1]
		if onBoard(f, r) {
			pc := board.Piece(square(f, r))
			if pc.Color() == by && pc.Type() == chess.Knight {
				found = append(found, square(f, r))
			}
		}
	}
	for _, dir := range kingDirs {
		f, r := tf+dir[0], tr+dir[1]
		if onBoard(f, r) {
			pc := board.Piece(square(f, r))
			if pc.Color() == by && pc.Type() == chess.King {
				found = append(found, square(f, r))
			}
		}
	}
	// A pawn of color `by` attacks target from one rank behind target's
	// relative forward direction.
	pawnRank := tr - 1
	if by == chess.Black {
		pawnRank = tr + 1
	}
	for _, df := range [2]int{-1, 1} {
		f, r := tf+df, pawnRank
		if onBoard(f, r) {
			pc := board.Piece(square(f, r))
			if pc.Color() == by && pc.Type() == chess.Pawn {
				found = append(found, square(f, r))
			}
		}
	}
	return found
}

// placeOnBoardField rewrites the piece-placement field of a FEN with an
// extra piece on sq. The square must be empty.
func placeOnBoardField(field string, pt chess.PieceType, c chess.Color, sq chess.Square) (string, error) {
	letter := pieceLetter(pt, c)
	if letter == 0 {
		return "", fmt.Errorf("engine: cannot place piece type %d", pt)
	}
	ranks := strings.Split(field, "/")
	if len(ranks) != 8 {
		return "", fmt.Errorf("engine: malformed board field %q", field)
	}
	ri := 7 - int(sq.Rank())
	expanded := expandRank(ranks[ri])
	fi := int(sq.File())
	if expanded[fi] != 0 {
		return "", fmt.Errorf("engine: square %s is occupied", sq)
	}
	expanded[fi] = letter
	ranks[ri] = compressRank(expanded)
	return strings.Join(ranks, "/"), nil
}

// expandRank turns a FEN rank segment into 8 bytes, zero meaning empty.
func expandRank(seg string) [8]byte {
	var out [8]byte
	i := 0
	for _, ch := range []byte(seg) {
		if ch >= '1' && ch <= '8' {
			i += int(ch - '0')
			continue
		}
		if i < 8 {
			out[i] = ch
		}
		i++
	}
	return out
}

func compressRank(cells [8]byte) string {
	var sb strings.Builder
	empty := 0
	for _, ch := range cells {
		if ch == 0 {
			empty++
			continue
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
			empty = 0
		}
		sb.WriteByte(ch)
	}
	if empty > 0 {
		sb.WriteByte(byte('0' + empty))
	}
	return sb.String()
}

func pieceLetter(pt chess.PieceType, c chess.Color) byte {
	var letter byte
	switch pt {
	case chess.Pawn:
		letter = 'p'
	case chess.Knight:
		letter = 'n'
	case chess.Bishop:
		letter = 'b'
	case chess.Rook:
		letter = 'r'
	case chess.Queen:
		letter = 'q'
	case chess.King:
		letter = 'k'
	default:
		return 0
	}
	if c == chess.White {
		letter -= 'a' - 'A'
	}
	return letter
}
