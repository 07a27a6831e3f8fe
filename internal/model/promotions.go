package model

import "github.com/notnil/chess"

// Promotions tracks, per color, the squares holding a promotion-derived
// piece. When such a piece is captured only a pawn goes to the opposing
// reserve, so the lineage must survive every relocation of the piece. The
// zero value has no marked squares; Promotions is a comparable value type.
type Promotions struct {
	marked [2]uint64
}

// IsMarked reports whether color's piece on sq is promotion-derived.
func (p Promotions) IsMarked(c chess.Color, sq chess.Square) bool {
	return p.marked[colorIndex(c)]&(1<<uint(sq)) != 0
}

// Mark records color's piece on sq as promotion-derived.
func (p *Promotions) Mark(c chess.Color, sq chess.Square) {
	p.marked[colorIndex(c)] |= 1 << uint(sq)
}

// Unmark clears the marker for color on sq, if any.
func (p *Promotions) Unmark(c chess.Color, sq chess.Square) {
	p.marked[colorIndex(c)] &^= 1 << uint(sq)
}

// RecordMove keeps the markers in lock-step with a standard move by mover
// from src to dst. It must be fed pre-move occupancy: a promotion marks the
// destination, a moving marked piece carries its marker along, and any
// marker the opponent held on the destination is cleared because a capture
// ends that lineage.
func (p *Promotions) RecordMove(mover chess.Color, src, dst chess.Square, promoted bool) {
	if promoted {
		p.Mark(mover, dst)
	} else if p.IsMarked(mover, src) {
		p.Unmark(mover, src)
		p.Mark(mover, dst)
	}
	p.Unmark(mover.Other(), dst)
}

// parsePromotions reads `~` markers from the piece-placement field of a
// BFEN board segment. A `~` follows the letter of the piece it marks.
func parsePromotions(boardField string) Promotions {
	var p Promotions
	rank := 7
	file := 0
	lastColor := chess.White
	for _, ch := range boardField {
		switch {
		case ch == '/':
			rank--
			file = 0
		case ch >= '1' && ch <= '8':
			file += int(ch - '0')
		case ch == '~':
			sq := chess.Square((rank * 8) + file - 1)
			p.Mark(lastColor, sq)
		default:
			if ch >= 'a' && ch <= 'z' {
				lastColor = chess.Black
			} else {
				lastColor = chess.White
			}
			file++
		}
	}
	return p
}
