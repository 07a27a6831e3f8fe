package model

import (
	"strings"

	"github.com/notnil/chess"
)

// Seat is one of the four playing positions of a bughouse game.
type Seat string

const (
	SeatWhiteA Seat = "A:white"
	SeatBlackA Seat = "A:black"
	SeatWhiteB Seat = "B:white"
	SeatBlackB Seat = "B:black"
)

// SeatOrder is the order seats are filled: partners (white A / black B,
// black A / white B) are seated together.
var SeatOrder = [4]Seat{SeatWhiteA, SeatBlackB, SeatBlackA, SeatWhiteB}

// BoardID returns the board this seat plays on.
func (s Seat) BoardID() BoardID {
	if strings.HasPrefix(string(s), "B") {
		return BoardB
	}
	return BoardA
}

// Color returns the color this seat plays.
func (s Seat) Color() chess.Color {
	if strings.HasSuffix(string(s), "black") {
		return chess.Black
	}
	return chess.White
}

// Player is a connected participant.
type Player struct {
	ID   string
	Seat Seat
}

// ClientPlayer is the wire shape of a seated player.
type ClientPlayer struct {
	ID   string `json:"id"`
	Seat Seat   `json:"seat"`
}

// MatchFoundEvent notifies a queued player that a table is ready.
type MatchFoundEvent struct {
	GameID string `json:"gameId"`
	Seat   Seat   `json:"seat"`
}
