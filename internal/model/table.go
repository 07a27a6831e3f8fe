package model

import (
	"encoding/json"
	"errors"
	"log"
	"sync"

	"github.com/bughouse/bughouse-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/notnil/chess"
)

// TableConnections is the websocket registry for one table.
type TableConnections struct {
	connections map[string]*websocket.Conn // playerID -> connection
	mu          sync.RWMutex
}

func NewTableConnections() *TableConnections {
	return &TableConnections{connections: make(map[string]*websocket.Conn)}
}

// Table is one hosted bughouse match: the game itself, four seats and the
// observers following it.
type Table struct {
	ID          string
	mu          sync.Mutex
	game        *Game
	seats       map[Seat]string // seat -> playerID
	connections *TableConnections
}

// NewTable returns an empty table with both boards in the starting
// position.
func NewTable(id string) *Table {
	return &Table{
		ID:          id,
		game:        NewGame(),
		seats:       make(map[Seat]string),
		connections: NewTableConnections(),
	}
}

// BoardSnapshot is the wire shape of one board.
type BoardSnapshot struct {
	BFEN     string `json:"bfen"`
	Holdings string `json:"holdings"`
	ToMove   string `json:"toMove"`
	IsCheck  bool   `json:"isCheck"`
	IsMated  bool   `json:"isMated"`
}

// TableState is the wire shape of the whole table.
type TableState struct {
	BoardA  BoardSnapshot         `json:"boardA"`
	BoardB  BoardSnapshot         `json:"boardB"`
	Players map[Seat]ClientPlayer `json:"players"`
}

func seatFor(id BoardID, c chess.Color) Seat {
	switch {
	case id == BoardA && c == chess.White:
		return SeatWhiteA
	case id == BoardA && c == chess.Black:
		return SeatBlackA
	case id == BoardB && c == chess.White:
		return SeatWhiteB
	}
	return SeatBlackB
}

// AddPlayer seats the player on the first free seat and returns it.
// Partner seats fill together so matched pairs end up on opposite boards.
func (t *Table) AddPlayer(playerID string) (Seat, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, seat := range SeatOrder {
		if occupant, taken := t.seats[seat]; taken {
			if occupant == playerID {
				return seat, nil
			}
			continue
		}
		t.seats[seat] = playerID
		return seat, nil
	}
	return "", errors.New("table is full")
}

// GetState snapshots the table for clients.
func (t *Table) GetState() TableState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Table) stateLocked() TableState {
	players := make(map[Seat]ClientPlayer, len(t.seats))
	for seat, id := range t.seats {
		players[seat] = ClientPlayer{ID: id, Seat: seat}
	}
	return TableState{
		BoardA:  snapshotBoard(t.game.Board(BoardA)),
		BoardB:  snapshotBoard(t.game.Board(BoardB)),
		Players: players,
	}
}

func snapshotBoard(b *Board) BoardSnapshot {
	return BoardSnapshot{
		BFEN:     b.String(),
		Holdings: b.Reserve().String(),
		ToMove:   colorName(b.SideToMove()),
		IsCheck:  b.InCheck(),
		IsMated:  b.IsMated(),
	}
}

// IsPlayerSeated reports whether the player holds any seat.
func (t *Table) IsPlayerSeated(playerID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.isPlayerSeated(playerID)
}

func (t *Table) isPlayerSeated(playerID string) bool {
	for _, id := range t.seats {
		if id == playerID {
			return true
		}
	}
	return false
}

func (t *Table) canSpectate() bool {
	return len(t.seats) < len(SeatOrder)
}

// MakeMove plays a move for the player on the addressed board. The player
// must hold the seat whose turn it is there.
func (t *Table) MakeMove(playerID string, boardID BoardID, mv Move) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	board := t.game.Board(boardID)
	seat := seatFor(boardID, board.SideToMove())
	occupant, taken := t.seats[seat]
	if !taken || occupant != playerID {
		return errors.New("not your turn")
	}
	if err := t.game.MakeMove(boardID, mv); err != nil {
		return err
	}
	go t.broadcastState()
	return nil
}

// RegisterConnection attaches a websocket to the table. Seated players and
// spectators (while seats remain open) are allowed; a duplicate connection
// for the same player is politely closed.
func (t *Table) RegisterConnection(playerID string, conn *websocket.Conn) error {
	t.mu.Lock()
	authorized := t.isPlayerSeated(playerID) || t.canSpectate()
	t.mu.Unlock()
	if !authorized {
		return errors.New("not authorized to join this table")
	}

	t.connections.mu.Lock()
	if _, exists := t.connections.connections[playerID]; exists {
		t.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(
				websocket.CloseNormalClosure,
				"connection already exists",
			),
		)
		conn.Close()
		return nil
	}
	t.connections.connections[playerID] = conn
	t.connections.mu.Unlock()

	go t.broadcastState()
	return nil
}

// UnregisterConnection detaches a player's websocket, if any.
func (t *Table) UnregisterConnection(playerID string) {
	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()
	delete(t.connections.connections, playerID)
}

func (t *Table) broadcastState() {
	t.mu.Lock()
	state := t.stateLocked()
	t.mu.Unlock()

	payload, err := json.Marshal(state)
	if err != nil {
		log.Printf("marshal table state: %v", err)
		return
	}

	t.connections.mu.Lock()
	defer t.connections.mu.Unlock()
	for playerID, conn := range t.connections.connections {
		err := conn.WriteJSON(ws.Message{
			Type:    ws.MessageTypeGameState,
			Payload: json.RawMessage(payload),
		})
		if err != nil {
			log.Printf("send state to player %s: %v", playerID, err)
			delete(t.connections.connections, playerID)
		}
	}
}
