package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	MessageTypeMove       MessageType = "move"
	MessageTypeGameState  MessageType = "gameState"
	MessageTypeMatchFound MessageType = "matchFound"
	MessageTypeError      MessageType = "error"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// MovePayload carries one move in move-text form ("e2e4", "e7e8q", "N@f3")
// addressed to board "A" or "B".
type MovePayload struct {
	Board string `json:"board"`
	Move  string `json:"move"`
}

// ErrorPayload carries a human-readable rejection.
type ErrorPayload struct {
	Message string `json:"message"`
}
