package model

import (
	"fmt"
	"sync"
	"time"
)

// QueuedPlayer is a player waiting for a table.
type QueuedPlayer struct {
	Player   Player
	JoinedAt time.Time
}

// Queue holds players waiting to be matched. Bughouse tables need four
// players, so pairing pops four at a time.
type Queue struct {
	players []QueuedPlayer
	mu      sync.Mutex
}

func NewQueue() *Queue {
	return &Queue{players: []QueuedPlayer{}}
}

func (q *Queue) AddPlayer(player Player) error {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, p := range q.players {
		if p.Player.ID == player.ID {
			return fmt.Errorf("player already in queue")
		}
	}
	q.players = append(q.players, QueuedPlayer{Player: player, JoinedAt: time.Now()})
	return nil
}

// NextFoursome pops the four longest-waiting players. The caller must have
// checked Size() >= 4.
func (q *Queue) NextFoursome() [4]Player {
	q.mu.Lock()
	defer q.mu.Unlock()

	var out [4]Player
	for i := range out {
		out[i] = q.players[i].Player
	}
	q.players = q.players[4:]
	return out
}

func (q *Queue) Size() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.players)
}
