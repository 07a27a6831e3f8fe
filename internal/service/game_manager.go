package service

import (
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/bughouse/bughouse-backend/internal/model"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// GameManager owns every live table plus the matchmaking queue.
type GameManager struct {
	tables           map[string]*model.Table
	queue            *model.Queue
	matchingChannels map[string]chan string
	mu               sync.RWMutex
}

func NewGameManager() *GameManager {
	gm := &GameManager{
		tables:           make(map[string]*model.Table),
		queue:            model.NewQueue(),
		matchingChannels: make(map[string]chan string),
	}

	go gm.processMatchmaking()

	return gm
}

// RegisterMatchmakingChannel attaches a notification channel for a queued
// player, replacing (and closing) any previous one.
func (gm *GameManager) RegisterMatchmakingChannel(playerID string, ch chan string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if existing, exists := gm.matchingChannels[playerID]; exists {
		delete(gm.matchingChannels, playerID)
		close(existing)
	}
	gm.matchingChannels[playerID] = ch
	return nil
}

func (gm *GameManager) UnregisterMatchmakingChannel(playerID string) {
	gm.mu.Lock()
	defer gm.mu.Unlock()
	// The channel's creator closes it; only drop our reference here.
	delete(gm.matchingChannels, playerID)
}

// processMatchmaking seats waiting players four at a time: a bughouse table
// needs two full teams.
func (gm *GameManager) processMatchmaking() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		gm.mu.Lock()
		for gm.queue.Size() >= 4 {
			players := gm.queue.NextFoursome()

			tableID := uuid.New().String()
			table := model.NewTable(tableID)

			seated := make([]model.MatchFoundEvent, 0, len(players))
			ok := true
			for _, p := range players {
				seat, err := table.AddPlayer(p.ID)
				if err != nil {
					log.Printf("matchmaking: seat player %s: %v", p.ID, err)
					ok = false
					break
				}
				seated = append(seated, model.MatchFoundEvent{GameID: tableID, Seat: seat})
			}
			if !ok {
				continue
			}
			gm.tables[tableID] = table

			for i, p := range players {
				if !gm.notifyMatch(p.ID, seated[i]) {
					log.Printf("matchmaking: failed to notify player %s", p.ID)
				}
			}
		}
		gm.mu.Unlock()
	}
}

// notifyMatch sends a match-found event and retires the player's channel.
// Callers hold gm.mu.
func (gm *GameManager) notifyMatch(playerID string, event model.MatchFoundEvent) bool {
	ch, ok := gm.matchingChannels[playerID]
	if !ok {
		return false
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("marshal match event: %v", err)
		return false
	}
	select {
	case ch <- string(payload):
		delete(gm.matchingChannels, playerID)
		close(ch)
		return true
	default:
		return false
	}
}

func (gm *GameManager) CreateGame(gameID string) error {
	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.tables[gameID]; exists {
		return errors.New("game already exists")
	}
	gm.tables[gameID] = model.NewTable(gameID)
	return nil
}

func (gm *GameManager) GetGame(gameID string) (*model.Table, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	table, exists := gm.tables[gameID]
	if !exists {
		return nil, errors.New("game not found")
	}
	return table, nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.Seat, error) {
	table, err := gm.GetGame(gameID)
	if err != nil {
		return "", err
	}
	return table.AddPlayer(playerID)
}

func (gm *GameManager) JoinMatchmaking(playerID string) error {
	return gm.queue.AddPlayer(model.Player{ID: playerID})
}

func (gm *GameManager) GetGameState(gameID string) (model.TableState, error) {
	table, err := gm.GetGame(gameID)
	if err != nil {
		return model.TableState{}, err
	}
	return table.GetState(), nil
}

// MakeMove routes a parsed move to the table.
func (gm *GameManager) MakeMove(gameID, playerID string, boardID model.BoardID, mv model.Move) error {
	table, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return table.MakeMove(playerID, boardID, mv)
}

func (gm *GameManager) RegisterConnection(gameID, playerID string, conn *websocket.Conn) error {
	table, err := gm.GetGame(gameID)
	if err != nil {
		return err
	}
	return table.RegisterConnection(playerID, conn)
}

func (gm *GameManager) UnregisterConnection(gameID, playerID string) {
	table, err := gm.GetGame(gameID)
	if err != nil {
		return
	}
	table.UnregisterConnection(playerID)
}
