package fishka

import (
	"errors"
	"fmt"
	"sync"
)

var ErrUnknownGameID = errors.New("unknown game ID")

// GameSession ties a running game to the human player driving it.
type GameSession struct {
	GameID     string
	PlayerID   string
	PlayerName string
	Game       *Game

	// Mu serialises all mutations of Game; hands, deck and pile are not
	// independently consistent.
	Mu sync.Mutex
}

// GameStore holds the live game sessions
type GameStore interface {
	FindGame(gameID string) *GameSession
	AddGame(session *GameSession) error
	RemoveGame(gameID string)
}

// InMemoryGameStore maps game id to game session
type InMemoryGameStore struct {
	mu       sync.RWMutex
	sessions map[string]*GameSession
}

// NewInMemoryGameStore constructs an InMemoryGameStore
func NewInMemoryGameStore() *InMemoryGameStore {
	return &InMemoryGameStore{
		sessions: map[string]*GameSession{},
	}
}

func (s *InMemoryGameStore) FindGame(gameID string) *GameSession {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sessions[gameID]
}

func (s *InMemoryGameStore) AddGame(session *GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[session.GameID]; exists {
		return fmt.Errorf("game with id %s already exists", session.GameID)
	}

	s.sessions[session.GameID] = session
	return nil
}

func (s *InMemoryGameStore) RemoveGame(gameID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, gameID)
}
