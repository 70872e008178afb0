package app

import (
	"context"
	"log"

	"pastfool/internal/domain"

	"github.com/google/uuid"
)

// SessionRepository abstracts where open game screens are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Put(sessionID string, game *Game)
	Get(sessionID string) (*Game, bool)
	Delete(sessionID string)
}

// GameService opens and closes game screens for players.
type GameService struct {
	sessions SessionRepository
	store    BestScoreStore
	opts     Options
}

// NewGameService validates the bank once so misconfiguration fails at startup.
func NewGameService(sessions SessionRepository, store BestScoreStore, opts Options) (*GameService, error) {
	if len(opts.Bank) == 0 {
		return nil, domain.ErrEmptyBank
	}
	return &GameService{sessions: sessions, store: store, opts: opts}, nil
}

// BestScoreKey is the storage key for a player's device.
func BestScoreKey(playerID string) string {
	if playerID == "" {
		return domain.BestScoreKey
	}
	return domain.BestScoreKey + ":" + playerID
}

// Open starts a new game screen for playerID and returns its session ID.
func (s *GameService) Open(ctx context.Context, playerID string) (string, *Game, error) {
	opts := s.opts
	// every game owns its random source
	opts.RandSeed = 0
	game, err := NewGame(opts, NewBestScore(s.store, BestScoreKey(playerID)))
	if err != nil {
		return "", nil, err
	}

	sessionID := uuid.NewString()
	s.sessions.Put(sessionID, game)
	game.Start(ctx)
	log.Printf("opened game %s for player %s", sessionID, playerID)
	return sessionID, game, nil
}

// Get returns an open game.
func (s *GameService) Get(sessionID string) (*Game, error) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return game, nil
}

// Close tears down a game screen and its timer.
func (s *GameService) Close(sessionID string) {
	game, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	game.Close()
	s.sessions.Delete(sessionID)
}

// Best reads a player's stored best score, 0 when unavailable.
func (s *GameService) Best(ctx context.Context, playerID string) int {
	return NewBestScore(s.store, BestScoreKey(playerID)).Load(ctx)
}

// Bank returns the bundled questions the service plays with.
func (s *GameService) Bank() []domain.Question {
	return append([]domain.Question(nil), s.opts.Bank...)
}
