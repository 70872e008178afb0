package redis

import (
	"context"
	"sync"
	"time"

	"pastfool/internal/app"
	"github.com/redis/go-redis/v9"
)

// SessionStore is a Redis-aware implementation of app.SessionRepository.
// Notes:
//   - Games and their timers live in process; a game cannot move between instances.
//   - Redis only carries a liveness marker per open screen so operators can
//     count live games across instances (SCAN game:session:*).
type SessionStore struct {
	client   *redis.Client
	ttl      time.Duration
	mu       sync.RWMutex
	sessions map[string]*app.Game
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{
		client:   client,
		ttl:      ttl,
		sessions: make(map[string]*app.Game),
	}
}

func (s *SessionStore) Put(sessionID string, game *app.Game) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = game
	// best-effort liveness marker
	_ = s.client.Set(context.Background(), s.key(sessionID), "1", s.ttl).Err()
}

func (s *SessionStore) Get(sessionID string) (*app.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	game, ok := s.sessions[sessionID]
	return game, ok
}

func (s *SessionStore) Delete(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return
	}
	delete(s.sessions, sessionID)
	_ = s.client.Del(context.Background(), s.key(sessionID)).Err()
}

func (s *SessionStore) key(sessionID string) string {
	return "game:session:" + sessionID
}
