package memory

import (
	"context"
	"sync"

	"pastfool/internal/domain"
)

// BestScoreStore keeps best scores in process memory (useful for tests/demos).
type BestScoreStore struct {
	mu     sync.RWMutex
	scores map[string]int
}

func NewBestScoreStore() *BestScoreStore {
	return &BestScoreStore{scores: make(map[string]int)}
}

func (s *BestScoreStore) LoadBest(_ context.Context, key string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	score, ok := s.scores[key]
	if !ok {
		return 0, domain.ErrBestScoreNotFound
	}
	return score, nil
}

func (s *BestScoreStore) SaveBest(_ context.Context, key string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scores[key] = score
	return nil
}
