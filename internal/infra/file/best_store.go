package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"pastfool/internal/domain"
	"gopkg.in/yaml.v3"
)

// BestScoreStore keeps best scores in a small YAML file on the local device:
//
//	pastfool-best: 12
type BestScoreStore struct {
	path string
	mu   sync.Mutex
}

func NewBestScoreStore(path string) *BestScoreStore {
	return &BestScoreStore{path: path}
}

func (s *BestScoreStore) LoadBest(_ context.Context, key string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.read()
	if err != nil {
		return 0, err
	}
	score, ok := scores[key]
	if !ok {
		return 0, domain.ErrBestScoreNotFound
	}
	return score, nil
}

func (s *BestScoreStore) SaveBest(_ context.Context, key string, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	scores, err := s.read()
	if err != nil {
		// a corrupt file is replaced rather than blocking every future save
		scores = map[string]int{}
	}
	scores[key] = score

	data, err := yaml.Marshal(scores)
	if err != nil {
		return fmt.Errorf("marshal best scores: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create best score dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write best scores: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace best scores: %w", err)
	}
	return nil
}

func (s *BestScoreStore) read() (map[string]int, error) {
	scores := map[string]int{}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return scores, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read best scores: %w", err)
	}
	if err := yaml.Unmarshal(data, &scores); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidBestScore, err)
	}
	return scores, nil
}
