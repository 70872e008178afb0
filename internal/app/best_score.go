package app

import (
	"context"
	"errors"
	"log"
	"sync"

	"pastfool/internal/domain"
)

// BestScoreStore abstracts durable best-score storage (file, Redis, Postgres, etc).
type BestScoreStore interface {
	LoadBest(ctx context.Context, key string) (int, error)
	SaveBest(ctx context.Context, key string, score int) error
}

// BestScore keeps the best score for one key. Storage failures are logged and
// swallowed; the in-memory value always reflects the session.
type BestScore struct {
	store BestScoreStore
	key   string

	mu   sync.Mutex
	best int
}

func NewBestScore(store BestScoreStore, key string) *BestScore {
	return &BestScore{store: store, key: key}
}

// Load reads the stored value, falling back to 0.
func (b *BestScore) Load(ctx context.Context) int {
	best := 0
	if b.store != nil {
		v, err := b.store.LoadBest(ctx, b.key)
		switch {
		case err == nil && v >= 0:
			best = v
		case err != nil && !errors.Is(err, domain.ErrBestScoreNotFound):
			log.Printf("load best score %q: %v", b.key, err)
		}
	}

	b.mu.Lock()
	b.best = best
	b.mu.Unlock()
	return best
}

// Reconcile raises the best score to final if it is higher and persists the result.
func (b *BestScore) Reconcile(ctx context.Context, final int) int {
	b.mu.Lock()
	if final > b.best {
		b.best = final
	}
	best := b.best
	b.mu.Unlock()

	if b.store != nil {
		if err := b.store.SaveBest(ctx, b.key, best); err != nil {
			log.Printf("save best score %q: %v", b.key, err)
		}
	}
	return best
}

// Value is the current in-memory best score.
func (b *BestScore) Value() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.best
}

// Key is the storage key this adapter reads and writes.
func (b *BestScore) Key() string {
	return b.key
}
