package memory

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"pastfool/internal/app"
	"golang.org/x/sync/singleflight"
)

// BestScoreCache fronts a remote app.BestScoreStore with a TTL cache so that
// repeated best-score lookups do not hit the backend each time.
type BestScoreCache struct {
	store app.BestScoreStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu    sync.RWMutex
	rndMu sync.Mutex
	cache map[string]cachedScore
}

type cachedScore struct {
	score     int
	expiresAt time.Time
}

func NewBestScoreCache(store app.BestScoreStore, ttl time.Duration) *BestScoreCache {
	return &BestScoreCache{
		store: store,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
		cache: make(map[string]cachedScore),
	}
}

func (c *BestScoreCache) LoadBest(ctx context.Context, key string) (int, error) {
	now := c.clock()

	c.mu.RLock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		c.mu.RUnlock()
		return entry.score, nil
	}
	c.mu.RUnlock()

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		c.mu.RLock()
		if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
			c.mu.RUnlock()
			return entry.score, nil
		}
		c.mu.RUnlock()

		score, err := c.store.LoadBest(ctx, key)
		if err != nil {
			return 0, err
		}
		c.put(key, score, now)
		return score, nil
	})
	if err != nil {
		return 0, err
	}
	return result.(int), nil
}

// SaveBest writes through. Backends keep the higher of the stored and saved
// score, so a live entry is only ever raised; without one the next load reads
// through.
func (c *BestScoreCache) SaveBest(ctx context.Context, key string, score int) error {
	err := c.store.SaveBest(ctx, key, score)

	now := c.clock()
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.cache[key]
	if err != nil || !ok || !entry.expiresAt.After(now) {
		delete(c.cache, key)
		return err
	}
	if score > entry.score {
		entry.score = score
		c.cache[key] = entry
	}
	return nil
}

func (c *BestScoreCache) put(key string, score int, now time.Time) {
	ttl := c.ttlWithJitter()
	c.mu.Lock()
	c.cache[key] = cachedScore{score: score, expiresAt: now.Add(ttl)}
	c.mu.Unlock()
}

func (c *BestScoreCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
