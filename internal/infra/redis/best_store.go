package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"pastfool/internal/domain"
	"github.com/redis/go-redis/v9"
)

// reconcileScript keeps the stored value at the maximum ever written.
var reconcileScript = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[1]) or "0") or 0
local candidate = tonumber(ARGV[1])
if candidate > current then
  redis.call("SET", KEYS[1], ARGV[1])
  current = candidate
end
if tonumber(ARGV[2]) > 0 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return current
`)

// BestScoreStore persists best scores as plain string keys:
//
//	SET best:{key} {score}
//
// Writes never lower an existing value, so two screens of the same player
// cannot clobber each other's best.
type BestScoreStore struct {
	client *redis.Client
	ttl    time.Duration

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewBestScoreStore keeps values forever when ttl is zero.
func NewBestScoreStore(client *redis.Client, ttl time.Duration) *BestScoreStore {
	return &BestScoreStore{
		client: client,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *BestScoreStore) LoadBest(ctx context.Context, key string) (int, error) {
	raw, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, domain.ErrBestScoreNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("get best score: %w", err)
	}
	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", domain.ErrInvalidBestScore, raw)
	}
	return score, nil
}

func (s *BestScoreStore) SaveBest(ctx context.Context, key string, score int) error {
	ttl := s.ttlWithJitter()
	err := reconcileScript.Run(ctx, s.client, []string{s.key(key)}, score, ttl.Milliseconds()).Err()
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	return nil
}

func (s *BestScoreStore) key(key string) string {
	return "best:" + key
}

func (s *BestScoreStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	jitterMax := int64(s.ttl) / 10
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ttl + time.Duration(s.rnd.Int63n(jitterMax+1))
}
