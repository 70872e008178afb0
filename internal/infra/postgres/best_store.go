package postgres

import (
	"context"
	"errors"
	"fmt"

	"pastfool/internal/domain"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// BestScoreStore keeps best scores in the best_scores table.
type BestScoreStore struct {
	pool *pgxpool.Pool
}

func NewBestScoreStore(pool *pgxpool.Pool) *BestScoreStore {
	return &BestScoreStore{pool: pool}
}

func (s *BestScoreStore) LoadBest(ctx context.Context, key string) (int, error) {
	var score int
	err := s.pool.QueryRow(ctx, `SELECT score FROM best_scores WHERE key=$1`, key).Scan(&score)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, domain.ErrBestScoreNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("load best score: %w", err)
	}
	return score, nil
}

// SaveBest upserts the score, never lowering a stored value.
func (s *BestScoreStore) SaveBest(ctx context.Context, key string, score int) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO best_scores (key, score, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET score = GREATEST(best_scores.score, EXCLUDED.score), updated_at = now()`,
		key, score)
	if err != nil {
		return fmt.Errorf("save best score: %w", err)
	}
	return nil
}
