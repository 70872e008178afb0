package cli

import (
	"context"
	"fmt"
	"time"

	"pastfool/internal/app"
	"pastfool/internal/config"
	"pastfool/internal/domain"
	"pastfool/internal/infra/file"
	"pastfool/internal/infra/memory"
	mongostore "pastfool/internal/infra/mongo"
	pgstore "pastfool/internal/infra/postgres"
	redisstore "pastfool/internal/infra/redis"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
)

// gameOptions maps the game section of the config onto app.Options.
func gameOptions(cfg config.Config) app.Options {
	return app.Options{
		Bank:             domain.DefaultBank(),
		Reactions:        domain.DefaultReactions(),
		RoundSeconds:     cfg.Game.RoundSeconds,
		TickInterval:     config.Duration(cfg.Game.TickInterval, time.Second),
		HardMode:         cfg.Game.HardMode,
		Rules:            app.Rules{Multiplier: config.Enabled(cfg.Game.Multiplier)},
		ReactionsEnabled: config.Enabled(cfg.Game.Reactions),
		FlashDuration:    config.Duration(cfg.Game.Flash, 180*time.Millisecond),
		ShakeDuration:    config.Duration(cfg.Game.Shake, 250*time.Millisecond),
		Title:            cfg.Game.Title,
		ShareURL:         cfg.Server.ShareURL,
	}
}

func newAdmin(cfg config.Config) *app.Admin {
	return app.NewAdmin(domain.DefaultBank(), config.Enabled(cfg.Game.Admin))
}

func newRedisClient(cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}

// openBestStore builds the configured best-score backend. The returned
// cleanup releases its connections.
func openBestStore(ctx context.Context, cfg config.Config, redisClient *redis.Client) (app.BestScoreStore, func(), error) {
	noop := func() {}
	var (
		store   app.BestScoreStore
		cleanup = noop
	)

	switch cfg.Storage.Backend {
	case "", "memory":
		return memory.NewBestScoreStore(), noop, nil
	case "file":
		path := cfg.Storage.Path
		if path == "" {
			path = config.Default().Storage.Path
		}
		return file.NewBestScoreStore(path), noop, nil
	case "redis":
		if redisClient == nil {
			return nil, noop, fmt.Errorf("storage backend redis: redis addr not configured")
		}
		store = redisstore.NewBestScoreStore(redisClient, config.Duration(cfg.Redis.TTL, 0))
	case "postgres":
		if cfg.Postgres.URL == "" {
			return nil, noop, fmt.Errorf("storage backend postgres: postgres url not configured")
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, noop, fmt.Errorf("connect postgres: %w", err)
		}
		store = pgstore.NewBestScoreStore(pool)
		cleanup = pool.Close
	case "mongo":
		if cfg.Mongo.URI == "" {
			return nil, noop, fmt.Errorf("storage backend mongo: mongo uri not configured")
		}
		client, err := mongostore.Connect(ctx, cfg.Mongo.URI)
		if err != nil {
			return nil, noop, err
		}
		store = mongostore.NewBestScoreStore(client, cfg.Mongo.Database)
		cleanup = func() { _ = client.Disconnect(context.Background()) }
	default:
		return nil, noop, fmt.Errorf("%w: %q", domain.ErrUnknownBackend, cfg.Storage.Backend)
	}

	if ttl := config.Duration(cfg.Storage.CacheTTL, 0); ttl > 0 {
		store = memory.NewBestScoreCache(store, ttl)
	}
	return store, cleanup, nil
}
