package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pastfool/internal/app"
	"pastfool/internal/config"
	"pastfool/internal/infra/memory"
	redissession "pastfool/internal/infra/redis"
	transport "pastfool/internal/transport/http"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// sessionTTL bounds the Redis liveness marker of an open game screen.
const sessionTTL = 10 * time.Minute

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the game server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Storage.Backend == "postgres" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}

	bestStore, closeStore, err := openBestStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = redissession.NewSessionStore(redisClient, sessionTTL)
	} else {
		sessions = memory.NewSessionStore()
	}

	opts := gameOptions(cfg)
	opts.OnRoundEnd = transport.ObserveRoundEnd
	service, err := app.NewGameService(sessions, bestStore, opts)
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      transport.NewRouter(service, newAdmin(cfg)),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("starting game server on :%s (storage: %s)", finalPort, cfg.Storage.Backend)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
			return err
		}
		return nil
	})
	g.Go(func() error {
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(stop)

		select {
		case <-stop:
			log.Println("shutting down server...")
		case <-gctx.Done():
			log.Println("context canceled, shutting down server...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
