package app_test

import (
	"context"
	"errors"
	"testing"

	"pastfool/internal/app"
	"pastfool/internal/domain"
	"pastfool/internal/infra/memory"
)

func TestGameServiceOpenAndClose(t *testing.T) {
	ctx := context.Background()
	sessions := memory.NewSessionStore()
	service := newTestService(t, sessions, memory.NewBestScoreStore())

	id, game, err := service.Open(ctx, "p1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	if id == "" || sessions.Len() != 1 {
		t.Fatalf("expected one open session, got id=%q len=%d", id, sessions.Len())
	}
	got, err := service.Get(id)
	if err != nil || got != game {
		t.Fatalf("expected same game back, got %v", err)
	}

	service.Close(id)
	if _, err := service.Get(id); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected session error, got %v", err)
	}
	updates, cancel := game.Subscribe()
	defer cancel()
	<-updates
	if _, ok := <-updates; ok {
		t.Fatalf("expected closed game to close new subscriptions")
	}
}

func TestGameServiceBestScorePerPlayer(t *testing.T) {
	ctx := context.Background()
	store := memory.NewBestScoreStore()
	_ = store.SaveBest(ctx, app.BestScoreKey("p1"), 14)
	service := newTestService(t, memory.NewSessionStore(), store)

	if got := service.Best(ctx, "p1"); got != 14 {
		t.Fatalf("expected best 14, got %d", got)
	}
	if got := service.Best(ctx, "p2"); got != 0 {
		t.Fatalf("expected best 0 for new player, got %d", got)
	}

	id, game, err := service.Open(ctx, "p1")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer service.Close(id)
	if snap := game.Snapshot(); snap.Best != 14 {
		t.Fatalf("expected game to load best 14, got %d", snap.Best)
	}
}

func TestGameServiceRejectsEmptyBank(t *testing.T) {
	_, err := app.NewGameService(memory.NewSessionStore(), nil, app.Options{})
	if !errors.Is(err, domain.ErrEmptyBank) {
		t.Fatalf("expected empty bank error, got %v", err)
	}
}

func TestBestScoreKey(t *testing.T) {
	if got := app.BestScoreKey(""); got != domain.BestScoreKey {
		t.Fatalf("unexpected key %q", got)
	}
	if got := app.BestScoreKey("abc"); got != "pastfool-best:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}

func newTestService(t *testing.T, sessions app.SessionRepository, store app.BestScoreStore) *app.GameService {
	t.Helper()
	service, err := app.NewGameService(sessions, store, app.Options{
		Bank:      domain.DefaultBank(),
		Reactions: domain.DefaultReactions(),
		Rules:     app.Rules{Multiplier: true},
	})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return service
}
