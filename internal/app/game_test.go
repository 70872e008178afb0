package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"pastfool/internal/domain"
)

func newManualGame(t *testing.T, opts Options, store BestScoreStore) *Game {
	t.Helper()
	if opts.Bank == nil {
		opts.Bank = domain.DefaultBank()
	}
	if opts.RandSeed == 0 {
		opts.RandSeed = 11
	}
	game, err := NewGame(opts, NewBestScore(store, domain.BestScoreKey))
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	game.Start(context.Background())
	t.Cleanup(game.Close)
	return game
}

func TestGameEndToEndAllCorrectWrapsDeck(t *testing.T) {
	game := newManualGame(t, Options{Rules: Rules{Multiplier: true}}, nil)
	deck := game.Deck()
	if len(deck) != 4 {
		t.Fatalf("expected 4 card deck, got %d", len(deck))
	}

	for i := 0; i < 4; i++ {
		q := game.Current()
		if q == nil || q.RoundTag != deck[i].RoundTag {
			t.Fatalf("expected deck card %d, got %+v", i, q)
		}
		fb, _ := game.Answer(q.IsTrue)
		if !fb.Outcome.Correct || fb.Outcome.Awarded != 1 {
			t.Fatalf("answer %d: unexpected outcome %+v", i, fb.Outcome)
		}
	}

	snap := game.Snapshot()
	if snap.Round.Score != 4 || snap.Round.Streak != 4 || snap.Round.Index != 4 {
		t.Fatalf("unexpected round state %+v", snap.Round)
	}
	if snap.Current == nil || snap.Current.RoundTag != deck[0].RoundTag {
		t.Fatalf("expected deck to wrap to first card, got %+v", snap.Current)
	}

	fb, _ := game.Answer(snap.Current.IsTrue)
	if !fb.Outcome.Accepted || fb.QuestionID != deck[0].ID {
		t.Fatalf("expected 5th answer against first card, got %+v", fb)
	}
}

func TestGameRejectsAnswersAfterExpiry(t *testing.T) {
	store := newStubStore()
	ends := 0
	game := newManualGame(t, Options{
		RoundSeconds: 3,
		OnRoundEnd:   func(final, best int) { ends++ },
	}, store)

	q := game.Current()
	game.Answer(q.IsTrue)
	for i := 0; i < 3; i++ {
		game.Tick()
	}

	before := game.Snapshot()
	if !before.Expired || before.Current != nil {
		t.Fatalf("expected expired round without a question, got %+v", before)
	}
	fb, after := game.Answer(true)
	if fb.Outcome.Accepted {
		t.Fatalf("answer after expiry must be rejected")
	}
	if after.Round != before.Round {
		t.Fatalf("state changed after expiry: %+v -> %+v", before.Round, after.Round)
	}

	game.Tick()
	if ends != 1 || store.saves != 1 {
		t.Fatalf("expected one reconciliation, got ends=%d saves=%d", ends, store.saves)
	}
	if store.get(domain.BestScoreKey) != 1 || after.Best != 1 {
		t.Fatalf("expected best 1, stored %d snapshot %d", store.get(domain.BestScoreKey), after.Best)
	}
}

func TestGameExpiryKeepsHigherBest(t *testing.T) {
	store := newStubStore()
	store.values[domain.BestScoreKey] = 10
	game := newManualGame(t, Options{RoundSeconds: 1}, store)

	for i := 0; i < 7; i++ {
		q := game.Current()
		game.Answer(q.IsTrue)
	}
	snap := game.Tick()
	if snap.Round.Score != 7 || snap.Best != 10 {
		t.Fatalf("expected score 7 best 10, got %+v", snap)
	}
	if store.get(domain.BestScoreKey) != 10 {
		t.Fatalf("expected stored best to stay 10, got %d", store.get(domain.BestScoreKey))
	}
}

func TestGameRestartResetsRound(t *testing.T) {
	ends := 0
	game := newManualGame(t, Options{
		RoundSeconds: 2,
		OnRoundEnd:   func(int, int) { ends++ },
	}, nil)
	firstDeck := game.Deck()

	q := game.Current()
	game.Answer(!q.IsTrue)
	game.Tick()
	game.Tick()

	snap := game.Restart()
	if snap.Round != (domain.RoundState{RemainingSeconds: 2}) {
		t.Fatalf("unexpected state after restart %+v", snap.Round)
	}
	if snap.Feedback != nil {
		t.Fatalf("expected feedback cleared on restart")
	}
	if ends != 1 {
		t.Fatalf("expected one round end, got %d", ends)
	}

	secondDeck := game.Deck()
	if secondDeck[0].RoundTag != "1-0" || firstDeck[0].RoundTag != "0-0" {
		t.Fatalf("expected fresh seed, got %s then %s", firstDeck[0].RoundTag, secondDeck[0].RoundTag)
	}

	game.Tick()
	if game.Snapshot().Round.RemainingSeconds != 1 {
		t.Fatalf("expected timer running after restart")
	}
}

func TestGameHardModeToggleRestarts(t *testing.T) {
	game := newManualGame(t, Options{}, nil)

	q := game.Current()
	game.Answer(q.IsTrue)
	game.Tick()

	snap := game.SetHardMode(true)
	if !snap.Round.HardMode || snap.DeckSize != 8 {
		t.Fatalf("expected hard mode deck of 8, got %+v", snap)
	}
	if snap.Round.Index != 0 || snap.Round.Score != 0 || snap.Round.Streak != 0 || snap.Round.RemainingSeconds != DefaultRoundSeconds {
		t.Fatalf("expected full restart, got %+v", snap.Round)
	}

	q = game.Current()
	game.Answer(q.IsTrue)
	same := game.SetHardMode(true)
	if same.Round.Index != 1 {
		t.Fatalf("setting the same mode must not restart, got %+v", same.Round)
	}

	back := game.SetHardMode(false)
	if back.Round.HardMode || back.DeckSize != 4 || back.Round.Index != 0 {
		t.Fatalf("expected normal deck after toggling back, got %+v", back)
	}
}

func TestGameReactionsAndPulses(t *testing.T) {
	reactions := domain.DefaultReactions()
	game := newManualGame(t, Options{ReactionsEnabled: true, Reactions: reactions}, nil)

	q := game.Current()
	fb, _ := game.Answer(q.IsTrue)
	if fb.Reaction == nil || !containsReaction(reactions.Correct, *fb.Reaction) {
		t.Fatalf("expected correct-pool reaction, got %+v", fb.Reaction)
	}
	if len(fb.Pulses) != 1 || fb.Pulses[0].Kind != domain.PulseFlashGreen || fb.Pulses[0].Duration != 180*time.Millisecond {
		t.Fatalf("unexpected pulses %+v", fb.Pulses)
	}
	if fb.Blurb != q.Blurb {
		t.Fatalf("expected blurb %q, got %q", q.Blurb, fb.Blurb)
	}

	q = game.Current()
	fb, snap := game.Answer(!q.IsTrue)
	if fb.Reaction == nil || !containsReaction(reactions.Wrong, *fb.Reaction) {
		t.Fatalf("expected wrong-pool reaction, got %+v", fb.Reaction)
	}
	if len(fb.Pulses) != 2 || fb.Pulses[1].Kind != domain.PulseShake || fb.Pulses[1].Duration != 250*time.Millisecond {
		t.Fatalf("unexpected pulses %+v", fb.Pulses)
	}
	if snap.Feedback == nil || snap.Feedback.QuestionID != q.ID {
		t.Fatalf("expected snapshot feedback for %s", q.ID)
	}
}

func TestGameWithoutReactions(t *testing.T) {
	game := newManualGame(t, Options{Reactions: domain.DefaultReactions()}, nil)
	q := game.Current()
	fb, _ := game.Answer(q.IsTrue)
	if fb.Reaction != nil || len(fb.Pulses) != 0 {
		t.Fatalf("expected plain feedback, got %+v", fb)
	}
}

func TestGameShareRequest(t *testing.T) {
	game := newManualGame(t, Options{
		Rules:    Rules{Multiplier: true},
		Title:    "Quiz",
		ShareURL: "https://example.test/play",
	}, nil)
	for i := 0; i < 5; i++ {
		q := game.Current()
		game.Answer(q.IsTrue)
	}

	req := game.ShareRequest()
	if req.Text != `I scored 5 (x2 streak mult) in "Quiz"! Can you beat me?` {
		t.Fatalf("unexpected share text %q", req.Text)
	}
	if req.URL != "https://example.test/play" || req.Title != "Quiz" {
		t.Fatalf("unexpected share request %+v", req)
	}
}

func TestGameSubscribeAndClose(t *testing.T) {
	game := newManualGame(t, Options{}, nil)
	updates, cancel := game.Subscribe()
	defer cancel()

	initial := <-updates
	if initial.Round.RemainingSeconds != DefaultRoundSeconds {
		t.Fatalf("unexpected initial snapshot %+v", initial.Round)
	}

	game.Tick()
	if update := <-updates; update.Round.RemainingSeconds != DefaultRoundSeconds-1 {
		t.Fatalf("expected tick update, got %+v", update.Round)
	}

	game.Close()
	if _, ok := <-updates; ok {
		t.Fatalf("expected channel closed after game close")
	}
}

func TestGameRealClockExpires(t *testing.T) {
	game, err := NewGame(Options{
		Bank:         domain.DefaultBank(),
		RoundSeconds: 2,
		TickInterval: 5 * time.Millisecond,
	}, nil)
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	defer game.Close()
	updates, cancel := game.Subscribe()
	defer cancel()
	game.Start(context.Background())

	deadline := time.After(2 * time.Second)
	for {
		select {
		case snap := <-updates:
			if snap.Expired {
				return
			}
		case <-deadline:
			t.Fatalf("round never expired")
		}
	}
}

func TestNewGameRejectsEmptyBank(t *testing.T) {
	_, err := NewGame(Options{Bank: []domain.Question{}}, nil)
	if !errors.Is(err, domain.ErrEmptyBank) {
		t.Fatalf("expected empty bank error, got %v", err)
	}
}

func containsReaction(pool []domain.Reaction, r domain.Reaction) bool {
	for _, p := range pool {
		if p == r {
			return true
		}
	}
	return false
}

func TestGameSubscribeRacingClose(t *testing.T) {
	for i := 0; i < 200; i++ {
		game, err := NewGame(Options{Bank: domain.DefaultBank(), RandSeed: 3}, nil)
		if err != nil {
			t.Fatalf("new game: %v", err)
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			game.Close()
		}()
		updates, cancel := game.Subscribe()
		<-done

		if _, ok := <-updates; !ok {
			t.Fatalf("expected an initial snapshot before the channel closes")
		}
		if _, ok := <-updates; ok {
			t.Fatalf("expected channel closed after game close")
		}
		cancel()
	}
}

func TestGameRestartKeepsDeckWhenRebuildFails(t *testing.T) {
	game := newManualGame(t, Options{}, nil)
	deck := game.Deck()
	q := game.Current()
	game.Answer(q.IsTrue)

	game.mu.Lock()
	game.opts.Bank = nil
	game.mu.Unlock()

	snap := game.Restart()
	if snap.DeckSize != len(deck) || snap.Current == nil {
		t.Fatalf("expected previous deck kept, got %+v", snap)
	}
	if snap.Round.Index != 0 || snap.Round.Score != 0 {
		t.Fatalf("expected round reset, got %+v", snap.Round)
	}
}
