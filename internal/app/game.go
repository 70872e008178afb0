package app

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"pastfool/internal/domain"
)

// Options configures a single game screen.
type Options struct {
	Bank         []domain.Question
	Reactions    domain.Reactions
	RoundSeconds int
	// TickInterval of zero leaves the clock to Tick (manual mode).
	TickInterval time.Duration
	HardMode     bool
	Rules        Rules
	// ReactionsEnabled turns on reaction picks and pulses after each answer.
	ReactionsEnabled bool
	FlashDuration    time.Duration
	ShakeDuration    time.Duration
	Title            string
	ShareURL         string
	// RandSeed of zero seeds from the clock.
	RandSeed   int64
	Now        func() time.Time
	OnRoundEnd func(final, best int)
}

// DefaultRoundSeconds is the length of a round.
const DefaultRoundSeconds = 60

func (o Options) withDefaults() Options {
	if o.RoundSeconds <= 0 {
		o.RoundSeconds = DefaultRoundSeconds
	}
	if o.FlashDuration <= 0 {
		o.FlashDuration = 180 * time.Millisecond
	}
	if o.ShakeDuration <= 0 {
		o.ShakeDuration = 250 * time.Millisecond
	}
	if o.Title == "" {
		o.Title = domain.Title
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.RandSeed == 0 {
		o.RandSeed = time.Now().UnixNano()
	}
	return o
}

// Game owns one round state, its deck and its timer. Timer ticks and player
// actions are serialized by mu.
type Game struct {
	opts  Options
	best  *BestScore
	timer *RoundTimer

	mu          sync.Mutex
	ctx         context.Context
	rnd         *rand.Rand
	state       domain.RoundState
	deck        []domain.Question
	seed        int
	timerGen    uint64
	reconciled  bool
	feedback    *domain.Feedback
	closed      bool
	subscribers map[chan domain.Snapshot]struct{}
}

// NewGame builds the first deck. The timer does not run until Start.
func NewGame(opts Options, best *BestScore) (*Game, error) {
	opts = opts.withDefaults()
	if best == nil {
		best = NewBestScore(nil, domain.BestScoreKey)
	}

	g := &Game{
		opts:        opts,
		best:        best,
		ctx:         context.Background(),
		rnd:         rand.New(rand.NewSource(opts.RandSeed)),
		state:       domain.RoundState{RemainingSeconds: opts.RoundSeconds, HardMode: opts.HardMode},
		subscribers: make(map[chan domain.Snapshot]struct{}),
	}
	deck, err := BuildDeck(opts.Bank, opts.HardMode, g.seed, g.rnd)
	if err != nil {
		return nil, err
	}
	g.deck = deck
	g.timer = NewRoundTimer(opts.RoundSeconds, opts.TickInterval, g.onTimer)
	return g, nil
}

// Start loads the best score and starts the countdown.
func (g *Game) Start(ctx context.Context) domain.Snapshot {
	g.best.Load(ctx)

	g.mu.Lock()
	defer g.mu.Unlock()
	g.ctx = ctx
	g.timerGen = g.timer.Start()
	return g.snapshotLocked()
}

// Answer scores choice against the current question. Answers after the
// countdown reached zero are rejected without touching the state.
func (g *Game) Answer(choice bool) (domain.Feedback, domain.Snapshot) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.state.RemainingSeconds = g.timer.Remaining()
	q := g.currentLocked()
	next, out := Answer(g.state, q, choice, g.opts.Rules)
	if !out.Accepted {
		return domain.Feedback{Outcome: out}, g.snapshotLocked()
	}
	g.state = next

	fb := domain.Feedback{
		QuestionID: q.ID,
		Outcome:    out,
		Blurb:      q.Blurb,
		Source:     q.Source,
	}
	if g.opts.ReactionsEnabled {
		g.decorateLocked(&fb)
	}
	g.feedback = &fb
	return fb, g.broadcastLocked()
}

// Restart begins a fresh round over a newly shuffled deck.
func (g *Game) Restart() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.restartLocked()
	return g.broadcastLocked()
}

// SetHardMode switches the deck size. Any change forces a full restart.
func (g *Game) SetHardMode(enabled bool) domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state.HardMode == enabled {
		return g.snapshotLocked()
	}
	g.state.HardMode = enabled
	g.restartLocked()
	return g.broadcastLocked()
}

// Tick advances the countdown by one second; used in manual mode.
func (g *Game) Tick() domain.Snapshot {
	g.timer.Advance()
	return g.Snapshot()
}

// Snapshot returns the current view of the game.
func (g *Game) Snapshot() domain.Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.snapshotLocked()
}

// Current returns the question awaiting an answer, or nil once the round ended.
func (g *Game) Current() *domain.Question {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentLocked()
}

// Deck returns a copy of the deck for this round.
func (g *Game) Deck() []domain.Question {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]domain.Question(nil), g.deck...)
}

// ShareRequest builds the brag message for the current score.
func (g *Game) ShareRequest() domain.ShareRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	mult := PointsForStreak(g.state.Streak, g.opts.Rules)
	return domain.ShareRequest{
		Title: g.opts.Title,
		Text:  ShareText(g.state.Score, mult, g.opts.Title, g.opts.Rules),
		URL:   g.opts.ShareURL,
	}
}

// Subscribe returns a channel of snapshots, starting with the current one.
// The caller must invoke the returned cancel function to avoid leaks.
func (g *Game) Subscribe() (<-chan domain.Snapshot, func()) {
	ch := make(chan domain.Snapshot, 8)

	g.mu.Lock()
	ch <- g.snapshotLocked()
	if g.closed {
		g.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	g.subscribers[ch] = struct{}{}
	g.mu.Unlock()

	cancel := func() {
		g.mu.Lock()
		if _, ok := g.subscribers[ch]; ok {
			delete(g.subscribers, ch)
			close(ch)
		}
		g.mu.Unlock()
	}
	return ch, cancel
}

// Close stops the timer and releases subscribers. It is safe to call twice.
func (g *Game) Close() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return
	}
	g.closed = true
	g.timer.Stop()
	for ch := range g.subscribers {
		delete(g.subscribers, ch)
		close(ch)
	}
}

func (g *Game) onTimer(ev TimerEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed || ev.Generation != g.timerGen {
		return
	}
	g.state.RemainingSeconds = ev.Remaining
	if ev.Expired {
		g.reconcileLocked()
	}
	g.broadcastLocked()
}

func (g *Game) restartLocked() {
	if g.timer.Expired() {
		// the expiry notification may still be queued behind us
		g.reconcileLocked()
	}

	g.seed++
	deck, err := BuildDeck(g.opts.Bank, g.state.HardMode, g.seed, g.rnd)
	if err != nil {
		log.Printf("rebuild deck, keeping previous: %v", err)
	} else {
		g.deck = deck
	}
	g.state = Restarted(g.state, g.timer.Length())
	g.reconciled = false
	g.feedback = nil
	g.timerGen = g.timer.Reset()
}

func (g *Game) reconcileLocked() {
	if g.reconciled {
		return
	}
	g.reconciled = true
	g.state.RemainingSeconds = 0
	best := g.best.Reconcile(g.ctx, g.state.Score)
	if g.opts.OnRoundEnd != nil {
		g.opts.OnRoundEnd(g.state.Score, best)
	}
}

func (g *Game) decorateLocked(fb *domain.Feedback) {
	if fb.Outcome.Correct {
		fb.Reaction = pickReaction(g.rnd, g.opts.Reactions.Correct)
		fb.Pulses = []domain.Pulse{{Kind: domain.PulseFlashGreen, Duration: g.opts.FlashDuration}}
		return
	}
	fb.Reaction = pickReaction(g.rnd, g.opts.Reactions.Wrong)
	fb.Pulses = []domain.Pulse{
		{Kind: domain.PulseFlashRed, Duration: g.opts.FlashDuration},
		{Kind: domain.PulseShake, Duration: g.opts.ShakeDuration},
	}
}

func pickReaction(rnd *rand.Rand, pool []domain.Reaction) *domain.Reaction {
	if len(pool) == 0 {
		return nil
	}
	r := pool[rnd.Intn(len(pool))]
	return &r
}

func (g *Game) currentLocked() *domain.Question {
	if !g.state.Active() {
		return nil
	}
	return questionAt(g.deck, g.state.Index)
}

func (g *Game) broadcastLocked() domain.Snapshot {
	snap := g.snapshotLocked()
	for ch := range g.subscribers {
		select {
		case ch <- snap:
		default:
			// drop the stale update so a slow reader never blocks the game
			select {
			case <-ch:
			default:
			}
			ch <- snap
		}
	}
	return snap
}

func (g *Game) snapshotLocked() domain.Snapshot {
	snap := domain.Snapshot{
		Round:      g.state,
		Current:    g.currentLocked(),
		DeckSize:   len(g.deck),
		Best:       g.best.Value(),
		Multiplier: PointsForStreak(g.state.Streak, g.opts.Rules),
		Expired:    !g.state.Active(),
		UpdatedAt:  g.opts.Now(),
	}
	if g.feedback != nil {
		fb := *g.feedback
		snap.Feedback = &fb
	}
	return snap
}
