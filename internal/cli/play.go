package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"pastfool/internal/app"
	"pastfool/internal/config"
	"pastfool/internal/domain"

	"github.com/spf13/cobra"
)

// NewPlayCmd runs a round in the terminal.
func NewPlayCmd(configPath *string) *cobra.Command {
	var hard bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a round in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadOrDefault(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("hard") {
				cfg.Game.HardMode = hard
			}
			return runPlay(cmd.Context(), cfg, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().BoolVar(&hard, "hard", false, "double the deck for this session")
	return cmd
}

// terminal serializes writes from the input loop and the timer.
type terminal struct {
	mu  sync.Mutex
	out io.Writer
}

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

// WriteText implements app.Clipboard by printing the text to copy.
func (t *terminal) WriteText(_ context.Context, text string) error {
	t.printf("  %s\n", text)
	return nil
}

func runPlay(ctx context.Context, cfg config.Config, in io.Reader, out io.Writer) error {
	redisClient := newRedisClient(cfg)
	if redisClient != nil {
		defer redisClient.Close()
	}
	store, closeStore, err := openBestStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	term := &terminal{out: out}
	opts := gameOptions(cfg)
	game, err := app.NewGame(opts, app.NewBestScore(store, domain.BestScoreKey))
	if err != nil {
		return err
	}
	defer game.Close()
	admin := newAdmin(cfg)
	sharer := app.NewSharer(nil, term)

	updates, cancel := game.Subscribe()
	defer cancel()
	<-updates

	snap := game.Start(ctx)
	title := opts.Title
	if title == "" {
		title = domain.Title
	}
	term.printf("%s\n%s\n", title, domain.Tagline)
	term.printf("f = fact, c = cap, r = restart, h = hard mode, s = share, x = export, i <file> = import, q = quit\n")
	printCard(term, snap)

	done := make(chan struct{})
	defer close(done)
	go func() {
		announced := false
		last := opts.RoundSeconds
		for {
			select {
			case s, ok := <-updates:
				if !ok {
					return
				}
				switch {
				case s.Expired && !announced:
					announced = true
					term.printf("Time! Final score %d, best %d. Press r to play again.\n", s.Round.Score, s.Best)
				case !s.Expired:
					announced = false
					remaining := s.Round.RemainingSeconds
					if remaining != last && remaining%10 == 0 {
						term.printf("  %ds left\n", remaining)
					}
					last = remaining
				}
			case <-done:
				return
			}
		}
	}()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		switch strings.ToLower(fields[0]) {
		case "f", "fact":
			printAnswer(term, game, true)
		case "c", "cap":
			printAnswer(term, game, false)
		case "r", "restart":
			printCard(term, game.Restart())
		case "h", "hard":
			current := game.Snapshot().Round.HardMode
			snap := game.SetHardMode(!current)
			term.printf("Hard mode %s (%d cards)\n", onOff(snap.Round.HardMode), snap.DeckSize)
			printCard(term, snap)
		case "s", "share":
			res := sharer.Share(ctx, game.ShareRequest())
			if res.Confirmation != "" {
				term.printf("%s\n", res.Confirmation)
			}
		case "x", "export":
			if err := exportTo(admin, admin.Filename()); err != nil {
				term.printf("export failed: %v\n", err)
				continue
			}
			term.printf("Wrote %s\n", admin.Filename())
		case "i", "import":
			var text string
			if len(fields) > 1 {
				data, err := os.ReadFile(fields[1])
				if err != nil {
					term.printf("import failed: %v\n", err)
					continue
				}
				text = string(data)
			}
			msg, err := admin.ImportDocument(text)
			if err != nil {
				term.printf("import failed: %v\n", err)
				continue
			}
			term.printf("%s\n", msg)
		case "q", "quit":
			term.printf("Bye! Best score %d\n", game.Snapshot().Best)
			return nil
		default:
			term.printf("unknown command %q\n", fields[0])
		}
	}
	return scanner.Err()
}

func printAnswer(term *terminal, game *app.Game, choice bool) {
	fb, snap := game.Answer(choice)
	if !fb.Outcome.Accepted {
		term.printf("Round over. Press r to restart.\n")
		return
	}
	verdict := "Wrong!"
	if fb.Outcome.Correct {
		verdict = fmt.Sprintf("Correct! +%d", fb.Outcome.Awarded)
	}
	if fb.Reaction != nil {
		verdict += " " + fb.Reaction.Caption
	}
	term.printf("%s %s\n", verdict, fb.Blurb)
	printCard(term, snap)
}

func printCard(term *terminal, snap domain.Snapshot) {
	term.printf("[%ds] Score %d  Streak %d  Best %d\n", snap.Round.RemainingSeconds, snap.Round.Score, snap.Round.Streak, snap.Best)
	if snap.Current != nil {
		term.printf("> %s\n", snap.Current.Statement)
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
