package app

import "pastfool/internal/domain"

// Rules toggles the scoring variant.
type Rules struct {
	// Multiplier enables the streak ladder (x2 from a streak of 5, x3 from 10).
	Multiplier bool
}

// PointsForStreak is the award for a correct answer given the streak before it.
func PointsForStreak(streak int, rules Rules) int {
	if !rules.Multiplier {
		return 1
	}
	switch {
	case streak >= 10:
		return 3
	case streak >= 5:
		return 2
	default:
		return 1
	}
}

// Answer applies one answer to state. It is a no-op when there is no current
// question or the round has run out of time.
func Answer(state domain.RoundState, q *domain.Question, choice bool, rules Rules) (domain.RoundState, domain.Outcome) {
	if q == nil || !state.Active() {
		return state, domain.Outcome{}
	}

	out := domain.Outcome{
		Accepted:   true,
		Correct:    choice == q.IsTrue,
		Multiplier: PointsForStreak(state.Streak, rules),
	}
	if out.Correct {
		out.Awarded = out.Multiplier
		state.Score += out.Awarded
		state.Streak++
	} else {
		state.Streak = 0
	}
	state.Index++
	return state, out
}

// Restarted returns the initial state of a new round.
func Restarted(state domain.RoundState, roundSeconds int) domain.RoundState {
	return domain.RoundState{
		RemainingSeconds: roundSeconds,
		HardMode:         state.HardMode,
	}
}
