package domain

import "time"

// Question is one true/false trivia item.
type Question struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	IsTrue    bool   `json:"isTrue"`
	Blurb     string `json:"blurb"`
	Source    string `json:"source,omitempty"`
	// RoundTag is assigned by the deck builder ("{seed}-{position}") and only
	// distinguishes duplicate copies inside a hard-mode deck.
	RoundTag string `json:"roundTag,omitempty"`
}

// Reaction is the flavor image and caption shown after an answer.
type Reaction struct {
	Img     string `json:"img"`
	Caption string `json:"caption"`
}

// Reactions holds the pools a reaction is picked from.
type Reactions struct {
	Correct []Reaction `json:"correct"`
	Wrong   []Reaction `json:"wrong"`
}

// PulseKind names a transient visual effect.
type PulseKind string

const (
	PulseFlashGreen PulseKind = "flash-green"
	PulseFlashRed   PulseKind = "flash-red"
	PulseShake      PulseKind = "shake"
)

// Pulse is advisory feedback for renderers; it carries no scoring meaning.
type Pulse struct {
	Kind     PulseKind     `json:"kind"`
	Duration time.Duration `json:"duration"`
}

// RoundState is the mutable state of one round.
type RoundState struct {
	Index            int  `json:"index"`
	Score            int  `json:"score"`
	Streak           int  `json:"streak"`
	RemainingSeconds int  `json:"remainingSeconds"`
	HardMode         bool `json:"hardMode"`
}

// Active reports whether the round still accepts answers.
func (s RoundState) Active() bool {
	return s.RemainingSeconds > 0
}

// Outcome is the scoring result of a single answer.
type Outcome struct {
	Accepted   bool `json:"accepted"`
	Correct    bool `json:"correct"`
	Awarded    int  `json:"awarded"`
	Multiplier int  `json:"multiplier"`
}

// Feedback is what the player sees after answering.
type Feedback struct {
	QuestionID string    `json:"questionId"`
	Outcome    Outcome   `json:"outcome"`
	Blurb      string    `json:"blurb,omitempty"`
	Source     string    `json:"source,omitempty"`
	Reaction   *Reaction `json:"reaction,omitempty"`
	Pulses     []Pulse   `json:"pulses,omitempty"`
}

// Snapshot is a read-only view of a game for rendering.
type Snapshot struct {
	Round      RoundState `json:"round"`
	Current    *Question  `json:"current,omitempty"`
	DeckSize   int        `json:"deckSize"`
	Best       int        `json:"best"`
	Multiplier int        `json:"multiplier"`
	Expired    bool       `json:"expired"`
	Feedback   *Feedback  `json:"feedback,omitempty"`
	UpdatedAt  time.Time  `json:"updatedAt"`
}

// ExportRecord is one question as written to the admin export document.
type ExportRecord struct {
	ID        string `json:"id"`
	Statement string `json:"statement"`
	IsTrue    bool   `json:"isTrue"`
	Blurb     string `json:"blurb"`
	Source    string `json:"source,omitempty"`
}

// ShareRequest is handed to a platform share facility.
type ShareRequest struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	URL   string `json:"url"`
}

// ShareResult reports which path a share took.
type ShareResult struct {
	Method       string `json:"method"`
	Text         string `json:"text"`
	Confirmation string `json:"confirmation,omitempty"`
}
