package domain

import "errors"

var (
	// ErrEmptyBank is returned when a deck or game is requested over no questions.
	ErrEmptyBank = errors.New("question bank is empty")
	// ErrSessionNotFound is returned when a game session is not open.
	ErrSessionNotFound = errors.New("game session not found")
	// ErrBestScoreNotFound indicates no best score has been stored for a key yet.
	ErrBestScoreNotFound = errors.New("best score not found")
	// ErrInvalidBestScore indicates the stored value is not a valid number.
	ErrInvalidBestScore = errors.New("stored best score is not a number")
	// ErrAdminDisabled is returned by admin surfaces when the panel is turned off.
	ErrAdminDisabled = errors.New("admin panel disabled")
	// ErrUnknownBackend indicates the configured storage backend does not exist.
	ErrUnknownBackend = errors.New("unknown storage backend")
)
