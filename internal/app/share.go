package app

import (
	"context"
	"fmt"

	"pastfool/internal/domain"
)

// ClipboardConfirmation is surfaced only when sharing falls back to the clipboard.
const ClipboardConfirmation = "Copied share text to clipboard!"

// NativeSharer is a platform share facility.
type NativeSharer interface {
	Share(ctx context.Context, req domain.ShareRequest) error
}

// Clipboard receives copied text.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ShareText builds the brag message. With the multiplier on it includes the
// current streak multiplier.
func ShareText(score, multiplier int, title string, rules Rules) string {
	if rules.Multiplier {
		return fmt.Sprintf("I scored %d (x%d streak mult) in %q! Can you beat me?", score, multiplier, title)
	}
	return fmt.Sprintf("I scored %d in %s! Can you beat me?", score, title)
}

// Sharer prefers the native facility and falls back to the clipboard.
type Sharer struct {
	native    NativeSharer
	clipboard Clipboard
}

// NewSharer accepts a nil native sharer when none is available.
func NewSharer(native NativeSharer, clipboard Clipboard) *Sharer {
	return &Sharer{native: native, clipboard: clipboard}
}

// Share never fails: errors from either path are swallowed.
func (s *Sharer) Share(ctx context.Context, req domain.ShareRequest) domain.ShareResult {
	if s.native != nil {
		_ = s.native.Share(ctx, req)
		return domain.ShareResult{Method: "native", Text: req.Text}
	}

	text := req.Text
	if req.URL != "" {
		text += " " + req.URL
	}
	if s.clipboard != nil {
		_ = s.clipboard.WriteText(ctx, text)
	}
	return domain.ShareResult{Method: "clipboard", Text: text, Confirmation: ClipboardConfirmation}
}
