package domain

import "testing"

func TestDefaultBankContent(t *testing.T) {
	bank := DefaultBank()
	if len(bank) != 4 {
		t.Fatalf("expected 4 questions, got %d", len(bank))
	}

	truth := map[string]bool{"1": true, "2": false, "3": false, "4": false}
	for _, q := range bank {
		want, ok := truth[q.ID]
		if !ok || q.IsTrue != want {
			t.Fatalf("unexpected question %s (isTrue=%v)", q.ID, q.IsTrue)
		}
		if q.RoundTag != "" {
			t.Fatalf("bank question %s must not carry a round tag", q.ID)
		}
	}

	if got := bank[3].Blurb; got != "Cool brag, but nope—needs optics, like most human structures." {
		t.Fatalf("unexpected blurb for question 4: %q", got)
	}
}
