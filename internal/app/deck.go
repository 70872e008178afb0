package app

import (
	"fmt"
	"math/rand"

	"pastfool/internal/domain"
)

// BuildDeck returns a uniformly shuffled play order over bank. In hard mode
// every question appears twice. The bank itself is never modified.
func BuildDeck(bank []domain.Question, hardMode bool, seed int, rnd *rand.Rand) ([]domain.Question, error) {
	if len(bank) == 0 {
		return nil, domain.ErrEmptyBank
	}

	size := len(bank)
	if hardMode {
		size *= 2
	}
	deck := make([]domain.Question, 0, size)
	deck = append(deck, bank...)
	if hardMode {
		deck = append(deck, bank...)
	}

	rnd.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	for i := range deck {
		deck[i].RoundTag = fmt.Sprintf("%d-%d", seed, i)
	}
	return deck, nil
}

// questionAt consumes the deck cyclically.
func questionAt(deck []domain.Question, index int) *domain.Question {
	if len(deck) == 0 {
		return nil
	}
	q := deck[index%len(deck)]
	return &q
}
