package collection

import (
	"math/rand"

	"github.com/liconlabs/corporate-legends/backend/internal/models"
)

// BurnTrade spends BurnCost duplicates and grants one card the user does not
// own yet, picked uniformly from the missing pool. Chosen ids may repeat
// (burning two copies of the same card) as long as the duplicate balance
// covers the full selection.
//
// Nothing is spent unless the whole trade succeeds: an invalid selection or
// a fully owned roster leaves the input state untouched.
func BurnTrade(s State, roster []models.Card, chosenIDs []int, cfg Config, rng *rand.Rand) (State, models.Card, error) {
	if len(chosenIDs) != cfg.BurnCost {
		return s, models.Card{}, ErrInvalidSelection
	}

	need := make(map[int]int, len(chosenIDs))
	for _, id := range chosenIDs {
		need[id]++
	}
	for id, n := range need {
		if s.Duplicates[id] < n {
			return s, models.Card{}, ErrInvalidSelection
		}
	}

	owned := s.OwnedSet()
	var missing []models.Card
	for _, c := range roster {
		if !owned[c.ID] {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return s, models.Card{}, ErrNothingToGrant
	}

	granted := missing[rng.Intn(len(missing))]

	next := s.Clone()
	for id, n := range need {
		next.Duplicates[id] -= n
		if next.Duplicates[id] == 0 {
			delete(next.Duplicates, id)
		}
	}
	next.OwnedCardIDs = append(next.OwnedCardIDs, granted.ID)
	return next, granted, nil
}
