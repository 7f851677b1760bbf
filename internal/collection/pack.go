package collection

import (
	"math/rand"
	"time"

	"github.com/liconlabs/corporate-legends/backend/internal/models"
)

// PackSource reports which allowance a pack open consumed.
type PackSource string

const (
	SourceDaily     PackSource = "daily"
	SourceInventory PackSource = "inventory"
)

// DailyAvailable reports whether the free daily pack can be opened under the
// configured policy.
func DailyAvailable(s State, cfg Config, now time.Time) bool {
	switch cfg.DailyPolicy {
	case PolicyAlways:
		return true
	case PolicyInventoryGated:
		return s.PacksAvailable == 0
	default: // PolicyCooldown
		if s.LastPackOpenedAt == nil {
			return true
		}
		return now.Sub(*s.LastPackOpenedAt) >= cfg.Cooldown
	}
}

// IsEligible reports whether any pack source is currently available.
func IsEligible(s State, cfg Config, now time.Time) bool {
	return DailyAvailable(s, cfg, now) || s.PacksAvailable > 0
}

// OpenPack draws a pack, folds it into the collection, and charges exactly
// one allowance. When both the daily allowance and an inventory pack are
// available the daily allowance is consumed, conserving inventory.
//
// The drawn cards come back in draw order so reveal order matches mutation
// order. On any error the returned state is the input state, unchanged.
func OpenPack(s State, roster []models.Card, cfg Config, now time.Time, rng *rand.Rand) (State, []models.Card, PackSource, error) {
	if len(roster) == 0 {
		return s, nil, "", ErrEmptyRoster
	}
	daily := DailyAvailable(s, cfg, now)
	if !daily && s.PacksAvailable == 0 {
		return s, nil, "", ErrNotEligible
	}

	pack := drawPack(s, roster, cfg, rng)

	next := s.Clone()
	for _, card := range pack {
		addCard(&next, card.ID)
	}
	source := SourceInventory
	if daily {
		source = SourceDaily
		t := now
		next.LastPackOpenedAt = &t
	} else {
		next.PacksAvailable--
	}
	next.PacksOpened++
	return next, pack, source, nil
}

// drawPack produces PackSize cards by uniform sampling with replacement,
// unless a starter sequence applies to this pack. Starter packs never repeat
// an id; the random fill after a short sequence skips ids already drawn.
func drawPack(s State, roster []models.Card, cfg Config, rng *rand.Rand) []models.Card {
	byID := make(map[int]models.Card, len(roster))
	for _, c := range roster {
		byID[c.ID] = c
	}

	pack := make([]models.Card, 0, cfg.PackSize)
	inPack := make(map[int]bool, cfg.PackSize)

	if s.PacksOpened < len(cfg.StarterSequences) {
		for _, id := range cfg.StarterSequences[s.PacksOpened] {
			if len(pack) == cfg.PackSize {
				break
			}
			card, ok := byID[id]
			if !ok || inPack[id] {
				continue
			}
			pack = append(pack, card)
			inPack[id] = true
		}
		// Fill the remainder without repeating an id. If the roster is too
		// small for distinct fills, fall through to plain sampling.
		var unused []models.Card
		for _, c := range roster {
			if !inPack[c.ID] {
				unused = append(unused, c)
			}
		}
		for len(pack) < cfg.PackSize && len(unused) > 0 {
			i := rng.Intn(len(unused))
			pack = append(pack, unused[i])
			inPack[unused[i].ID] = true
			unused[i] = unused[len(unused)-1]
			unused = unused[:len(unused)-1]
		}
	}

	for len(pack) < cfg.PackSize {
		pack = append(pack, roster[rng.Intn(len(roster))])
	}
	return pack
}
