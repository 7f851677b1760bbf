package collection

import (
	"fmt"
	"time"
)

// State is one user's album progress, persisted as a whole after every
// accepted mutation. Operations on it are pure: they take a State, return a
// new State, and never touch the receiver's maps or slices.
//
// Total copies of a card = 1 if its id is in OwnedCardIDs, plus
// Duplicates[id] if present. An id never appears in Duplicates unless it is
// also owned, and duplicate counts are always >= 1.
type State struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	IsRegistered bool   `json:"is_registered"`

	// OwnedCardIDs keeps first copies in acquisition order.
	OwnedCardIDs []int `json:"owned_card_ids"`

	// Duplicates counts extra copies beyond the first. Entries are removed
	// when they reach zero.
	Duplicates map[int]int `json:"duplicates"`

	UnlockedAchievements []string   `json:"unlocked_achievements"`
	PacksAvailable       int        `json:"packs_available"`
	LastPackOpenedAt     *time.Time `json:"last_pack_opened_at"`
	PacksOpened          int        `json:"packs_opened"`
}

// NewState returns the default empty state used before registration and
// whenever nothing has been persisted yet.
func NewState() State {
	return State{
		OwnedCardIDs:         []int{},
		Duplicates:           map[int]int{},
		UnlockedAchievements: []string{},
	}
}

// Clone deep-copies the state so callers can mutate the copy freely.
func (s State) Clone() State {
	c := s
	c.OwnedCardIDs = make([]int, len(s.OwnedCardIDs))
	copy(c.OwnedCardIDs, s.OwnedCardIDs)
	c.Duplicates = make(map[int]int, len(s.Duplicates))
	for id, n := range s.Duplicates {
		c.Duplicates[id] = n
	}
	c.UnlockedAchievements = make([]string, len(s.UnlockedAchievements))
	copy(c.UnlockedAchievements, s.UnlockedAchievements)
	if s.LastPackOpenedAt != nil {
		t := *s.LastPackOpenedAt
		c.LastPackOpenedAt = &t
	}
	return c
}

// OwnedSet returns owned card ids as a set for membership checks.
func (s State) OwnedSet() map[int]bool {
	set := make(map[int]bool, len(s.OwnedCardIDs))
	for _, id := range s.OwnedCardIDs {
		set[id] = true
	}
	return set
}

// Owns reports whether at least one copy of the card is held.
func (s State) Owns(id int) bool {
	for _, owned := range s.OwnedCardIDs {
		if owned == id {
			return true
		}
	}
	return false
}

// TotalCopies returns how many copies of the card the user holds.
func (s State) TotalCopies(id int) int {
	if !s.Owns(id) {
		return 0
	}
	return 1 + s.Duplicates[id]
}

// DuplicatesTotal sums all extra copies across the collection.
func (s State) DuplicatesTotal() int {
	total := 0
	for _, n := range s.Duplicates {
		total += n
	}
	return total
}

// CheckInvariant verifies the ownership bookkeeping rules. It is used by
// tests and as a cheap guard before persisting.
func (s State) CheckInvariant() error {
	owned := s.OwnedSet()
	if len(owned) != len(s.OwnedCardIDs) {
		return fmt.Errorf("owned card ids contain a repeated id")
	}
	for id, n := range s.Duplicates {
		if !owned[id] {
			return fmt.Errorf("card %d has duplicates but is not owned", id)
		}
		if n < 1 {
			return fmt.Errorf("card %d has a non-positive duplicate count %d", id, n)
		}
	}
	if s.PacksAvailable < 0 {
		return fmt.Errorf("packs available is negative: %d", s.PacksAvailable)
	}
	return nil
}

// Register marks the user as registered and grants the starter packs.
func Register(s State, name, email string, cfg Config) State {
	next := s.Clone()
	next.Name = name
	next.Email = email
	next.IsRegistered = true
	next.PacksAvailable += cfg.StarterPackGrant
	return next
}

// addCard folds one drawn card into the collection: first copy goes to the
// owned list, later copies increment the duplicate count.
func addCard(s *State, id int) {
	if s.Owns(id) {
		s.Duplicates[id]++
		return
	}
	s.OwnedCardIDs = append(s.OwnedCardIDs, id)
}
