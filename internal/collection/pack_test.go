package collection

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/liconlabs/corporate-legends/backend/internal/models"
)

// testRoster builds n cards with ids 1..n. The card at legendaryID (if > 0)
// is Legendary; departments cycle through the catalog.
func testRoster(n int, legendaryID int) []models.Card {
	depts := models.AllDepartments()
	cards := make([]models.Card, 0, n)
	for i := 1; i <= n; i++ {
		rarity := models.RarityCommon
		if i == legendaryID {
			rarity = models.RarityLegendary
		}
		cards = append(cards, models.Card{
			ID:         i,
			Name:       "Empleado",
			Department: depts[(i-1)%len(depts)],
			Rarity:     rarity,
			Power:      50,
		})
	}
	return cards
}

func registered() State {
	s := NewState()
	s.IsRegistered = true
	return s
}

func testRNG() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func TestDailyAvailable(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-1 * time.Hour)
	stale := now.Add(-25 * time.Hour)

	tests := []struct {
		name   string
		policy DailyPackPolicy
		last   *time.Time
		packs  int
		want   bool
	}{
		{"cooldown never opened", PolicyCooldown, nil, 0, true},
		{"cooldown still active", PolicyCooldown, &recent, 0, false},
		{"cooldown expired", PolicyCooldown, &stale, 0, true},
		{"always with recent open", PolicyAlways, &recent, 0, true},
		{"inventory gated with empty inventory", PolicyInventoryGated, &recent, 0, true},
		{"inventory gated with packs waiting", PolicyInventoryGated, nil, 2, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DailyPolicy = tt.policy

			state := registered()
			state.LastPackOpenedAt = tt.last
			state.PacksAvailable = tt.packs

			if got := DailyAvailable(state, cfg, now); got != tt.want {
				t.Errorf("DailyAvailable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenPackNotEligible(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-1 * time.Hour)

	state := registered()
	state.LastPackOpenedAt = &recent
	state.PacksAvailable = 0

	next, pack, _, err := OpenPack(state, testRoster(10, 0), cfg, now, testRNG())
	if !errors.Is(err, ErrNotEligible) {
		t.Fatalf("OpenPack() error = %v, want ErrNotEligible", err)
	}
	if pack != nil {
		t.Errorf("OpenPack() returned cards on failure: %v", pack)
	}
	if len(next.OwnedCardIDs) != 0 || next.PacksOpened != 0 {
		t.Errorf("OpenPack() mutated state on failure: %+v", next)
	}
}

func TestOpenPackEmptyRoster(t *testing.T) {
	_, _, _, err := OpenPack(registered(), nil, DefaultConfig(), time.Now(), testRNG())
	if !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("OpenPack() error = %v, want ErrEmptyRoster", err)
	}
}

// The daily allowance and an inventory pack can be eligible at once; the
// daily allowance wins so reward packs are conserved.
func TestOpenPackPrefersDailyAllowance(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	state := registered()
	state.PacksAvailable = 3

	next, _, source, err := OpenPack(state, testRoster(10, 0), cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}
	if source != SourceDaily {
		t.Errorf("OpenPack() source = %s, want daily", source)
	}
	if next.PacksAvailable != 3 {
		t.Errorf("OpenPack() spent inventory despite daily allowance: packs = %d", next.PacksAvailable)
	}
	if next.LastPackOpenedAt == nil || !next.LastPackOpenedAt.Equal(now) {
		t.Errorf("OpenPack() did not charge the daily allowance: %v", next.LastPackOpenedAt)
	}
}

func TestOpenPackConsumesInventory(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	recent := now.Add(-1 * time.Hour)

	state := registered()
	state.LastPackOpenedAt = &recent
	state.PacksAvailable = 2

	next, pack, source, err := OpenPack(state, testRoster(10, 0), cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}
	if source != SourceInventory {
		t.Errorf("OpenPack() source = %s, want inventory", source)
	}
	if next.PacksAvailable != 1 {
		t.Errorf("OpenPack() packs available = %d, want 1", next.PacksAvailable)
	}
	if !next.LastPackOpenedAt.Equal(recent) {
		t.Errorf("OpenPack() touched the daily timestamp on an inventory open: %v", next.LastPackOpenedAt)
	}
	if len(pack) != cfg.PackSize {
		t.Errorf("OpenPack() drew %d cards, want %d", len(pack), cfg.PackSize)
	}
}

// A never-opened album with zero inventory still gets the daily freebie.
func TestOpenPackDailyWithNothingInInventory(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	state := registered()

	next, _, source, err := OpenPack(state, testRoster(10, 0), cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}
	if source != SourceDaily {
		t.Errorf("OpenPack() source = %s, want daily", source)
	}
	if next.PacksAvailable != 0 {
		t.Errorf("OpenPack() packs available = %d, want 0", next.PacksAvailable)
	}
	if next.LastPackOpenedAt == nil {
		t.Error("OpenPack() did not record the daily open")
	}
}

func TestOpenPackStarterSequence(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarterSequences = [][]int{{1, 2, 3, 4, 5}}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	next, pack, _, err := OpenPack(registered(), testRoster(10, 5), cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}

	wantOrder := []int{1, 2, 3, 4, 5}
	if len(pack) != len(wantOrder) {
		t.Fatalf("OpenPack() drew %d cards, want %d", len(pack), len(wantOrder))
	}
	for i, id := range wantOrder {
		if pack[i].ID != id {
			t.Errorf("pack[%d].ID = %d, want %d", i, pack[i].ID, id)
		}
	}

	if len(next.OwnedCardIDs) != 5 {
		t.Errorf("owned = %v, want ids 1-5", next.OwnedCardIDs)
	}
	if len(next.Duplicates) != 0 {
		t.Errorf("duplicates = %v, want empty", next.Duplicates)
	}
	if next.PacksOpened != 1 {
		t.Errorf("packs opened = %d, want 1", next.PacksOpened)
	}
}

// A short or repetitive starter sequence fills up with random cards but
// never repeats an id within the pack.
func TestOpenPackStarterSequenceNoRepeats(t *testing.T) {
	cfg := DefaultConfig()
	cfg.StarterSequences = [][]int{{6, 6, 7}}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	_, pack, _, err := OpenPack(registered(), testRoster(20, 0), cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}
	if len(pack) != cfg.PackSize {
		t.Fatalf("OpenPack() drew %d cards, want %d", len(pack), cfg.PackSize)
	}

	seen := make(map[int]bool)
	for _, card := range pack {
		if seen[card.ID] {
			t.Errorf("starter pack repeats card %d", card.ID)
		}
		seen[card.ID] = true
	}
	if !seen[6] || !seen[7] {
		t.Errorf("starter pack missing sequence ids: %v", pack)
	}
}

// The second pack uses the second sequence; later packs are fully random.
func TestOpenPackStarterSequenceAdvances(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DailyPolicy = PolicyAlways
	cfg.StarterSequences = [][]int{{1, 2, 3, 4, 5}, {6, 7, 8, 9, 10}}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	roster := testRoster(10, 0)
	rng := testRNG()

	state := registered()
	var pack []models.Card
	var err error

	state, _, _, err = OpenPack(state, roster, cfg, now, rng)
	if err != nil {
		t.Fatalf("first OpenPack() error = %v", err)
	}
	state, pack, _, err = OpenPack(state, roster, cfg, now, rng)
	if err != nil {
		t.Fatalf("second OpenPack() error = %v", err)
	}

	for i, id := range []int{6, 7, 8, 9, 10} {
		if pack[i].ID != id {
			t.Errorf("second pack[%d].ID = %d, want %d", i, pack[i].ID, id)
		}
	}
	if len(state.OwnedCardIDs) != 10 {
		t.Errorf("after two starter packs owned = %d unique cards, want 10", len(state.OwnedCardIDs))
	}
}

// Drawing cards already owned increments duplicates instead of re-adding.
func TestOpenPackFoldsDuplicates(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DailyPolicy = PolicyAlways
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	roster := testRoster(3, 0)

	state := registered()
	state.OwnedCardIDs = []int{1, 2, 3}

	next, _, _, err := OpenPack(state, roster, cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}

	if len(next.OwnedCardIDs) != 3 {
		t.Errorf("owned grew on all-duplicate pack: %v", next.OwnedCardIDs)
	}
	if total := next.DuplicatesTotal(); total != cfg.PackSize {
		t.Errorf("duplicates total = %d, want %d", total, cfg.PackSize)
	}
	if err := next.CheckInvariant(); err != nil {
		t.Errorf("state violates invariant after pack: %v", err)
	}
}

// OpenPack is pure: the input state must come back untouched.
func TestOpenPackDoesNotMutateInput(t *testing.T) {
	cfg := DefaultConfig()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	state := registered()
	state.OwnedCardIDs = []int{1}
	state.Duplicates = map[int]int{1: 1}

	_, _, _, err := OpenPack(state, testRoster(5, 0), cfg, now, testRNG())
	if err != nil {
		t.Fatalf("OpenPack() error = %v", err)
	}

	if len(state.OwnedCardIDs) != 1 || state.Duplicates[1] != 1 || state.PacksOpened != 0 {
		t.Errorf("OpenPack() mutated its input: %+v", state)
	}
	if state.LastPackOpenedAt != nil {
		t.Errorf("OpenPack() mutated input timestamp: %v", state.LastPackOpenedAt)
	}
}
