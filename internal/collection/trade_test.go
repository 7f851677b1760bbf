package collection

import (
	"errors"
	"testing"
)

func TestBurnTradeGrantsMissingCard(t *testing.T) {
	cfg := DefaultConfig()
	roster := testRoster(10, 0)

	state := registered()
	state.OwnedCardIDs = []int{1, 2, 3}
	state.Duplicates = map[int]int{1: 2, 2: 1, 3: 1}

	next, granted, err := BurnTrade(state, roster, []int{1, 2, 3}, cfg, testRNG())
	if err != nil {
		t.Fatalf("BurnTrade() error = %v", err)
	}

	if granted.ID < 4 || granted.ID > 10 {
		t.Errorf("BurnTrade() granted owned card %d", granted.ID)
	}
	if len(next.OwnedCardIDs) != 4 {
		t.Errorf("owned = %v, want 4 unique cards", next.OwnedCardIDs)
	}
	if total := next.DuplicatesTotal(); total != 1 {
		t.Errorf("duplicates total = %d, want 1", total)
	}
	if next.Duplicates[1] != 1 {
		t.Errorf("duplicates[1] = %d, want 1", next.Duplicates[1])
	}
	if _, ok := next.Duplicates[2]; ok {
		t.Error("spent duplicate entry for card 2 was not removed")
	}
	if err := next.CheckInvariant(); err != nil {
		t.Errorf("state violates invariant after trade: %v", err)
	}
}

// Burning two copies of the same card is allowed when the balance covers it.
func TestBurnTradeRepeatedIDs(t *testing.T) {
	cfg := DefaultConfig()
	roster := testRoster(10, 0)

	state := registered()
	state.OwnedCardIDs = []int{1, 2}
	state.Duplicates = map[int]int{1: 2, 2: 1}

	next, _, err := BurnTrade(state, roster, []int{1, 1, 2}, cfg, testRNG())
	if err != nil {
		t.Fatalf("BurnTrade() error = %v", err)
	}
	if len(next.Duplicates) != 0 {
		t.Errorf("duplicates = %v, want empty", next.Duplicates)
	}
}

func TestBurnTradeInvalidSelection(t *testing.T) {
	cfg := DefaultConfig()
	roster := testRoster(10, 0)

	base := registered()
	base.OwnedCardIDs = []int{1, 2}
	base.Duplicates = map[int]int{1: 1, 2: 1}

	tests := []struct {
		name   string
		chosen []int
	}{
		{"too few cards", []int{1, 2}},
		{"too many cards", []int{1, 1, 2, 2}},
		{"not a duplicate", []int{1, 2, 3}},
		{"repeat exceeds balance", []int{1, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, _, err := BurnTrade(base, roster, tt.chosen, cfg, testRNG())
			if !errors.Is(err, ErrInvalidSelection) {
				t.Fatalf("BurnTrade(%v) error = %v, want ErrInvalidSelection", tt.chosen, err)
			}
			if next.DuplicatesTotal() != 2 {
				t.Errorf("failed trade spent duplicates: %v", next.Duplicates)
			}
		})
	}
}

// A complete collection has nothing left to grant; the duplicates must
// survive the refusal.
func TestBurnTradeNothingToGrant(t *testing.T) {
	cfg := DefaultConfig()
	roster := testRoster(3, 0)

	state := registered()
	state.OwnedCardIDs = []int{1, 2, 3}
	state.Duplicates = map[int]int{1: 3}

	next, _, err := BurnTrade(state, roster, []int{1, 1, 1}, cfg, testRNG())
	if !errors.Is(err, ErrNothingToGrant) {
		t.Fatalf("BurnTrade() error = %v, want ErrNothingToGrant", err)
	}
	if next.Duplicates[1] != 3 {
		t.Errorf("refused trade spent duplicates: %v", next.Duplicates)
	}
}

// Copies are conserved up to the burn: three duplicates leave, one first
// copy arrives.
func TestBurnTradeConservation(t *testing.T) {
	cfg := DefaultConfig()
	roster := testRoster(20, 0)

	state := registered()
	state.OwnedCardIDs = []int{1, 2, 3, 4, 5}
	state.Duplicates = map[int]int{2: 2, 4: 1, 5: 3}

	before := len(state.OwnedCardIDs) + state.DuplicatesTotal()

	next, granted, err := BurnTrade(state, roster, []int{2, 5, 5}, cfg, testRNG())
	if err != nil {
		t.Fatalf("BurnTrade() error = %v", err)
	}

	after := len(next.OwnedCardIDs) + next.DuplicatesTotal()
	if after != before-cfg.BurnCost+1 {
		t.Errorf("copy count = %d, want %d", after, before-cfg.BurnCost+1)
	}
	if !next.Owns(granted.ID) {
		t.Errorf("granted card %d not in owned set", granted.ID)
	}
	// Input untouched.
	if state.Duplicates[5] != 3 || len(state.OwnedCardIDs) != 5 {
		t.Errorf("BurnTrade() mutated its input: %+v", state)
	}
}
