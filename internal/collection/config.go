package collection

import "time"

// DailyPackPolicy names the rule deciding whether the free daily pack is
// available. Demo and production deployments want different rules, so the
// policy is explicit configuration.
type DailyPackPolicy string

const (
	// PolicyCooldown allows one free pack per rolling cooldown window.
	PolicyCooldown DailyPackPolicy = "cooldown"
	// PolicyAlways makes the free pack always available (demo mode).
	PolicyAlways DailyPackPolicy = "always"
	// PolicyInventoryGated allows the free pack only while no reward packs
	// are waiting in inventory.
	PolicyInventoryGated DailyPackPolicy = "inventory_gated"
)

// Config is the tuning surface of the collection engine.
type Config struct {
	PackSize         int
	DailyPolicy      DailyPackPolicy
	Cooldown         time.Duration
	StarterPackGrant int
	BurnCost         int

	// StarterSequences fixes the card ids of a user's first packs for
	// onboarding. Sequence n applies to the n-th pack opened; any remainder
	// up to PackSize is filled with random draws that avoid ids already in
	// the pack. Empty means every pack is fully random.
	StarterSequences [][]int
}

// DefaultConfig is the production tuning: 5-card packs, a 24-hour daily
// cooldown, one starter pack at registration, and the 3-duplicates-for-1-card
// burn trade.
func DefaultConfig() Config {
	return Config{
		PackSize:         5,
		DailyPolicy:      PolicyCooldown,
		Cooldown:         24 * time.Hour,
		StarterPackGrant: 1,
		BurnCost:         3,
	}
}
