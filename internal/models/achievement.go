package models

// Achievement is a static catalog entry. The catalog is fixed configuration
// data; only the set of unlocked ids lives in user state.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	RewardPacks int    `json:"reward_packs"`
}
