package models

type RegisterRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// OpenPackResponse returns the drawn cards in draw order so the client can
// reveal them in the same order the state was mutated.
type OpenPackResponse struct {
	Cards      []Card   `json:"cards"`
	Source     string   `json:"source"` // "daily" or "inventory"
	NewUnlocks []string `json:"new_unlocks,omitempty"`
}

// AlbumStats summarizes collection progress for the profile page.
type AlbumStats struct {
	OwnedUnique       int     `json:"owned_unique"`
	RosterSize        int     `json:"roster_size"`
	DuplicatesTotal   int     `json:"duplicates_total"`
	CompletionPercent float64 `json:"completion_percent"`
	PacksAvailable    int     `json:"packs_available"`
	AchievementsWon   int     `json:"achievements_won"`
}
