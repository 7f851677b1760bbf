package models

// GlobalAssets holds admin-replaceable branding images. Empty fields mean
// the built-in defaults are used.
type GlobalAssets struct {
	LogoURL       string `json:"logo_url,omitempty"`
	CoverURL      string `json:"cover_url,omitempty"`
	BackgroundURL string `json:"background_url,omitempty"`
}
