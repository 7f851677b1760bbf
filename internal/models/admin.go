package models

// UpsertCardOverrideRequest replaces the stored override for one card.
// ImageData, when present, is a base64-encoded JPEG that will be stored and
// referenced instead of the generated image.
type UpsertCardOverrideRequest struct {
	CardOverride
	ImageData string `json:"image_data,omitempty"`
}

// UpdateGlobalAssetsRequest replaces branding assets. The *Data fields carry
// base64-encoded images; the corresponding URL is filled in after storing.
type UpdateGlobalAssetsRequest struct {
	LogoURL        string `json:"logo_url,omitempty"`
	CoverURL       string `json:"cover_url,omitempty"`
	BackgroundURL  string `json:"background_url,omitempty"`
	LogoData       string `json:"logo_data,omitempty"`
	CoverData      string `json:"cover_data,omitempty"`
	BackgroundData string `json:"background_data,omitempty"`
}
