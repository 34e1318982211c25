package model

// ThemeColors holds the named palette entries a theme defines.
type ThemeColors struct {
	BgPrimary       string `json:"--bg-primary"`
	BgSecondary     string `json:"--bg-secondary"`
	TextPrimary     string `json:"--text-primary"`
	TextSecondary   string `json:"--text-secondary"`
	BorderPrimary   string `json:"--border-primary"`
	AccentPrimary   string `json:"--accent-primary"`
	AccentSecondary string `json:"--accent-secondary"`
	AccentText      string `json:"--accent-text"`
	HoverPrimary    string `json:"--hover-primary"`
}

// Theme is a named color palette. Custom themes are persisted as JSON.
type Theme struct {
	ID     string      `json:"id"`
	Name   string      `json:"name"`
	Colors ThemeColors `json:"colors"`
}
