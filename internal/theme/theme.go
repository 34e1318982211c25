// Package theme holds the built-in color themes and the lipgloss styles
// derived from the active one.
package theme

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/flowstate/internal/model"
)

// DefaultID is the theme used when no preference is stored.
const DefaultID = "light"

var builtin = []model.Theme{
	{ID: "light", Name: "Light", Colors: model.ThemeColors{
		BgPrimary: "#FFFFFF", BgSecondary: "#F3F4F6", TextPrimary: "#1F2937", TextSecondary: "#6B7280",
		BorderPrimary: "#E5E7EB", AccentPrimary: "#4F46E5", AccentSecondary: "#3B82F6", AccentText: "#FFFFFF", HoverPrimary: "#E5E7EB",
	}},
	{ID: "dark", Name: "Dark", Colors: model.ThemeColors{
		BgPrimary: "#111827", BgSecondary: "#1F2937", TextPrimary: "#F9FAFB", TextSecondary: "#9CA3AF",
		BorderPrimary: "#374151", AccentPrimary: "#6366F1", AccentSecondary: "#3B82F6", AccentText: "#FFFFFF", HoverPrimary: "#374151",
	}},
	{ID: "neon", Name: "Neon", Colors: model.ThemeColors{
		BgPrimary: "#0D012C", BgSecondary: "#1C0B4F", TextPrimary: "#F6F7F9", TextSecondary: "#A5B4FC",
		BorderPrimary: "#4F46E5", AccentPrimary: "#EC4899", AccentSecondary: "#0E7490", AccentText: "#FFFFFF", HoverPrimary: "#312E81",
	}},
	{ID: "minimal", Name: "Minimal", Colors: model.ThemeColors{
		BgPrimary: "#FFFFFF", BgSecondary: "#FAFAFA", TextPrimary: "#262626", TextSecondary: "#737373",
		BorderPrimary: "#F0F0F0", AccentPrimary: "#262626", AccentSecondary: "#A3A3A3", AccentText: "#FFFFFF", HoverPrimary: "#F5F5F5",
	}},
	{ID: "festive", Name: "Festive", Colors: model.ThemeColors{
		BgPrimary: "#FEF3C7", BgSecondary: "#FFFBEB", TextPrimary: "#92400E", TextSecondary: "#B45309",
		BorderPrimary: "#FDE68A", AccentPrimary: "#DC2626", AccentSecondary: "#16A34A", AccentText: "#FFFFFF", HoverPrimary: "#FDE68A",
	}},
}

// Builtin returns the themes that ship with the application.
func Builtin() []model.Theme {
	return append([]model.Theme(nil), builtin...)
}

// Default returns the light theme.
func Default() model.Theme {
	return builtin[0]
}

// Find looks id up among the built-in themes and then custom ones. An
// unknown id resolves to the default theme.
func Find(id string, custom []model.Theme) (model.Theme, bool) {
	for _, t := range builtin {
		if t.ID == id {
			return t, true
		}
	}
	for _, t := range custom {
		if t.ID == id {
			return t, true
		}
	}
	return Default(), false
}

var hexColor = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// Validate checks that a custom theme has an id, a name and nine hex
// colors.
func Validate(t model.Theme) error {
	if strings.TrimSpace(t.ID) == "" || strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("theme needs an id and a name")
	}
	c := t.Colors
	for name, v := range map[string]string{
		"--bg-primary": c.BgPrimary, "--bg-secondary": c.BgSecondary,
		"--text-primary": c.TextPrimary, "--text-secondary": c.TextSecondary,
		"--border-primary": c.BorderPrimary, "--accent-primary": c.AccentPrimary,
		"--accent-secondary": c.AccentSecondary, "--accent-text": c.AccentText,
		"--hover-primary": c.HoverPrimary,
	} {
		if !hexColor.MatchString(v) {
			return fmt.Errorf("theme %s: %s is not a hex color: %q", t.ID, name, v)
		}
	}
	return nil
}

// Styles are the lipgloss styles for one theme.
type Styles struct {
	Header    lipgloss.Style
	StatusBar lipgloss.Style
	Panel     lipgloss.Style
	Border    lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Muted     lipgloss.Style
	Help      lipgloss.Style
	Accent    lipgloss.Style
	Title     lipgloss.Style
	Toast     lipgloss.Style
	Badge     lipgloss.Style
}

// StylesFor derives the UI styles from a theme's palette.
func StylesFor(t model.Theme) Styles {
	c := t.Colors
	text := lipgloss.Color(c.TextPrimary)
	muted := lipgloss.Color(c.TextSecondary)
	border := lipgloss.Color(c.BorderPrimary)
	accent := lipgloss.Color(c.AccentPrimary)
	accentText := lipgloss.Color(c.AccentText)

	return Styles{
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(accentText).
			Background(accent).
			Padding(0, 1),
		StatusBar: lipgloss.NewStyle().
			Foreground(text).
			Background(lipgloss.Color(c.BgSecondary)).
			Padding(0, 1),
		Panel: lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border),
		Item: lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(text),
		Selected: lipgloss.NewStyle().
			PaddingLeft(1).
			Bold(true).
			Foreground(accent).
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(accent),
		Muted: lipgloss.NewStyle().Foreground(muted),
		Help:  lipgloss.NewStyle().Foreground(muted).Italic(true),
		Accent: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(c.AccentSecondary)),
		Title: lipgloss.NewStyle().Bold(true).Foreground(text),
		Toast: lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Foreground(text),
		Badge: lipgloss.NewStyle().
			Foreground(accentText).
			Background(lipgloss.Color(c.AccentSecondary)).
			Padding(0, 1),
	}
}

// Fixed colors that do not follow the theme.
var (
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorOrange = lipgloss.AdaptiveColor{Dark: "#FFA94D", Light: "#C05621"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
)

// PriorityStyle returns a color-coded style for a card priority.
func PriorityStyle(p model.Priority) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch p {
	case model.PriorityHigh:
		return base.Foreground(ColorRed)
	case model.PriorityMedium:
		return base.Foreground(ColorYellow)
	case model.PriorityLow:
		return base.Foreground(ColorBlue)
	default:
		return base.Foreground(ColorGray)
	}
}

// ToastStyle colors a toast by kind.
func ToastStyle(base lipgloss.Style, kind model.ToastKind) lipgloss.Style {
	switch kind {
	case model.ToastXP:
		return base.BorderForeground(ColorBlue)
	case model.ToastBadge:
		return base.BorderForeground(ColorYellow)
	case model.ToastLevelUp:
		return base.BorderForeground(ColorGreen)
	case model.ToastWebhook:
		return base.BorderForeground(ColorOrange)
	default:
		return base.BorderForeground(ColorGray)
	}
}
