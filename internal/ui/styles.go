package ui

import "charm.land/lipgloss/v2"

// Hex values of the palette, kept separately for gradient math
const (
	hexPrimary = "#7C3AED"
	hexBg      = "#1F2937"
)

// Color palette - Purple + Cyan/Teal theme
var (
	ColorPrimary     = lipgloss.Color(hexPrimary) // Purple
	ColorSecondary   = lipgloss.Color("#06B6D4")  // Cyan
	ColorMuted       = lipgloss.Color("#6B7280")  // Gray
	ColorBorder      = lipgloss.Color("#374151")  // Dark gray
	ColorBorderFocus = lipgloss.Color(hexPrimary) // Purple when focused
	ColorBg          = lipgloss.Color(hexBg)      // Dark background
	ColorText        = lipgloss.Color("#F9FAFB")  // Light text
	ColorTextMuted   = lipgloss.Color("#B0B8C4")  // Muted text
	ColorTextInverse = lipgloss.Color("#1F2937")  // Dark text for light backgrounds
	ColorWarning     = lipgloss.Color("#F59E0B")  // Amber
	ColorInfo        = lipgloss.Color("#06B6D4")  // Cyan
	ColorError       = lipgloss.Color("#EF4444")  // Red
	ColorSuccess     = lipgloss.Color("#10B981")  // Green
)

// Header styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorPrimary).
			Padding(0, 1)

	HeaderTabStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	HeaderTabActiveStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorTextInverse).
				Background(ColorSecondary).
				Padding(0, 1)
)

// Footer styles
var (
	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)
)

// Row styles
var (
	RowTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	RowTitleFocusedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorPrimary)

	RowStatusStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Italic(true)

	RowErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)
)

// Tile styles
var (
	TileStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Foreground(ColorTextMuted).
			Padding(0, 1)

	TileFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.ThickBorder()).
				BorderForeground(ColorBorderFocus).
				Foreground(ColorText).
				Bold(true).
				Padding(0, 1)

	HeroTileStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorSecondary).
			Foreground(ColorText).
			Padding(0, 1)
)

// Panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder)

	PanelTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	FallbackStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true)

	FallbackFocusedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)
)

// Flash message styles
var (
	FlashErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	FlashWarningStyle = lipgloss.NewStyle().
				Foreground(ColorWarning).
				Bold(true)

	FlashInfoStyle = lipgloss.NewStyle().
			Foreground(ColorInfo)

	FlashSuccessStyle = lipgloss.NewStyle().
				Foreground(ColorSuccess)
)
