// ABOUTME: Color palette, symbols, and score-tier styles for toolscout output
// ABOUTME: Centralizes styling constants; honors NO_COLOR and dumb terminals
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Semantic colors used across all commands
var (
	ColorSuccess = lipgloss.Color("#22c55e")
	ColorError   = lipgloss.Color("#ef4444")
	ColorWarning = lipgloss.Color("#eab308")
	ColorInfo    = lipgloss.Color("#06b6d4")
	ColorMuted   = lipgloss.Color("#6b7280")
	// ColorAccent marks plugin names and headers
	ColorAccent = lipgloss.Color("#8b5cf6")
)

// Output symbols
var (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
	SymbolArrow   = "→"
	SymbolBullet  = "•"
)

// Relevance-score styles. The color breaks mirror the recommendation
// tiers: a score strong enough for immediate use reads green, one that
// asks for confirmation reads amber, anything weaker reads muted.
var (
	scoreStrongStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSuccess)
	scoreGoodStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorWarning)
	scoreWeakStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorMuted)
)

func init() {
	// NO_COLOR (https://no-color.org/) and dumb terminals get plain text
	if os.Getenv("NO_COLOR") != "" || os.Getenv("TERM") == "dumb" {
		lipgloss.SetColorProfile(termenv.Ascii)
	}
}
