package ticker

import (
	"io"
	"strings"

	"price-ticker/internal/domain"

	"github.com/charmbracelet/lipgloss"
)

// Colorizer wraps text in a display color.
type Colorizer interface {
	Colorize(text string, color domain.Color) string
}

// PassthroughColorizer returns text unchanged.
type PassthroughColorizer struct{}

func (PassthroughColorizer) Colorize(text string, _ domain.Color) string { return text }

// ANSI 256 palette. GOLD, PURPLE and GRAY are the custom shades used for BTC,
// ETH and LTC.
var paletteANSI = map[domain.Color]lipgloss.Color{
	domain.ColorGold:   lipgloss.Color("184"),
	domain.ColorPurple: lipgloss.Color("97"),
	domain.ColorGray:   lipgloss.Color("244"),
	domain.ColorRed:    lipgloss.Color("9"),
	domain.ColorWhite:  lipgloss.Color("15"),
}

// LipglossColorizer renders foreground colors with lipgloss. The renderer
// detects the color profile of its output, so nothing is emitted when that
// output is not a terminal.
type LipglossColorizer struct {
	renderer *lipgloss.Renderer
}

// NewLipglossColorizer creates a colorizer for text written to w.
func NewLipglossColorizer(w io.Writer) *LipglossColorizer {
	return &LipglossColorizer{renderer: lipgloss.NewRenderer(w)}
}

// Colorize styles each line separately so lipgloss does not pad lines to a
// common width, and leaves tabs alone.
func (c *LipglossColorizer) Colorize(text string, color domain.Color) string {
	fg, ok := paletteANSI[color]
	if !ok {
		fg = paletteANSI[domain.ColorWhite]
	}
	style := c.renderer.NewStyle().Foreground(fg).TabWidth(lipgloss.NoTabConversion)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line == "" {
			continue
		}
		lines[i] = style.Render(line)
	}
	return strings.Join(lines, "\n")
}
