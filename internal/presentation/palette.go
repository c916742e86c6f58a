package presentation

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// ColorMode selects when ANSI styling is emitted.
type ColorMode string

const (
	// ColorModeAlways emits ANSI styling regardless of the output device.
	ColorModeAlways ColorMode = "always"
	// ColorModeAuto emits ANSI styling when the output device supports it.
	ColorModeAuto ColorMode = "auto"
	// ColorModeNever emits plain text.
	ColorModeNever ColorMode = "never"
)

const unsupportedColorModeTemplateConstant = "%w: %q (expected always, auto, or never)"

// ErrUnsupportedColorMode indicates an unknown color mode value.
var ErrUnsupportedColorMode = errors.New("unsupported color mode")

// ParseColorMode converts a configuration value into a ColorMode.
func ParseColorMode(raw string) (ColorMode, error) {
	switch ColorMode(strings.ToLower(strings.TrimSpace(raw))) {
	case ColorModeAlways:
		return ColorModeAlways, nil
	case ColorModeAuto:
		return ColorModeAuto, nil
	case ColorModeNever:
		return ColorModeNever, nil
	default:
		return "", fmt.Errorf(unsupportedColorModeTemplateConstant, ErrUnsupportedColorMode, raw)
	}
}

// Tone names the semantic color of a rendered fragment.
type Tone int

const (
	// TonePlain applies no color.
	TonePlain Tone = iota
	// ToneAffirmative marks fresh or healthy data (green).
	ToneAffirmative
	// ToneCaution marks possibly stale data or pending work (yellow).
	ToneCaution
	// ToneAlert marks uncommitted changes, commits to pull, and errors (red).
	ToneAlert
	// ToneEmphasis marks branch names and repositories needing attention (magenta).
	ToneEmphasis
	// ToneAccent marks detached commits (cyan).
	ToneAccent
	// ToneNeutral marks settled data (white).
	ToneNeutral
	// ToneInformative marks secondary counts and ages (blue).
	ToneInformative
)

var toneColors = map[Tone]lipgloss.Color{
	ToneAffirmative: lipgloss.Color("2"),
	ToneCaution:     lipgloss.Color("3"),
	ToneAlert:       lipgloss.Color("1"),
	ToneEmphasis:    lipgloss.Color("5"),
	ToneAccent:      lipgloss.Color("6"),
	ToneNeutral:     lipgloss.Color("7"),
	ToneInformative: lipgloss.Color("4"),
}

// Palette maps tones to styles bound to one output renderer.
type Palette struct {
	renderer *lipgloss.Renderer
	styles   map[Tone]lipgloss.Style
}

// NewPalette creates a palette for output written to writer.
func NewPalette(writer io.Writer, mode ColorMode) *Palette {
	renderer := lipgloss.NewRenderer(writer)
	switch mode {
	case ColorModeNever:
		renderer.SetColorProfile(termenv.Ascii)
	case ColorModeAuto:
		// keep the profile detected from writer
	default:
		renderer.SetColorProfile(termenv.ANSI)
	}

	styles := make(map[Tone]lipgloss.Style, len(toneColors)+1)
	styles[TonePlain] = renderer.NewStyle()
	for tone, color := range toneColors {
		styles[tone] = renderer.NewStyle().Foreground(color)
	}
	return &Palette{renderer: renderer, styles: styles}
}

// Style returns the lipgloss style of tone.
func (palette *Palette) Style(tone Tone) lipgloss.Style {
	style, exists := palette.styles[tone]
	if !exists {
		return palette.styles[TonePlain]
	}
	return style
}

// Paint renders text in tone. Empty text stays empty.
func (palette *Palette) Paint(tone Tone, text string) string {
	if len(text) == 0 {
		return text
	}
	return palette.Style(tone).Render(text)
}

// Renderer exposes the renderer the palette styles are bound to.
func (palette *Palette) Renderer() *lipgloss.Renderer {
	return palette.renderer
}
