package format

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

// Color is a semantic color name
type Color string

const (
	NoColor Color = ""
	Red     Color = "red"
	Yellow  Color = "yellow"
	White   Color = "white"
	BgGreen Color = "bgGreen"
	BgRed   Color = "bgRed"
)

// Style combines a color with optional weight modifiers
type Style struct {
	Color Color
	Bold  bool
	Dim   bool
}

// Styler decorates text with a style
type Styler interface {
	Render(s Style, text string) string
}

// Plain is a Styler that returns text unchanged
type Plain struct{}

// Render returns text as is
func (Plain) Render(_ Style, text string) string {
	return text
}

// ColorMode controls whether escape sequences are produced
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// ParseColorMode parses a --color flag value
func ParseColorMode(s string) (ColorMode, error) {
	switch m := ColorMode(strings.ToLower(s)); m {
	case ColorAuto, ColorAlways, ColorNever:
		return m, nil
	default:
		return "", fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
	}
}

// LipglossStyler renders styles with lipgloss
type LipglossStyler struct {
	renderer *lipgloss.Renderer
}

// NewStyler creates a lipgloss backed Styler writing to w.
//
// In ColorAuto mode colors are enabled only if w is a terminal.
func NewStyler(w io.Writer, mode ColorMode) *LipglossStyler {
	r := lipgloss.NewRenderer(w)

	useColors := mode == ColorAlways
	if mode == ColorAuto {
		if f, ok := w.(*os.File); ok {
			useColors = isatty.IsTerminal(f.Fd())
		}
	}
	if useColors {
		r.SetColorProfile(termenv.ANSI)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &LipglossStyler{renderer: r}
}

// Render styles text. Each line is styled separately so that
// multi-line text is not padded into a block.
func (l *LipglossStyler) Render(s Style, text string) string {
	if text == "" {
		return ""
	}

	style := l.style(s)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

func (l *LipglossStyler) style(s Style) lipgloss.Style {
	style := l.renderer.NewStyle().
		TabWidth(lipgloss.NoTabConversion).
		Bold(s.Bold).
		Faint(s.Dim)

	switch s.Color {
	case Red:
		style = style.Foreground(lipgloss.Color("1"))
	case Yellow:
		style = style.Foreground(lipgloss.Color("3"))
	case White:
		style = style.Foreground(lipgloss.Color("7"))
	case BgGreen:
		style = style.Background(lipgloss.Color("2"))
	case BgRed:
		style = style.Background(lipgloss.Color("1"))
	}
	return style
}
