package format

import (
	"strconv"
	"strings"

	"github.com/ansel1/tapfail/parser"
)

var (
	redBold = Style{Color: Red, Bold: true}
	dim     = Style{Dim: true}
	bold    = Style{Bold: true}
)

// Renderer formats failing assertions into report blocks
type Renderer struct {
	styler Styler
	cross  string
}

// NewRenderer creates a renderer using s for all styling.
// A nil styler renders plain text.
func NewRenderer(s Styler) *Renderer {
	if s == nil {
		s = Plain{}
	}
	return &Renderer{
		styler: s,
		cross:  CrossSymbol(),
	}
}

func (r *Renderer) render(s Style, text string) string {
	return r.styler.Render(s, text)
}

// Header renders the failure count line
func (r *Renderer) Header(failures int) string {
	past, plural := "were", "failures"
	if failures == 1 {
		past, plural = "was", "failure"
	}
	return Pad(r.render(redBold, "Failed Tests:") + " " +
		"There " + past + " " + r.render(redBold, strconv.Itoa(failures)) + " " + plural)
}

// TestTitle renders the title line of a failing test
func (r *Renderer) TestTitle(title string) string {
	return Pad(Pad(title))
}

// Assertion renders a failing assertion as a multi-line block, every line
// prefixed with extraIndent spaces. Assertions whose diagnostic has no
// known shape render as an empty string.
func (r *Renderer) Assertion(a parser.AssertionEvent, extraIndent int) string {
	switch Classify(a) {
	case ShapeUnitDiff:
		return r.unitDiff(a, extraIndent)
	case ShapeLint, ShapeLintRule:
		data, _ := Lint(a)
		return r.lint(data, extraIndent)
	default:
		return ""
	}
}

func (r *Renderer) unitDiff(a parser.AssertionEvent, extraIndent int) string {
	expected := stringify(field(a.Diagnostic, "expected"))
	actual := stringify(field(a.Diagnostic, "actual"))
	at := stringify(field(a.Diagnostic, "at"))

	lines := []string{
		Indent(r.render(redBold, r.cross+" "+a.Title)),
		Indent(r.render(dim, "  at ") + r.render(dim, at)),
		"",
		ErrorIndent(r.render(Style{Color: BgGreen}, "actual") + " " + r.render(Style{Color: BgRed}, "expected")),
		"",
		ErrorIndent(r.Diff(expected, actual)),
		"",
	}
	return block(lines, extraIndent)
}

// Diff renders the character diff from expected to actual. Added text is
// on a green background, removed text on red.
func (r *Renderer) Diff(expected, actual string) string {
	var b strings.Builder
	for _, seg := range DiffChars(expected, actual) {
		color := White
		switch {
		case seg.Added:
			color = BgGreen
		case seg.Removed:
			color = BgRed
		}
		b.WriteString(r.render(Style{Color: color}, seg.Value))
	}
	return b.String()
}

func (r *Renderer) lint(data LintData, extraIndent int) string {
	color := Red
	if data.Severity == "warn" {
		color = Yellow
	}

	lines := []string{
		Indent(r.render(Style{Color: color, Bold: true}, r.cross+" "+data.Message) +
			r.render(Style{Color: color}, "  ("+data.Name+")")),
		Indent(r.render(dim, "  in ") + r.render(dim, data.File)),
		Indent(r.render(dim, "  on line ") + r.render(bold, data.Line)),
		"",
	}
	return block(lines, extraIndent)
}
