package format

import (
	"fmt"
	"strings"
	"testing"

	"github.com/ansel1/tapfail/parser"
	"github.com/stretchr/testify/assert"
)

// tagStyler marks styled text so tests can check which style was used
type tagStyler struct{}

func (tagStyler) Render(s Style, text string) string {
	tag := string(s.Color)
	if s.Bold {
		tag += "+bold"
	}
	if s.Dim {
		tag += "+dim"
	}
	return fmt.Sprintf("[%s:%s]", tag, text)
}

func assertion(title, diag string) parser.AssertionEvent {
	return parser.AssertionEvent{
		Type:       parser.TypeAssertion,
		TestNumber: 1,
		Title:      title,
		Diagnostic: parser.Diagnostic(diag),
	}
}

func TestRenderer_UnitDiff(t *testing.T) {
	r := NewRenderer(Plain{})
	a := assertion("should be equal", `{"expected":"abc","actual":"abd","at":"test.js:3:5"}`)

	cross := CrossSymbol()
	want := strings.Join([]string{
		"      " + cross + " should be equal",
		"        at test.js:3:5",
		"  ",
		"        actual expected",
		"  ",
		"        abcd",
		"  ",
	}, "\n")
	assert.Equal(t, want, r.Assertion(a, 2))
}

func TestRenderer_UnitDiff_NoExtraIndent(t *testing.T) {
	r := NewRenderer(Plain{})
	a := assertion("equal", `{"expected":1,"actual":2,"at":"x.js:1"}`)

	lines := strings.Split(r.Assertion(a, 0), "\n")
	assert.Len(t, lines, 7)
	assert.Equal(t, "    "+CrossSymbol()+" equal", lines[0])
	assert.Equal(t, "      at x.js:1", lines[1])
	assert.Equal(t, "", lines[2])
	assert.Equal(t, "      actual expected", lines[3])
}

func TestRenderer_UnitDiff_Styles(t *testing.T) {
	r := NewRenderer(tagStyler{})
	a := assertion("eq", `{"expected":"abc","actual":"abd","at":"t.js"}`)

	out := r.Assertion(a, 0)
	assert.Contains(t, out, "[red+bold:"+CrossSymbol()+" eq]")
	assert.Contains(t, out, "[+dim:  at ][+dim:t.js]")
	assert.Contains(t, out, "[bgGreen:actual] [bgRed:expected]")
	assert.Contains(t, out, "[white:ab][bgRed:c][bgGreen:d]")
}

func TestRenderer_UnitDiff_CoercesValues(t *testing.T) {
	r := NewRenderer(tagStyler{})

	tests := []struct {
		name string
		diag string
		want string
	}{
		{"numbers", `{"expected":10,"actual":10}`, "[white:10]"},
		{"trailing zero", `{"expected":1.0,"actual":1.0}`, "[white:1]"},
		{"exponent", `{"expected":1e3,"actual":1e3}`, "[white:1000]"},
		{"fraction", `{"expected":-2.250,"actual":-2.250}`, "[white:-2.25]"},
		{"booleans", `{"expected":true,"actual":true}`, "[white:true]"},
		{"objects", `{"expected":{"a":1},"actual":{"a":1}}`, `[white:{"a":1}]`},
		{"arrays", `{"expected":[1,2],"actual":[1,2]}`, "[white:[1,2]]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, r.Assertion(assertion("x", tt.diag), 0), tt.want)
		})
	}
}

func TestRenderer_Lint(t *testing.T) {
	r := NewRenderer(Plain{})
	a := assertion("a.js", `{"message":"no-unused-vars","severity":"error","file":"a.js","line":3,"name":"no-unused-vars"}`)

	want := strings.Join([]string{
		"      " + CrossSymbol() + " no-unused-vars  (no-unused-vars)",
		"        in a.js",
		"        on line 3",
		"  ",
	}, "\n")
	assert.Equal(t, want, r.Assertion(a, 2))
}

func TestRenderer_LintShapesEquivalent(t *testing.T) {
	r := NewRenderer(tagStyler{})

	shapeA := assertion("whatever", `{"message":"no-unused-vars","severity":"error","file":"a.js","line":3,"name":"no-unused-vars"}`)
	shapeB := assertion("a.js", `{"data":{"ruleId":"no-unused-vars","line":3},"severity":"error","message":"no-unused-vars"}`)

	assert.Equal(t, r.Assertion(shapeA, 2), r.Assertion(shapeB, 2))
}

func TestRenderer_LintSeverityColor(t *testing.T) {
	r := NewRenderer(tagStyler{})

	warn := assertion("a.js", `{"data":{"ruleId":"semi","line":1},"severity":"warn","message":"Missing semicolon."}`)
	out := r.Assertion(warn, 0)
	assert.Contains(t, out, "[yellow+bold:"+CrossSymbol()+" Missing semicolon.][yellow:  (semi)]")
	assert.Contains(t, out, "[+dim:  in ][+dim:a.js]")
	assert.Contains(t, out, "[+dim:  on line ][+bold:1]")

	for _, severity := range []string{"error", "warning", "fatal"} {
		diag := fmt.Sprintf(`{"message":"m","severity":%q,"file":"f.js","line":1,"name":"r"}`, severity)
		out := r.Assertion(assertion("t", diag), 0)
		assert.Contains(t, out, "[red+bold:", severity)
		assert.NotContains(t, out, "yellow", severity)
	}
}

func TestRenderer_Unrecognized(t *testing.T) {
	r := NewRenderer(tagStyler{})

	for _, diag := range []string{``, `null`, `{}`, `{"operator":"fail"}`, `"text"`} {
		assert.Equal(t, "", r.Assertion(assertion("t", diag), 2), diag)
	}
}

func TestRenderer_Header(t *testing.T) {
	r := NewRenderer(Plain{})
	assert.Equal(t, "  Failed Tests: There was 1 failure", r.Header(1))
	assert.Equal(t, "  Failed Tests: There were 2 failures", r.Header(2))
	assert.Equal(t, "  Failed Tests: There were 12 failures", r.Header(12))

	styled := NewRenderer(tagStyler{})
	assert.Equal(t, "  [red+bold:Failed Tests:] There were [red+bold:3] failures", styled.Header(3))
}

func TestRenderer_TestTitle(t *testing.T) {
	r := NewRenderer(tagStyler{})
	assert.Equal(t, "    adds numbers", r.TestTitle("adds numbers"))
}

func TestNewRenderer_NilStyler(t *testing.T) {
	r := NewRenderer(nil)
	assert.Equal(t, "  Failed Tests: There was 1 failure", r.Header(1))
}
