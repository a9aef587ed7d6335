package format

import (
	"strconv"

	"github.com/ansel1/tapfail/parser"
	"github.com/tidwall/gjson"
)

// Shape identifies how a failing assertion's diagnostic is rendered
type Shape int

const (
	ShapeUnknown  Shape = iota // Rendered as an empty string
	ShapeUnitDiff              // expected/actual value mismatch
	ShapeLint                  // linter diagnostic with message, severity and file
	ShapeLintRule              // linter diagnostic wrapped in data.ruleId, file in the title
)

func (s Shape) String() string {
	switch s {
	case ShapeUnitDiff:
		return "unit-diff"
	case ShapeLint:
		return "lint"
	case ShapeLintRule:
		return "lint-rule"
	default:
		return "unknown"
	}
}

// Classify picks the rendering shape of an assertion.
//
// Shapes are tested in a fixed order: unit diff, then lint, then lint
// rule. A diagnostic carrying fields of more than one shape takes the
// first match.
func Classify(a parser.AssertionEvent) Shape {
	diag := a.Diagnostic
	switch {
	case truthy(field(diag, "expected")) && truthy(field(diag, "actual")):
		return ShapeUnitDiff
	case truthy(field(diag, "message")) && truthy(field(diag, "severity")) && truthy(field(diag, "file")):
		return ShapeLint
	case truthy(field(diag, "data.ruleId")):
		return ShapeLintRule
	default:
		return ShapeUnknown
	}
}

// LintData is the normalized form of both linter shapes
type LintData struct {
	Line     string
	File     string
	Message  string
	Name     string // rule name
	Severity string
}

// Lint normalizes a lint or lint-rule diagnostic. ok is false for any
// other shape.
func Lint(a parser.AssertionEvent) (data LintData, ok bool) {
	diag := a.Diagnostic
	switch Classify(a) {
	case ShapeLint:
		return LintData{
			Line:     stringify(field(diag, "line")),
			File:     stringify(field(diag, "file")),
			Message:  stringify(field(diag, "message")),
			Name:     stringify(field(diag, "name")),
			Severity: stringify(field(diag, "severity")),
		}, true
	case ShapeLintRule:
		return LintData{
			Line:     stringify(field(diag, "data.line")),
			File:     a.Title,
			Message:  stringify(field(diag, "message")),
			Name:     stringify(field(diag, "data.ruleId")),
			Severity: stringify(field(diag, "severity")),
		}, true
	default:
		return LintData{}, false
	}
}

func field(diag parser.Diagnostic, path string) gjson.Result {
	return gjson.GetBytes(diag, path)
}

// truthy reports whether a value counts as present: missing, null,
// false, 0 and "" do not.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.True, gjson.JSON:
		return true
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return false
	}
}

// stringify renders a diagnostic value as text. Strings are unquoted,
// numbers use their shortest decimal form, everything else keeps its
// JSON form. Missing values are empty.
func stringify(r gjson.Result) string {
	switch r.Type {
	case gjson.String:
		return r.Str
	case gjson.Number:
		return strconv.FormatFloat(r.Num, 'f', -1, 64)
	case gjson.Null:
		if !r.Exists() {
			return ""
		}
		return "null"
	default:
		return r.Raw
	}
}
