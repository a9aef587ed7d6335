package parser

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Event types as they appear in the "type" field of an input line
const (
	TypeTest      = "test"
	TypeAssertion = "assertion"
)

// TestEvent declares a test. TestNumber is the test's ordinal within the run.
type TestEvent struct {
	Type       string `json:"type"`
	TestNumber int    `json:"testNumber"`
	Title      string `json:"title"`
}

// AssertionEvent is a single check reported within a test.
// A nil OK is treated as a failure.
type AssertionEvent struct {
	Type       string     `json:"type"`
	TestNumber int        `json:"testNumber"`
	Title      string     `json:"title"`
	OK         *bool      `json:"ok,omitempty"`
	Diagnostic Diagnostic `json:"diagnostic,omitempty"`
}

// Failed reports whether the assertion should be treated as a failure
func (a AssertionEvent) Failed() bool {
	return a.OK == nil || !*a.OK
}

// Diagnostic is the raw JSON object attached to a failing assertion.
// Its shape decides how the assertion is rendered.
type Diagnostic json.RawMessage

// MarshalJSON keeps the diagnostic verbatim
func (d Diagnostic) MarshalJSON() ([]byte, error) {
	if len(d) == 0 {
		return []byte("null"), nil
	}
	return d, nil
}

// UnmarshalJSON stores a copy of the raw diagnostic
func (d *Diagnostic) UnmarshalJSON(data []byte) error {
	*d = append((*d)[0:0], data...)
	return nil
}

// DiagnosticFromYAML converts a YAML diagnostic block, as found in TAP
// output, into a Diagnostic.
func DiagnosticFromYAML(data []byte) (Diagnostic, error) {
	var fields map[string]any
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("parsing yaml diagnostic: %w", err)
	}
	if fields == nil {
		return nil, nil
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding yaml diagnostic: %w", err)
	}
	return Diagnostic(raw), nil
}

// normalizeDiagnostic converts a diagnostic given as a string, the raw
// YAML block of a TAP assertion, into its object form.
func normalizeDiagnostic(d Diagnostic) (Diagnostic, error) {
	trimmed := bytes.TrimSpace(d)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return d, nil
	}
	var block string
	if err := json.Unmarshal(trimmed, &block); err != nil {
		return nil, err
	}
	return DiagnosticFromYAML([]byte(block))
}

// Line is a decoded input line. Exactly one of Test or Assertion is set.
type Line struct {
	Test      *TestEvent
	Assertion *AssertionEvent
}

// ParseEvent parses a single JSON line of the event stream
func ParseEvent(line []byte) (Line, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(line, &head); err != nil {
		return Line{}, err
	}

	switch head.Type {
	case TypeTest:
		var evt TestEvent
		if err := json.Unmarshal(line, &evt); err != nil {
			return Line{}, err
		}
		return Line{Test: &evt}, nil
	case TypeAssertion:
		var evt AssertionEvent
		if err := json.Unmarshal(line, &evt); err != nil {
			return Line{}, err
		}
		diag, err := normalizeDiagnostic(evt.Diagnostic)
		if err != nil {
			return Line{}, err
		}
		evt.Diagnostic = diag
		return Line{Assertion: &evt}, nil
	default:
		return Line{}, fmt.Errorf("unknown event type %q", head.Type)
	}
}
