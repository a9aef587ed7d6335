package output

import (
	"fmt"
	"io"

	"github.com/ansel1/tapfail/engine"
	"github.com/ansel1/tapfail/output/format"
	"github.com/ansel1/tapfail/results"
	"github.com/charmbracelet/log"
)

// assertionIndent is the extra indent applied to assertion blocks under
// a test title.
const assertionIndent = 2

// Line is a single report fragment. A Line with Err set is the last one
// sent before the stream closes.
type Line struct {
	Text string
	Err  error
}

// Reporter turns an event stream into report lines summarizing failures.
//
// Events are collected until the input completes; nothing is emitted
// before that.
type Reporter struct {
	renderer *format.Renderer
	logger   *log.Logger

	failures int
}

// Option configures the reporter
type Option func(*Reporter)

// WithRenderer sets the renderer used for all output
func WithRenderer(r *format.Renderer) Option {
	return func(rep *Reporter) {
		rep.renderer = r
	}
}

// WithLogger sets the logger used for diagnostics about the run
func WithLogger(l *log.Logger) Option {
	return func(rep *Reporter) {
		rep.logger = l
	}
}

// NewReporter creates a reporter. Output is plain text unless a renderer
// is supplied.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{
		renderer: format.NewRenderer(format.Plain{}),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Stream consumes events and returns the report lines.
// The returned channel is closed once the input completes. An upstream
// EventError is forwarded as a final Line with Err set.
func (r *Reporter) Stream(events <-chan engine.Event) <-chan Line {
	lines := make(chan Line, 100)

	go func() {
		defer close(lines)

		acc, err := results.Collect(events)
		if err != nil {
			// unblock the producer
			go func() {
				for range events {
				}
			}()
			lines <- Line{Err: fmt.Errorf("reading events: %w", err)}
			return
		}
		for _, text := range r.Lines(acc) {
			lines <- Line{Text: text}
		}
	}()

	return lines
}

// Lines renders the report for a completed accumulator: the failure
// header, then each failing test in ascending test number order. No lines
// are returned when there are no failures.
func (r *Reporter) Lines(acc *results.Accumulator) []string {
	r.failures = acc.AssertionCount()
	r.logger.Debug("collected events", "tests", acc.Len(), "failures", r.failures)
	if r.failures == 0 {
		return nil
	}

	out := []string{
		r.renderer.Header(r.failures),
		"",
	}
	for _, group := range acc.Failing() {
		out = append(out, r.renderer.TestTitle(group.Test.Title))
		for _, a := range group.Assertions {
			block := r.renderer.Assertion(a, assertionIndent)
			if block == "" {
				r.logger.Debug("unrecognized diagnostic", "test", group.Test.TestNumber, "assertion", a.Title)
			}
			out = append(out, block)
		}
		out = append(out, "")
	}
	return out
}

// WriteTo writes the report for events to w, one line per fragment.
func (r *Reporter) WriteTo(w io.Writer, events <-chan engine.Event) error {
	lines := r.Stream(events)
	for line := range lines {
		if line.Err != nil {
			return line.Err
		}
		if _, err := fmt.Fprintln(w, line.Text); err != nil {
			// let the stream goroutine finish
			for range lines {
			}
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}

// Failures returns the number of failing assertions. It is only
// meaningful once the stream has been drained.
func (r *Reporter) Failures() int {
	return r.failures
}

// HasFailures returns true if any assertion failed
func (r *Reporter) HasFailures() bool {
	return r.failures > 0
}
