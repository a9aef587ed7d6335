package engine

import (
	"bufio"
	"io"

	"github.com/ansel1/tapfail/parser"
	"github.com/charmbracelet/log"
)

// EventType identifies the type of event emitted by the engine
type EventType string

const (
	EventRawLine   EventType = "raw"       // Line that is not a recognized event
	EventTest      EventType = "test"      // Test declaration
	EventAssertion EventType = "assertion" // Failing assertion
	EventError     EventType = "error"     // Error occurred during processing
	EventComplete  EventType = "complete"  // Input stream finished
)

// Event represents a single event emitted by the engine
type Event struct {
	Type      EventType
	RawLine   []byte                // Populated for EventRawLine
	Test      parser.TestEvent      // Populated for EventTest
	Assertion parser.AssertionEvent // Populated for EventAssertion
	Error     error                 // Populated for EventError
}

// TestNumber returns the test ordinal of a test or assertion event
func (e Event) TestNumber() int {
	if e.Type == EventAssertion {
		return e.Assertion.TestNumber
	}
	return e.Test.TestNumber
}

// Engine reads JSON-lines input and broadcasts events.
// It keeps no state about tests.
type Engine struct {
	rawWriter io.Writer
	logger    *log.Logger
}

// Option configures the engine
type Option func(*Engine)

// WithRawOutput configures engine to write all raw lines to w
func WithRawOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.rawWriter = w
	}
}

// WithLogger sets the logger used to report skipped input
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// NewEngine creates a new event processing engine
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Stream reads from input, parses lines, and emits events via channel.
// Passing assertions are dropped. The channel always ends with
// EventComplete and is then closed.
func (e *Engine) Stream(input io.Reader) <-chan Event {
	events := make(chan Event, 100)

	go func() {
		defer close(events)

		scanner := bufio.NewScanner(input)
		scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
		lineNo := 0
		for scanner.Scan() {
			line := scanner.Bytes()
			lineNo++

			if e.rawWriter != nil {
				e.rawWriter.Write(line)
				e.rawWriter.Write([]byte("\n"))
			}

			if len(line) == 0 {
				continue
			}

			parsed, err := parser.ParseEvent(line)
			if err != nil {
				e.logger.Debug("skipping line", "line", lineNo, "err", err)
				// scanner reuses the buffer
				lineCopy := make([]byte, len(line))
				copy(lineCopy, line)
				events <- Event{
					Type:    EventRawLine,
					RawLine: lineCopy,
				}
				continue
			}

			switch {
			case parsed.Test != nil:
				events <- Event{Type: EventTest, Test: *parsed.Test}
			case parsed.Assertion != nil && parsed.Assertion.Failed():
				events <- Event{Type: EventAssertion, Assertion: *parsed.Assertion}
			}
		}

		if err := scanner.Err(); err != nil {
			events <- Event{
				Type:  EventError,
				Error: err,
			}
		}

		events <- Event{
			Type: EventComplete,
		}
	}()

	return events
}
