package engine

import "github.com/ansel1/tapfail/parser"

// Merge combines a test declaration stream and a failing assertion stream
// into a single stream ordered by arrival. EventComplete is sent once both
// inputs are closed, then the returned channel is closed.
func Merge(tests <-chan parser.TestEvent, assertions <-chan parser.AssertionEvent) <-chan Event {
	events := make(chan Event, 100)

	go func() {
		defer close(events)

		for tests != nil || assertions != nil {
			select {
			case t, ok := <-tests:
				if !ok {
					tests = nil
					continue
				}
				events <- Event{Type: EventTest, Test: t}
			case a, ok := <-assertions:
				if !ok {
					assertions = nil
					continue
				}
				events <- Event{Type: EventAssertion, Assertion: a}
			}
		}

		events <- Event{Type: EventComplete}
	}()

	return events
}
