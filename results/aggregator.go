package results

import (
	"maps"
	"slices"

	"github.com/ansel1/tapfail/engine"
	"github.com/ansel1/tapfail/parser"
)

// Apply folds a single event into the accumulator and returns it.
//
// An existing group is never replaced: a test declared after its first
// assertion keeps the assertion's title. Events other than tests and
// assertions are ignored.
func (a *Accumulator) Apply(evt engine.Event) *Accumulator {
	switch evt.Type {
	case engine.EventTest:
		a.getOrInsert(evt.TestNumber(), evt.Test)

	case engine.EventAssertion:
		placeholder := parser.TestEvent{
			Type:       parser.TypeTest,
			TestNumber: evt.TestNumber(),
			Title:      evt.Assertion.Title,
		}
		group := a.getOrInsert(evt.TestNumber(), placeholder)
		group.Assertions = append(group.Assertions, evt.Assertion)
		a.assertCount++
	}
	return a
}

// getOrInsert returns the group for testNumber, creating it with test
// as its identity when absent.
func (a *Accumulator) getOrInsert(testNumber int, test parser.TestEvent) *Group {
	group, exists := a.groups[testNumber]
	if !exists {
		group = &Group{
			Test:       test,
			Assertions: make([]parser.AssertionEvent, 0),
		}
		a.groups[testNumber] = group
	}
	return group
}

// Failing returns the groups with at least one assertion in ascending
// test number order.
func (a *Accumulator) Failing() []*Group {
	failing := make([]*Group, 0, len(a.groups))
	for _, n := range slices.Sorted(maps.Keys(a.groups)) {
		if group := a.groups[n]; group.Failed() {
			failing = append(failing, group)
		}
	}
	return failing
}

// Fold reduces a finite event sequence into a new accumulator.
func Fold(events []engine.Event) *Accumulator {
	acc := NewAccumulator()
	for _, evt := range events {
		acc.Apply(evt)
	}
	return acc
}

// Collect drains events until EventComplete or the channel closes and
// returns the final accumulator. An EventError stops collection and is
// returned with the partial accumulator.
func Collect(events <-chan engine.Event) (*Accumulator, error) {
	acc := NewAccumulator()
	for evt := range events {
		switch evt.Type {
		case engine.EventComplete:
			return acc, nil
		case engine.EventError:
			return acc, evt.Error
		default:
			acc.Apply(evt)
		}
	}
	return acc, nil
}
