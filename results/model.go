package results

import (
	"github.com/ansel1/tapfail/parser"
)

// Group is a test together with the failing assertions reported for it.
//
// A group is created either by the test's declaration or, when the
// declaration is missing or late, by the test's first assertion. In the
// latter case Test carries the assertion's number and title.
type Group struct {
	Test       parser.TestEvent
	Assertions []parser.AssertionEvent // Arrival order, append-only
}

// Failed reports whether the group holds at least one failing assertion
func (g *Group) Failed() bool {
	return len(g.Assertions) > 0
}

// Accumulator holds every group seen so far, keyed by test number.
type Accumulator struct {
	groups      map[int]*Group
	assertCount int
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{
		groups: make(map[int]*Group),
	}
}

// Len returns the number of groups, including those without failures.
func (a *Accumulator) Len() int {
	return len(a.groups)
}

// AssertionCount returns the total number of assertions applied.
func (a *Accumulator) AssertionCount() int {
	return a.assertCount
}

// Group returns the group for a test number, or nil.
func (a *Accumulator) Group(testNumber int) *Group {
	return a.groups[testNumber]
}
