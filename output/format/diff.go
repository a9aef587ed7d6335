package format

import (
	"slices"

	"github.com/aymanbagabas/go-udiff"
)

// Segment is a run of characters in a diff.
// At most one of Added and Removed is set.
type Segment struct {
	Value   string
	Added   bool
	Removed bool
}

// DiffChars computes a character level diff turning before into after.
// Removed segments come from before, added segments from after.
func DiffChars(before, after string) []Segment {
	edits := udiff.Strings(before, after)
	slices.SortStableFunc(edits, func(a, b udiff.Edit) int {
		return a.Start - b.Start
	})

	segments := make([]Segment, 0, 2*len(edits)+1)
	pos := 0
	for _, edit := range edits {
		segments = appendSegment(segments, Segment{Value: before[pos:edit.Start]})
		segments = appendSegment(segments, Segment{Value: before[edit.Start:edit.End], Removed: true})
		segments = appendSegment(segments, Segment{Value: edit.New, Added: true})
		pos = edit.End
	}
	segments = appendSegment(segments, Segment{Value: before[pos:]})

	return segments
}

// appendSegment appends seg, merging it into the previous segment of the
// same kind. Empty segments are dropped.
func appendSegment(segments []Segment, seg Segment) []Segment {
	if seg.Value == "" {
		return segments
	}
	if n := len(segments); n > 0 {
		last := &segments[n-1]
		if last.Added == seg.Added && last.Removed == seg.Removed {
			last.Value += seg.Value
			return segments
		}
	}
	return append(segments, seg)
}
