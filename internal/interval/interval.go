package interval

import (
	"sort"
	"time"
)

// MinSlotDuration is the smallest free gap worth offering to callers.
const MinSlotDuration = time.Minute

// Interval is a half-open time range [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// IsValid reports whether the interval has a positive extent.
func (iv Interval) IsValid() bool {
	return iv.Start.Before(iv.End)
}

// Duration returns the extent of the interval.
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Overlaps reports whether two half-open intervals share any instant.
// Touching endpoints do not overlap.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Contains reports whether the instant falls within the half-open range.
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Merge coalesces the provided intervals into a minimal disjoint set sorted by
// start time. Intervals that merely touch (a.End == b.Start) are merged so that
// adjacent busy periods never leave a zero-width free gap; this is deliberately
// looser than the strict Overlaps test.
func Merge(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return nil
	}

	sorted := make([]Interval, len(intervals))
	copy(sorted, intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := make([]Interval, 0, len(sorted))
	current := sorted[0]
	for _, next := range sorted[1:] {
		if !next.Start.After(current.End) {
			if next.End.After(current.End) {
				current.End = next.End
			}
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	return merged
}

// FreeSlots computes the complement of the merged busy list within the window,
// dropping gaps shorter than minDuration. The busy list must be disjoint and
// sorted ascending, as produced by Merge.
func FreeSlots(merged []Interval, window Interval, minDuration time.Duration) []Interval {
	if !window.IsValid() {
		return nil
	}

	free := make([]Interval, 0, len(merged)+1)
	previousEnd := window.Start
	for _, busy := range merged {
		if busy.Start.After(previousEnd) {
			free = append(free, Interval{Start: previousEnd, End: busy.Start})
		}
		if busy.End.After(previousEnd) {
			previousEnd = busy.End
		}
	}
	if previousEnd.Before(window.End) {
		free = append(free, Interval{Start: previousEnd, End: window.End})
	}

	kept := free[:0]
	for _, slot := range free {
		if slot.Duration() >= minDuration {
			kept = append(kept, slot)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	return kept
}
