package timemanager

import (
	"sort"
	"strings"
	"time"
)

// RangeSet is a normalized collection of disjoint TimeRanges: sorted
// ascending by Start, no two stored ranges overlap or touch, and no empty
// ranges are stored.  Adjacent ranges are always merged because under the
// half-open convention [a,b) followed by [b,c) is the single span [a,c).
//
// RangeSet is functional: Add and Remove return a new set and never mutate
// the receiver, so snapshots held by callers stay valid.
type RangeSet struct {
	ranges []TimeRange
}

// NewRangeSet builds a set from the given ranges, merging overlapping and
// adjacent ones and dropping empty ones.
func NewRangeSet(ranges ...TimeRange) RangeSet {
	sorted := make([]TimeRange, 0, len(ranges))
	for _, r := range ranges {
		if !r.IsEmpty() {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Start.Equal(sorted[j].Start) {
			return sorted[i].Start.Before(sorted[j].Start)
		}
		return sorted[i].End.Before(sorted[j].End)
	})

	out := make([]TimeRange, 0, len(sorted))
	for _, r := range sorted {
		if n := len(out); n > 0 && (out[n-1].Overlaps(r) || out[n-1].Adjacent(r)) {
			merged, _ := out[n-1].Union(r)
			out[n-1] = merged
			continue
		}
		out = append(out, r)
	}
	return RangeSet{ranges: out}
}

// Len returns the number of stored ranges.
func (s RangeSet) Len() int {
	return len(s.ranges)
}

// Ranges returns a copy of the stored ranges in ascending order.
func (s RangeSet) Ranges() []TimeRange {
	out := make([]TimeRange, len(s.ranges))
	copy(out, s.ranges)
	return out
}

// Duration returns the summed duration of all stored ranges.
func (s RangeSet) Duration() time.Duration {
	var total time.Duration
	for _, r := range s.ranges {
		total += r.Duration()
	}
	return total
}

// Add returns a new set additionally covering r.  Stored ranges that overlap
// or touch r form a contiguous run (the set is sorted and disjoint); the run
// is replaced by its union with r.
func (s RangeSet) Add(r TimeRange) RangeSet {
	if r.IsEmpty() {
		return s
	}

	// lo is the first stored range with End >= r.Start, hi the first with
	// Start > r.End.  [lo, hi) is exactly the overlap-or-touch run.
	lo := sort.Search(len(s.ranges), func(i int) bool { return !s.ranges[i].End.Before(r.Start) })
	hi := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Start.After(r.End) })

	merged := r
	if lo < hi {
		if s.ranges[lo].Start.Before(merged.Start) {
			merged.Start = s.ranges[lo].Start
		}
		if s.ranges[hi-1].End.After(merged.End) {
			merged.End = s.ranges[hi-1].End
		}
	}

	out := make([]TimeRange, 0, len(s.ranges)-(hi-lo)+1)
	out = append(out, s.ranges[:lo]...)
	out = append(out, merged)
	out = append(out, s.ranges[hi:]...)
	return RangeSet{ranges: out}
}

// Remove returns a new set with the coverage of r subtracted.  Only true
// overlap triggers subtraction; a stored range that merely touches r is left
// alone.  A stored range strictly containing r splits in two, growing the
// set by one.
func (s RangeSet) Remove(r TimeRange) RangeSet {
	if r.IsEmpty() {
		return s
	}

	// [lo, hi) is the run of stored ranges truly overlapping r.
	lo := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End.After(r.Start) })
	hi := sort.Search(len(s.ranges), func(i int) bool { return !s.ranges[i].Start.Before(r.End) })

	out := make([]TimeRange, 0, len(s.ranges)+1)
	out = append(out, s.ranges[:lo]...)
	for i := lo; i < hi; i++ {
		out = append(out, s.ranges[i].Subtract(r)...)
	}
	out = append(out, s.ranges[hi:]...)
	return RangeSet{ranges: out}
}

// Contains reports whether any stored range contains the timestamp.
func (s RangeSet) Contains(timestamp time.Time) bool {
	idx := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].Start.After(timestamp) })
	return idx > 0 && s.ranges[idx-1].Contains(timestamp)
}

// Overlaps reports whether any stored range shares an instant with r.
func (s RangeSet) Overlaps(r TimeRange) bool {
	if r.IsEmpty() {
		return false
	}
	// The first stored range ending after r.Start is the only candidate:
	// every later one starts at or after its start.
	idx := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End.After(r.Start) })
	return idx < len(s.ranges) && s.ranges[idx].Overlaps(r)
}

// Intersection returns the parts of the set covered by r.
func (s RangeSet) Intersection(r TimeRange) RangeSet {
	if r.IsEmpty() {
		return RangeSet{}
	}
	idx := sort.Search(len(s.ranges), func(i int) bool { return s.ranges[i].End.After(r.Start) })

	var out []TimeRange
	for ; idx < len(s.ranges) && s.ranges[idx].Start.Before(r.End); idx++ {
		if clipped := s.ranges[idx].Intersection(r); !clipped.IsEmpty() {
			out = append(out, clipped)
		}
	}
	return RangeSet{ranges: out}
}

// Union returns the set covering everything either operand covers.
func (s RangeSet) Union(other RangeSet) RangeSet {
	return NewRangeSet(append(s.Ranges(), other.ranges...)...)
}

// Equal reports whether both sets store the same ranges.
func (s RangeSet) Equal(other RangeSet) bool {
	if len(s.ranges) != len(other.ranges) {
		return false
	}
	for i := range s.ranges {
		if !s.ranges[i].Equal(other.ranges[i]) {
			return false
		}
	}
	return true
}

func (s RangeSet) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
