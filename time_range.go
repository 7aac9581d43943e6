package timemanager

import (
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
)

// TimeRange is the half-open interval [Start, End): it contains Start and
// every instant up to but not including End.  Start == End is the empty
// range.  A TimeRange is a value; operations return new ranges rather than
// mutating the receiver.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange validates that start <= end.  A reversed range is a bug at
// the call site, so it fails here instead of being silently reordered.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if end.Before(start) {
		return TimeRange{}, errors.Wrapf(ErrInvalidOperation,
			"range start %s is after end %s", start.Format(time.RFC3339Nano), end.Format(time.RFC3339Nano))
	}
	return TimeRange{Start: start, End: end}, nil
}

// MustTimeRange is NewTimeRange for ranges known to be well formed, such as
// literals in tests and examples.  It panics on a reversed range.
func MustTimeRange(start, end time.Time) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

// IsEmpty reports whether the range contains no instants.
func (t TimeRange) IsEmpty() bool {
	return !t.Start.Before(t.End)
}

// Duration returns End - Start.  Never negative.
func (t TimeRange) Duration() time.Duration {
	if t.IsEmpty() {
		return 0
	}
	return t.End.Sub(t.Start)
}

// Contains reports whether Start <= timestamp < End.
func (t TimeRange) Contains(timestamp time.Time) bool {
	return !timestamp.Before(t.Start) && timestamp.Before(t.End)
}

// Overlaps reports whether the two half-open ranges share at least one
// instant.  Ranges that merely touch (one's End equals the other's Start) do
// not overlap.
func (t TimeRange) Overlaps(other TimeRange) bool {
	return t.Start.Before(other.End) && other.Start.Before(t.End)
}

// Adjacent reports whether the two ranges touch without overlapping.
func (t TimeRange) Adjacent(other TimeRange) bool {
	return t.End.Equal(other.Start) || other.End.Equal(t.Start)
}

// Intersection returns the instants contained in both ranges.  When the
// ranges are disjoint the result is empty; that is a valid outcome, not an
// error, so callers should check IsEmpty before using it.
func (t TimeRange) Intersection(other TimeRange) TimeRange {
	start := t.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := t.End
	if other.End.Before(end) {
		end = other.End
	}
	if end.Before(start) {
		return TimeRange{Start: start, End: start}
	}
	return TimeRange{Start: start, End: end}
}

// Union returns the single range covering both operands.  It is defined only
// when the operands overlap or are adjacent; two disjoint pieces cannot be
// represented by one contiguous range, so that case fails with
// ErrInvalidOperation.
func (t TimeRange) Union(other TimeRange) (TimeRange, error) {
	if !t.Overlaps(other) && !t.Adjacent(other) {
		return TimeRange{}, errors.Wrapf(ErrInvalidOperation,
			"union of disjoint ranges %s and %s", t, other)
	}
	start := t.Start
	if other.Start.Before(start) {
		start = other.Start
	}
	end := t.End
	if other.End.After(end) {
		end = other.End
	}
	return TimeRange{Start: start, End: end}, nil
}

// Subtract returns what is left of t after removing other: zero, one, or two
// ranges.  Two ranges come back when other sits strictly inside t.
func (t TimeRange) Subtract(other TimeRange) []TimeRange {
	if t.IsEmpty() {
		return nil
	}
	if !t.Overlaps(other) {
		return []TimeRange{t}
	}
	var remainder []TimeRange
	if t.Start.Before(other.Start) {
		remainder = append(remainder, TimeRange{Start: t.Start, End: other.Start})
	}
	if other.End.Before(t.End) {
		remainder = append(remainder, TimeRange{Start: other.End, End: t.End})
	}
	return remainder
}

// Shift returns the range moved by d, which may be negative.
func (t TimeRange) Shift(d time.Duration) TimeRange {
	return TimeRange{Start: t.Start.Add(d), End: t.End.Add(d)}
}

// Times returns the instants Start, Start+step, ... that fall inside the
// range.  A non-positive step returns nil.
func (t TimeRange) Times(step time.Duration) []time.Time {
	if step <= 0 || t.IsEmpty() {
		return nil
	}
	var out []time.Time
	for ts := t.Start; ts.Before(t.End); ts = ts.Add(step) {
		out = append(out, ts)
	}
	return out
}

// Equal reports whether both endpoints match exactly.  Note that two empty
// ranges with different endpoints are NOT equal.  This is intentional: the
// endpoints of an empty range still carry positional information that the
// set-normalization code relies on.
func (t TimeRange) Equal(other TimeRange) bool {
	return t.Start.Equal(other.Start) && t.End.Equal(other.End)
}

func (t TimeRange) String() string {
	return fmt.Sprintf("[%s, %s)", t.Start.Format(time.RFC3339Nano), t.End.Format(time.RFC3339Nano))
}
