// Package clock supplies the time-domain collaborators around the core
// structures: current-time retrieval in a fixed location, conversion of
// foreign timestamps into that location, string parsing of time literals,
// and context-aware sleeping.  Values should pass through here before they
// enter a TimeRange, RangeSet, or Series so that a single consistent time
// domain is used per instance.
package clock

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
)

// DefaultLocation is the exchange-local timezone the library was written
// for.
const DefaultLocation = "Asia/Tokyo"

const dateLayout = "2006-01-02"

// Clock produces times in one fixed location.
type Clock struct {
	loc *time.Location
}

// New returns a Clock pinned to loc.  A nil loc falls back to UTC; use
// NewInLocation(DefaultLocation) for the exchange-local clock.
func New(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc}
}

// NewInLocation returns a Clock pinned to the named tzdata location.
func NewInLocation(name string) (*Clock, error) {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, errors.Wrapf(err, "unknown location %q", name)
	}
	return New(loc), nil
}

// Location returns the location the clock is pinned to.
func (c *Clock) Location() *time.Location {
	return c.loc
}

// Now returns the current time in the clock's location.
func (c *Clock) Now() time.Time {
	return time.Now().In(c.loc)
}

// FromUTC converts an instant to the clock's location.
func (c *Clock) FromUTC(t time.Time) time.Time {
	return t.In(c.loc)
}

// FromNaive reinterprets the wall-clock fields of t as local time in src,
// then converts to the clock's location.  A nil src means the wall clock is
// already in the clock's location.
func (c *Clock) FromNaive(t time.Time, src *time.Location) time.Time {
	if src == nil {
		src = c.loc
	}
	local := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), src)
	return local.In(c.loc)
}

// ParseDate parses a "2006-01-02" literal as midnight in the clock's
// location.
func (c *Clock) ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, c.loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "can not parse date %q", s)
	}
	return t, nil
}

// ParseTime parses an RFC3339 literal and converts it to the clock's
// location.
func (c *Clock) ParseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "can not parse time %q", s)
	}
	return t.In(c.loc), nil
}

// Sleep blocks for d or until the context is canceled.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SleepUntil blocks until the given instant or until the context is
// canceled.  An instant in the past returns immediately.
func (c *Clock) SleepUntil(ctx context.Context, t time.Time) error {
	return Sleep(ctx, t.Sub(c.Now()))
}
