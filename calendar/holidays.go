package calendar

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/Linear-Logic-inc/timemanager/storage"
)

const dateLayout = "2006-01-02"

// HolidaySet is the exchange holiday list, keyed by calendar date in a fixed
// location.  Weekends and the new-year closure are not part of the set; the
// Calendar adds those on its own.
type HolidaySet struct {
	loc   *time.Location
	dates map[string]struct{}
}

// NewHolidaySet returns an empty set for dates in loc.
func NewHolidaySet(loc *time.Location) HolidaySet {
	return HolidaySet{loc: loc, dates: map[string]struct{}{}}
}

// Add marks the calendar date of t as a holiday.
func (h HolidaySet) Add(t time.Time) {
	h.dates[t.In(h.loc).Format(dateLayout)] = struct{}{}
}

// Contains reports whether the calendar date of t is a holiday.
func (h HolidaySet) Contains(t time.Time) bool {
	if h.dates == nil {
		return false
	}
	_, ok := h.dates[t.In(h.loc).Format(dateLayout)]
	return ok
}

// Len returns the number of holiday dates.
func (h HolidaySet) Len() int {
	return len(h.dates)
}

// ParseHolidays reads a holiday list with one 2006-01-02 date per line.
// Blank lines and lines starting with # are skipped.
func ParseHolidays(data []byte, loc *time.Location) (HolidaySet, error) {
	set := NewHolidaySet(loc)
	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := time.ParseInLocation(dateLayout, line, loc)
		if err != nil {
			return HolidaySet{}, errors.Wrapf(err, "holiday list line %d: %q", i+1, line)
		}
		set.Add(t)
	}
	return set, nil
}

// LoadHolidays reads and parses a holiday list stored under key.
func LoadHolidays(ctx context.Context, store storage.System, key string, loc *time.Location) (HolidaySet, error) {
	data, err := store.Read(ctx, key)
	if err != nil {
		return HolidaySet{}, errors.Wrapf(err, "can not load holiday list %s", key)
	}
	return ParseHolidays(data, loc)
}
