// Package calendar implements the Tokyo Stock Exchange trading calendar:
// session times for a date, business-day arithmetic against a holiday list,
// and settlement-date computation.  It is a consumer of the core timemanager
// types, not part of them.
package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/Linear-Logic-inc/timemanager"
	"github.com/Linear-Logic-inc/timemanager/storage"
	"github.com/Linear-Logic-inc/timemanager/telemetry"
)

// arrowhead4Cutover is the first trading day with the extended afternoon
// session (close moved from 15:00 to 15:30, closing auction from 15:25).
var arrowhead4Cutover = time.Date(2024, time.November, 5, 0, 0, 0, 0, time.UTC)

// settlementCutover is the first trade date settling T+2 instead of T+3.
var settlementCutover = time.Date(2019, time.July, 16, 0, 0, 0, 0, time.UTC)

// Sessions holds the session boundaries of one trading day.
type Sessions struct {
	Date           time.Time // midnight of the trading day
	MorningOpen    time.Time
	MorningClose   time.Time
	AfternoonOpen  time.Time
	AfternoonClose time.Time
	ClosingAuction time.Time // start of the closing auction window
}

// TradingHours returns the two session spans as a normalized set of
// half-open ranges.
func (s Sessions) TradingHours() timemanager.RangeSet {
	return timemanager.NewRangeSet(
		timemanager.TimeRange{Start: s.MorningOpen, End: s.MorningClose},
		timemanager.TimeRange{Start: s.AfternoonOpen, End: s.AfternoonClose},
	)
}

type Calendar struct {
	loc      *time.Location
	holidays HolidaySet
	sessions *cache.Cache
	log      telemetry.Logger
	metrics  telemetry.Metrics
	computed int64
}

// New returns a calendar for dates in loc with the given holiday list.
func New(loc *time.Location, holidays HolidaySet) *Calendar {
	return &Calendar{
		loc:      loc,
		holidays: holidays,
		sessions: cache.New(24*time.Hour, time.Hour),
		log:      telemetry.NOPLogger{},
		metrics:  telemetry.NOPMetrics{},
	}
}

func (c *Calendar) SetLogger(log telemetry.Logger) {
	c.log = log
}

func (c *Calendar) SetMetrics(metrics telemetry.Metrics) {
	c.metrics = metrics
}

// ReloadHolidays replaces the holiday list with the one stored under key and
// drops the memoized sessions, since business-day status may have changed.
func (c *Calendar) ReloadHolidays(ctx context.Context, store storage.System, key string) error {
	holidays, err := LoadHolidays(ctx, store, key, c.loc)
	if err != nil {
		c.log.Error("holiday list reload failed", err)
		return err
	}
	c.holidays = holidays
	c.sessions.Flush()
	c.log.Info(fmt.Sprintf("loaded %d holidays from %s", holidays.Len(), key))
	return nil
}

// midnight truncates t to its calendar date in the calendar's location.
func (c *Calendar) midnight(t time.Time) time.Time {
	t = t.In(c.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, c.loc)
}

// SessionsFor returns the session boundaries of the trading day containing
// t.  Results are memoized per date.
func (c *Calendar) SessionsFor(t time.Time) Sessions {
	day := c.midnight(t)
	key := day.Format(dateLayout)

	if cached, ok := c.sessions.Get(key); ok {
		return cached.(Sessions)
	}

	s := Sessions{
		Date:          day,
		MorningOpen:   day.Add(9 * time.Hour),
		MorningClose:  day.Add(11*time.Hour + 30*time.Minute),
		AfternoonOpen: day.Add(12*time.Hour + 30*time.Minute),
	}
	if !c.dateBefore(day, arrowhead4Cutover) {
		s.AfternoonClose = day.Add(15*time.Hour + 30*time.Minute)
		s.ClosingAuction = day.Add(15*time.Hour + 25*time.Minute)
	} else {
		s.AfternoonClose = day.Add(15 * time.Hour)
		s.ClosingAuction = day.Add(14*time.Hour + 55*time.Minute)
	}

	c.sessions.SetDefault(key, s)
	c.computed++
	c.metrics.SetCount("calendar.sessions_computed", c.computed)
	return s
}

// dateBefore compares calendar dates, ignoring locations.
func (c *Calendar) dateBefore(day, cutover time.Time) bool {
	return day.Format(dateLayout) < cutover.Format(dateLayout)
}

// IsBusinessDay reports whether the date of t is a trading day: not a
// weekend, not in the new-year closure (Dec 31 through Jan 3), and not on
// the holiday list.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	t = t.In(c.loc)
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	if t.Month() == time.December && t.Day() == 31 {
		return false
	}
	if t.Month() == time.January && t.Day() <= 3 {
		return false
	}
	return !c.holidays.Contains(t)
}

// IsBeforeOpen reports whether t is on a trading day, before the morning
// session opens.
func (c *Calendar) IsBeforeOpen(t time.Time) bool {
	if !c.IsBusinessDay(t) {
		return false
	}
	return t.Before(c.SessionsFor(t).MorningOpen)
}

// IsLunchBreak reports whether t is strictly between the morning close and
// the afternoon open of a trading day.
func (c *Calendar) IsLunchBreak(t time.Time) bool {
	if !c.IsBusinessDay(t) {
		return false
	}
	s := c.SessionsFor(t)
	return t.After(s.MorningClose) && t.Before(s.AfternoonOpen)
}

// IsAfterClose reports whether t is on a trading day, after the afternoon
// session closes.
func (c *Calendar) IsAfterClose(t time.Time) bool {
	if !c.IsBusinessDay(t) {
		return false
	}
	return t.After(c.SessionsFor(t).AfternoonClose)
}

// IsTradingHours reports whether t falls inside either session, bounds
// included.
func (c *Calendar) IsTradingHours(t time.Time) bool {
	if !c.IsBusinessDay(t) {
		return false
	}
	s := c.SessionsFor(t)
	return within(t, s.MorningOpen, s.MorningClose) || within(t, s.AfternoonOpen, s.AfternoonClose)
}

// IsClosingAuction reports whether t falls inside the closing auction
// window.  The window only exists from the arrowhead4 cutover on.
func (c *Calendar) IsClosingAuction(t time.Time) bool {
	if !c.IsBusinessDay(t) {
		return false
	}
	s := c.SessionsFor(t)
	if c.dateBefore(s.Date, arrowhead4Cutover) {
		return false
	}
	return within(t, s.ClosingAuction, s.AfternoonClose)
}

func within(t, lo, hi time.Time) bool {
	return !t.Before(lo) && !t.After(hi)
}

// NextBusinessDay returns the first trading day after t, or the date of t
// itself when includeToday is set and t is a trading day.
func (c *Calendar) NextBusinessDay(t time.Time, includeToday bool) time.Time {
	day := c.midnight(t)
	if !includeToday {
		day = day.AddDate(0, 0, 1)
	}
	for !c.IsBusinessDay(day) {
		day = day.AddDate(0, 0, 1)
	}
	return day
}

// PreviousBusinessDay returns the last trading day before t, or the date of
// t itself when includeToday is set and t is a trading day.
func (c *Calendar) PreviousBusinessDay(t time.Time, includeToday bool) time.Time {
	day := c.midnight(t)
	if !includeToday {
		day = day.AddDate(0, 0, -1)
	}
	for !c.IsBusinessDay(day) {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// SettlementDate returns the delivery date for a trade executed on
// tradeDate: the second business day after it, or the third for trades
// before the 2019-07-16 settlement-cycle shortening.
func (c *Calendar) SettlementDate(tradeDate time.Time) time.Time {
	day := c.midnight(tradeDate)
	delta := 2
	if c.dateBefore(day, settlementCutover) {
		delta = 3
	}
	for i := 0; i < delta; i++ {
		day = c.NextBusinessDay(day, false)
	}
	return day
}
