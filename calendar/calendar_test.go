package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/Linear-Logic-inc/timemanager/storage"
)

var jst = time.FixedZone("JST", 9*60*60)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02", s, jst)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return ts
}

func newTestCalendar(t *testing.T, holidays ...string) *Calendar {
	t.Helper()
	set := NewHolidaySet(jst)
	for _, h := range holidays {
		set.Add(date(t, h))
	}
	return New(jst, set)
}

func TestIsBusinessDay(t *testing.T) {
	cal := newTestCalendar(t, "2023-02-23") // Emperor's Birthday, a Thursday

	cases := []struct {
		day      string
		business bool
	}{
		{"2023-06-01", true},  // ordinary Thursday
		{"2023-01-07", false}, // Saturday
		{"2023-01-08", false}, // Sunday
		{"2024-12-31", false}, // new-year closure, a Tuesday
		{"2025-01-02", false}, // new-year closure, a Thursday
		{"2025-01-06", true},  // first Monday after the closure
		{"2023-02-23", false}, // listed holiday
	}
	for _, tc := range cases {
		if cal.IsBusinessDay(date(t, tc.day)) != tc.business {
			t.Fatalf("expected IsBusinessDay(%s) == %v", tc.day, tc.business)
		}
	}
}

func TestSessionsAroundArrowhead4(t *testing.T) {
	cal := newTestCalendar(t)

	pre := cal.SessionsFor(date(t, "2024-11-01"))
	require.Equal(t, 15, pre.AfternoonClose.Hour())
	require.Equal(t, 0, pre.AfternoonClose.Minute())
	require.Equal(t, 14, pre.ClosingAuction.Hour())
	require.Equal(t, 55, pre.ClosingAuction.Minute())

	post := cal.SessionsFor(date(t, "2024-11-05"))
	require.Equal(t, 15, post.AfternoonClose.Hour())
	require.Equal(t, 30, post.AfternoonClose.Minute())
	require.Equal(t, 15, post.ClosingAuction.Hour())
	require.Equal(t, 25, post.ClosingAuction.Minute())

	// Both eras share the morning session and lunch break.
	for _, s := range []Sessions{pre, post} {
		require.Equal(t, 9, s.MorningOpen.Hour())
		require.Equal(t, 11, s.MorningClose.Hour())
		require.Equal(t, 30, s.MorningClose.Minute())
		require.Equal(t, 12, s.AfternoonOpen.Hour())
		require.Equal(t, 30, s.AfternoonOpen.Minute())
	}
}

func TestIntradayPredicates(t *testing.T) {
	cal := newTestCalendar(t)
	day := date(t, "2023-06-01")

	at := func(h, m int) time.Time { return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute) }

	require.True(t, cal.IsBeforeOpen(at(8, 0)))
	require.False(t, cal.IsBeforeOpen(at(9, 0)))

	require.True(t, cal.IsTradingHours(at(10, 0)))
	require.True(t, cal.IsTradingHours(at(11, 30)), "session bounds are inclusive")
	require.False(t, cal.IsTradingHours(at(12, 0)))

	require.True(t, cal.IsLunchBreak(at(12, 0)))
	require.False(t, cal.IsLunchBreak(at(11, 30)), "lunch break bounds are exclusive")

	require.True(t, cal.IsAfterClose(at(16, 0)))
	require.False(t, cal.IsAfterClose(at(15, 0)))

	// No closing auction window before the arrowhead4 cutover.
	require.False(t, cal.IsClosingAuction(at(14, 57)))
	post := date(t, "2024-11-05")
	require.True(t, cal.IsClosingAuction(post.Add(15*time.Hour+27*time.Minute)))

	// Every predicate is false on a non-business day.
	sat := date(t, "2023-06-03")
	require.False(t, cal.IsTradingHours(sat.Add(10*time.Hour)))
	require.False(t, cal.IsLunchBreak(sat.Add(12*time.Hour)))
	require.False(t, cal.IsBeforeOpen(sat.Add(8*time.Hour)))
	require.False(t, cal.IsAfterClose(sat.Add(16*time.Hour)))
}

func TestTradingHoursRangeSet(t *testing.T) {
	cal := newTestCalendar(t)
	s := cal.SessionsFor(date(t, "2023-06-01"))

	hours := s.TradingHours()
	require.Equal(t, 2, hours.Len(), "morning and afternoon sessions stay separate")
	require.True(t, hours.Contains(s.MorningOpen))
	require.True(t, hours.Contains(s.AfternoonOpen))
	require.False(t, hours.Contains(s.MorningClose), "half-open spans exclude the close")
	require.Equal(t, 5*time.Hour, hours.Duration())
}

func TestBusinessDayArithmetic(t *testing.T) {
	cal := newTestCalendar(t, "2023-02-23")

	// The listed Thursday holiday is skipped.
	next := cal.NextBusinessDay(date(t, "2023-02-22"), false)
	require.Equal(t, "2023-02-24", next.Format("2006-01-02"))

	// includeToday keeps a business day as is.
	same := cal.NextBusinessDay(date(t, "2023-02-22"), true)
	require.Equal(t, "2023-02-22", same.Format("2006-01-02"))

	prev := cal.PreviousBusinessDay(date(t, "2023-02-24"), false)
	require.Equal(t, "2023-02-22", prev.Format("2006-01-02"))

	// Weekends are skipped in both directions.
	require.Equal(t, "2023-06-05", cal.NextBusinessDay(date(t, "2023-06-02"), false).Format("2006-01-02"))
	require.Equal(t, "2023-06-02", cal.PreviousBusinessDay(date(t, "2023-06-05"), false).Format("2006-01-02"))
}

func TestSettlementDate(t *testing.T) {
	cal := newTestCalendar(t)

	// T+2 since 2019-07-16: a Thursday trade settles the following Monday.
	require.Equal(t, "2023-06-05", cal.SettlementDate(date(t, "2023-06-01")).Format("2006-01-02"))

	// T+3 before the cutover.
	require.Equal(t, "2019-07-17", cal.SettlementDate(date(t, "2019-07-12")).Format("2006-01-02"))
}

func TestReloadHolidaysFromStorage(t *testing.T) {
	store := storage.NewMemoryStorage()
	ctx := context.Background()

	list := "# exchange holidays\n2023-02-23\n\n2023-05-03\n"
	require.NoError(t, store.Write(ctx, "holidays.txt", []byte(list)))

	cal := newTestCalendar(t)
	require.True(t, cal.IsBusinessDay(date(t, "2023-02-23")), "not a holiday before the load")

	require.NoError(t, cal.ReloadHolidays(ctx, store, "holidays.txt"))
	require.False(t, cal.IsBusinessDay(date(t, "2023-02-23")))
	require.False(t, cal.IsBusinessDay(date(t, "2023-05-03")))

	err := cal.ReloadHolidays(ctx, store, "missing.txt")
	require.True(t, errors.Is(err, storage.ErrDoesNotExist))
}

func TestParseHolidaysRejectsGarbage(t *testing.T) {
	_, err := ParseHolidays([]byte("2023-02-23\nnot-a-date\n"), jst)
	require.Error(t, err)
	require.Contains(t, err.Error(), "line 2")
}
