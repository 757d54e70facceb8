package dates

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 30, 0, 0, time.UTC)
}

func TestWeekID_SameForEveryDayOfWeek(t *testing.T) {
	// 2024-06-03 is a Monday.
	monday := date(2024, time.June, 3)

	for i := 0; i < 7; i++ {
		got := WeekID(monday.AddDate(0, 0, i))
		if got != "2024-06-03" {
			t.Errorf("WeekID(monday+%dd) = %q, want 2024-06-03", i, got)
		}
	}

	if got := WeekID(monday.AddDate(0, 0, 7)); got == "2024-06-03" {
		t.Errorf("WeekID(monday+7d) should start a new week, got %q", got)
	}
}

func TestWeekID_SundayBelongsToPrecedingMonday(t *testing.T) {
	sunday := date(2024, time.June, 9)
	if got := WeekID(sunday); got != "2024-06-03" {
		t.Errorf("WeekID(sunday) = %q, want 2024-06-03", got)
	}
}

func TestWeekID_AcrossMonthAndYearBoundaries(t *testing.T) {
	cases := []struct {
		day  time.Time
		want string
	}{
		{date(2024, time.January, 1), "2024-01-01"},  // New Year's Day, a Monday
		{date(2023, time.December, 31), "2023-12-25"}, // Sunday of the prior year
		{date(2024, time.March, 1), "2024-02-26"},     // Friday, week began in February
	}
	for _, c := range cases {
		if got := WeekID(c.day); got != c.want {
			t.Errorf("WeekID(%s) = %q, want %q", c.day.Format("2006-01-02"), got, c.want)
		}
	}
}

func TestPreviousWeekID_FixedOffsetFromMonday(t *testing.T) {
	// The previous week must be computed from the week's Monday, not from
	// "now minus seven days", so every day of a week agrees on it.
	monday := date(2024, time.June, 3)

	for i := 0; i < 7; i++ {
		d := monday.AddDate(0, 0, i)
		got := PreviousWeekID(d)
		if got != "2024-05-27" {
			t.Errorf("PreviousWeekID(monday+%dd) = %q, want 2024-05-27", i, got)
		}
		if want := WeekID(d.AddDate(0, 0, -7)); got != want {
			t.Errorf("PreviousWeekID(monday+%dd) = %q, want WeekID(t-7d) = %q", i, got, want)
		}
	}
}

func TestDayID(t *testing.T) {
	if got := DayID(date(2024, time.June, 3)); got != "2024-06-03" {
		t.Errorf("DayID = %q, want 2024-06-03", got)
	}
}

func TestWeekDays(t *testing.T) {
	days := WeekDays("2024-06-03")
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[0] != "2024-06-03" || days[6] != "2024-06-09" {
		t.Errorf("unexpected span: first=%s last=%s", days[0], days[6])
	}
}

func TestWeekDays_BadInputIsTotal(t *testing.T) {
	days := WeekDays("not-a-date")
	if len(days) != 1 || days[0] != "not-a-date" {
		t.Errorf("bad input should echo back, got %v", days)
	}
}
