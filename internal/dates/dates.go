// Package dates maps timestamps onto the canonical day and week bucket
// identifiers used as map keys throughout the planner document. Weeks start
// on Monday; a week's id is the date of its Monday.
package dates

import "time"

const layout = "2006-01-02"

// DayID returns the canonical identifier of t's calendar day.
func DayID(t time.Time) string {
	return t.Format(layout)
}

// WeekStart returns midnight of the Monday that starts t's week, in t's
// location.
func WeekStart(t time.Time) time.Time {
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -daysSinceMonday)
}

// WeekID returns the canonical identifier of t's Monday-start week.
func WeekID(t time.Time) string {
	return WeekStart(t).Format(layout)
}

// PreviousWeekID returns the id of the week before t's week. It is a fixed
// seven-day offset from the current week's Monday, so the result is the
// same whichever weekday t falls on.
func PreviousWeekID(t time.Time) string {
	return WeekStart(t).AddDate(0, 0, -7).Format(layout)
}

// ParseDay parses a bucket id back into a time.
func ParseDay(id string) (time.Time, error) {
	return time.Parse(layout, id)
}

// WeekDays expands a week id into the ids of its seven days, Monday first.
// The input is returned as the sole element when it does not parse, so
// callers looping over the result stay total.
func WeekDays(weekID string) []string {
	start, err := time.Parse(layout, weekID)
	if err != nil {
		return []string{weekID}
	}
	days := make([]string, 7)
	for i := range days {
		days[i] = start.AddDate(0, 0, i).Format(layout)
	}
	return days
}
