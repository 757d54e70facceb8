package planner

import "strings"

// SetNote writes the day's free-form note. Blank text is a no-op; use
// ClearNote to remove one.
func SetNote(byDay map[string]string, dayID, text string) map[string]string {
	text = strings.TrimSpace(text)
	if text == "" {
		return byDay
	}
	next := cloneNotes(byDay)
	next[dayID] = text
	return next
}

// ClearNote removes the day's note entirely.
func ClearNote(byDay map[string]string, dayID string) map[string]string {
	if _, ok := byDay[dayID]; !ok {
		return byDay
	}
	next := cloneNotes(byDay)
	delete(next, dayID)
	return next
}

func cloneNotes(byDay map[string]string) map[string]string {
	next := make(map[string]string, len(byDay)+1)
	for d, n := range byDay {
		next[d] = n
	}
	return next
}
