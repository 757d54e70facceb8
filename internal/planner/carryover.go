package planner

import (
	"time"

	"github.com/google/uuid"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// UnfinishedWeeklyTasks returns the previous week's weekly tasks that were
// never completed. Missing weeks yield nil.
func UnfinishedWeeklyTasks(weeks models.WeeksMap, weekID string) []models.Task {
	w, ok := weeks[weekID]
	if !ok {
		return nil
	}
	var out []models.Task
	for _, t := range w.WeeklyTasks {
		if !t.Done {
			out = append(out, t)
		}
	}
	return out
}

// CarryOverUnfinished copies the previous week's unfinished weekly tasks
// into the current week's list, skipping any whose title (trimmed,
// case-insensitive) is already present there. Carried copies get a fresh
// id and creation time and start undone; the previous week is untouched.
// Returns the number of tasks carried; zero means weeks is returned as-is.
//
// Re-running is safe once titles match, since every carried title is then
// present in the current week. A retitled duplicate will still carry.
func CarryOverUnfinished(weeks models.WeeksMap, weekID, prevWeekID string, now time.Time) (models.WeeksMap, int) {
	unfinished := UnfinishedWeeklyTasks(weeks, prevWeekID)
	if len(unfinished) == 0 {
		return weeks, 0
	}

	present := map[string]bool{}
	if w, ok := weeks[weekID]; ok {
		for _, t := range w.WeeklyTasks {
			present[normalizeTitle(t.Title)] = true
		}
	}

	var carried []models.Task
	for _, t := range unfinished {
		key := normalizeTitle(t.Title)
		if present[key] {
			continue
		}
		present[key] = true
		carried = append(carried, models.Task{
			ID:        uuid.New().String(),
			Title:     t.Title,
			CreatedAt: now,
		})
	}
	if len(carried) == 0 {
		return weeks, 0
	}

	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	merged := make([]models.Task, 0, len(carried)+len(w.WeeklyTasks))
	merged = append(merged, carried...)
	w.WeeklyTasks = append(merged, w.WeeklyTasks...)
	next[weekID] = w
	return next, len(carried)
}
