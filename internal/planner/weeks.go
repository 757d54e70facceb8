package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// SetTheme writes the week's theme, creating the week record if this is
// the first touch of that week.
func SetTheme(weeks models.WeeksMap, weekID, theme string) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	w.Theme = strings.TrimSpace(theme)
	next[weekID] = w
	return next
}

// AddReflection prepends a reflection to the week, stamped with the day it
// was written on. Blank text is a no-op.
func AddReflection(weeks models.WeeksMap, weekID, dayID, text string, now time.Time) models.WeeksMap {
	text = strings.TrimSpace(text)
	if text == "" {
		return weeks
	}
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	r := models.Reflection{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: now,
		DayID:     dayID,
	}
	reflections := make([]models.Reflection, 0, len(w.Reflections)+1)
	reflections = append(reflections, r)
	w.Reflections = append(reflections, w.Reflections...)
	next[weekID] = w
	return next
}

// DeleteReflection removes a reflection by id. Unknown week or id is a
// no-op.
func DeleteReflection(weeks models.WeeksMap, weekID, id string) models.WeeksMap {
	w, ok := weeks[weekID]
	if !ok {
		return weeks
	}
	next := cloneWeeks(weeks)
	w = NormalizeWeek(w)
	out := make([]models.Reflection, 0, len(w.Reflections))
	for _, r := range w.Reflections {
		if r.ID != id {
			out = append(out, r)
		}
	}
	w.Reflections = out
	next[weekID] = w
	return next
}

// AddWeeklyTask adds a task to the week's task list.
func AddWeeklyTask(weeks models.WeeksMap, weekID, title string, now time.Time) models.WeeksMap {
	return updateWeeklyTasks(weeks, weekID, func(tasks []models.Task) []models.Task {
		return AddTask(tasks, title, now)
	})
}

// ToggleWeeklyTask toggles a weekly task's done state.
func ToggleWeeklyTask(weeks models.WeeksMap, weekID, id string, now time.Time) models.WeeksMap {
	return updateWeeklyTasks(weeks, weekID, func(tasks []models.Task) []models.Task {
		return ToggleTask(tasks, id, now)
	})
}

// DeleteWeeklyTask removes a weekly task by id.
func DeleteWeeklyTask(weeks models.WeeksMap, weekID, id string) models.WeeksMap {
	return updateWeeklyTasks(weeks, weekID, func(tasks []models.Task) []models.Task {
		return DeleteTask(tasks, id)
	})
}

func updateWeeklyTasks(weeks models.WeeksMap, weekID string, f func([]models.Task) []models.Task) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	w.WeeklyTasks = f(w.WeeklyTasks)
	next[weekID] = w
	return next
}
