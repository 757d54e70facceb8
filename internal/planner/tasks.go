package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// NewTask builds an unfinished task. Returns false when the title is empty
// after trimming; blank input never reaches the document.
func NewTask(title string, now time.Time) (models.Task, bool) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, false
	}
	return models.Task{
		ID:        uuid.New().String(),
		Title:     title,
		CreatedAt: now,
	}, true
}

// AddTask prepends a new task to the list. No-op on blank titles.
func AddTask(tasks []models.Task, title string, now time.Time) []models.Task {
	t, ok := NewTask(title, now)
	if !ok {
		return tasks
	}
	return prependTask(tasks, t)
}

// ToggleTask flips the done state of the task with the given id, setting
// or clearing DoneAt together with Done. Unknown ids are a no-op.
func ToggleTask(tasks []models.Task, id string, now time.Time) []models.Task {
	out := make([]models.Task, len(tasks))
	for i, t := range tasks {
		if t.ID == id {
			if t.Done {
				t.Done = false
				t.DoneAt = nil
			} else {
				t.Done = true
				at := now
				t.DoneAt = &at
			}
		}
		out[i] = t
	}
	return out
}

// DeleteTask removes the task with the given id.
func DeleteTask(tasks []models.Task, id string) []models.Task {
	out := make([]models.Task, 0, len(tasks))
	for _, t := range tasks {
		if t.ID != id {
			out = append(out, t)
		}
	}
	return out
}

// AddDayTask adds a task to the given day bucket, leaving all other days
// untouched.
func AddDayTask(byDay map[string][]models.Task, dayID, title string, now time.Time) map[string][]models.Task {
	return updateDay(byDay, dayID, func(tasks []models.Task) []models.Task {
		return AddTask(tasks, title, now)
	})
}

// ToggleDayTask toggles a task inside one day bucket.
func ToggleDayTask(byDay map[string][]models.Task, dayID, id string, now time.Time) map[string][]models.Task {
	return updateDay(byDay, dayID, func(tasks []models.Task) []models.Task {
		return ToggleTask(tasks, id, now)
	})
}

// DeleteDayTask removes a task from one day bucket.
func DeleteDayTask(byDay map[string][]models.Task, dayID, id string) map[string][]models.Task {
	return updateDay(byDay, dayID, func(tasks []models.Task) []models.Task {
		return DeleteTask(tasks, id)
	})
}

func updateDay(byDay map[string][]models.Task, dayID string, f func([]models.Task) []models.Task) map[string][]models.Task {
	next := make(map[string][]models.Task, len(byDay)+1)
	for d, tasks := range byDay {
		next[d] = tasks
	}
	next[dayID] = f(byDay[dayID])
	return next
}

func prependTask(tasks []models.Task, t models.Task) []models.Task {
	out := make([]models.Task, 0, len(tasks)+1)
	out = append(out, t)
	return append(out, tasks...)
}

// normalizeTitle is the key used when deduplicating carried-over tasks.
func normalizeTitle(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}
