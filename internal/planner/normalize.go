// Package planner holds the pure state transitions of the planner document:
// week normalization, the weekly reset ritual, carry-over of unfinished
// tasks, affirmation backfill, and the daily task/meal/note mutations.
//
// Every function here is copy-on-write: inputs are never mutated, so values
// already handed out by the store stay stable while an update is applied.
package planner

import "github.com/AmyTroutman/gentle-planner/internal/models"

// NewWeeklyReset returns the zero-progress reset record: not completed,
// empty lookback, no decisions.
func NewWeeklyReset() *models.WeeklyReset {
	return &models.WeeklyReset{
		TaskDecisions: map[string]models.TaskDecision{},
	}
}

// NormalizeReset fills in a possibly nil or partial reset record so that
// TaskDecisions is always a usable map. Idempotent.
func NormalizeReset(r *models.WeeklyReset) *models.WeeklyReset {
	if r == nil {
		return NewWeeklyReset()
	}
	out := *r
	if out.TaskDecisions == nil {
		out.TaskDecisions = map[string]models.TaskDecision{}
	} else {
		decisions := make(map[string]models.TaskDecision, len(out.TaskDecisions))
		for id, d := range out.TaskDecisions {
			decisions[id] = d
		}
		out.TaskDecisions = decisions
	}
	return &out
}

// NormalizeWeek returns w with every sub-record present and well shaped:
// a non-nil normalized WeeklyReset, allocated affirmation map, non-nil
// slices. All other fields pass through unchanged. Legacy records written
// before the reset ritual existed come out whole. Idempotent.
func NormalizeWeek(w models.WeekRecord) models.WeekRecord {
	out := w
	out.WeeklyReset = NormalizeReset(w.WeeklyReset)
	if out.AffirmationsByDay == nil {
		out.AffirmationsByDay = map[string]string{}
	}
	if out.Reflections == nil {
		out.Reflections = []models.Reflection{}
	}
	if out.WeeklyTasks == nil {
		out.WeeklyTasks = []models.Task{}
	}
	return out
}

// NewWeek returns the record created the first time a day of weekID is
// visited.
func NewWeek(weekID string) models.WeekRecord {
	return NormalizeWeek(models.WeekRecord{WeekID: weekID})
}

// EnsureWeek returns a copy of weeks guaranteed to contain a normalized
// record for weekID, creating it lazily when absent.
func EnsureWeek(weeks models.WeeksMap, weekID string) models.WeeksMap {
	next := cloneWeeks(weeks)
	if w, ok := next[weekID]; ok {
		next[weekID] = NormalizeWeek(w)
	} else {
		next[weekID] = NewWeek(weekID)
	}
	return next
}

func cloneWeeks(weeks models.WeeksMap) models.WeeksMap {
	next := make(models.WeeksMap, len(weeks)+1)
	for id, w := range weeks {
		next[id] = w
	}
	return next
}
