package planner

import (
	"math/rand/v2"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// affirmationPool is the fixed set a day's affirmation is drawn from.
var affirmationPool = []string{
	"You are allowed to take up space.",
	"Small steps still move you forward.",
	"You don't have to earn rest.",
	"Done gently is still done.",
	"You can begin again at any moment.",
	"Your pace is the right pace.",
	"What you did yesterday was enough.",
	"You are more than your task list.",
	"It's okay to ask for what you need.",
	"Softness is not weakness.",
	"One thing at a time is a plan.",
	"You get to decide what matters today.",
}

// DailyAffirmation returns the affirmation already assigned to the day, if
// any.
func DailyAffirmation(weeks models.WeeksMap, weekID, dayID string) (string, bool) {
	w, ok := weeks[weekID]
	if !ok || w.AffirmationsByDay == nil {
		return "", false
	}
	a, ok := w.AffirmationsByDay[dayID]
	return a, ok
}

// BackfillAffirmation assigns a random affirmation to the day only if it
// has none at the time of the write. Once set, backfill never changes it;
// callers run this through the store's updater so the recheck sees the
// latest local value.
func BackfillAffirmation(weeks models.WeeksMap, weekID, dayID string) models.WeeksMap {
	if _, ok := DailyAffirmation(weeks, weekID, dayID); ok {
		return weeks
	}
	return setAffirmation(weeks, weekID, dayID, affirmationPool[rand.IntN(len(affirmationPool))])
}

// RefreshAffirmation is the explicit user-initiated overwrite: it replaces
// the day's affirmation with a different one from the pool.
func RefreshAffirmation(weeks models.WeeksMap, weekID, dayID string) models.WeeksMap {
	current, _ := DailyAffirmation(weeks, weekID, dayID)
	next := affirmationPool[rand.IntN(len(affirmationPool))]
	for next == current && len(affirmationPool) > 1 {
		next = affirmationPool[rand.IntN(len(affirmationPool))]
	}
	return setAffirmation(weeks, weekID, dayID, next)
}

// InAffirmationPool reports whether s is one of the pool strings.
func InAffirmationPool(s string) bool {
	for _, a := range affirmationPool {
		if a == s {
			return true
		}
	}
	return false
}

func setAffirmation(weeks models.WeeksMap, weekID, dayID, text string) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	affirmations := make(map[string]string, len(w.AffirmationsByDay)+1)
	for d, a := range w.AffirmationsByDay {
		affirmations[d] = a
	}
	affirmations[dayID] = text
	w.AffirmationsByDay = affirmations
	next[weekID] = w
	return next
}
