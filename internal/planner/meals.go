package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// SetMeal overwrites one of the day's meal slots wholesale. Blank text is
// a no-op; use ClearMeal to empty a slot.
func SetMeal(byDay map[string]models.DailyMeals, dayID string, slot models.MealSlot, text string) map[string]models.DailyMeals {
	text = strings.TrimSpace(text)
	if text == "" {
		return byDay
	}
	return updateMeals(byDay, dayID, func(m models.DailyMeals) models.DailyMeals {
		switch slot {
		case models.MealBreakfast:
			m.Breakfast = text
		case models.MealLunch:
			m.Lunch = text
		case models.MealDinner:
			m.Dinner = text
		}
		return m
	})
}

// ClearMeal empties one of the day's meal slots.
func ClearMeal(byDay map[string]models.DailyMeals, dayID string, slot models.MealSlot) map[string]models.DailyMeals {
	return updateMeals(byDay, dayID, func(m models.DailyMeals) models.DailyMeals {
		switch slot {
		case models.MealBreakfast:
			m.Breakfast = ""
		case models.MealLunch:
			m.Lunch = ""
		case models.MealDinner:
			m.Dinner = ""
		}
		return m
	})
}

// AddSnack prepends a snack entry to the day. Blank text is a no-op.
func AddSnack(byDay map[string]models.DailyMeals, dayID, text string, now time.Time) map[string]models.DailyMeals {
	entry, ok := newEntry(text, now)
	if !ok {
		return byDay
	}
	return updateMeals(byDay, dayID, func(m models.DailyMeals) models.DailyMeals {
		m.Snacks = prependEntry(m.Snacks, entry)
		return m
	})
}

// DeleteSnack removes a snack entry by id.
func DeleteSnack(byDay map[string]models.DailyMeals, dayID, id string) map[string]models.DailyMeals {
	return updateMeals(byDay, dayID, func(m models.DailyMeals) models.DailyMeals {
		m.Snacks = deleteEntry(m.Snacks, id)
		return m
	})
}

// AddDrink prepends a drink entry to the day. Blank text is a no-op.
func AddDrink(byDay map[string]models.DailyMeals, dayID, text string, now time.Time) map[string]models.DailyMeals {
	entry, ok := newEntry(text, now)
	if !ok {
		return byDay
	}
	return updateMeals(byDay, dayID, func(m models.DailyMeals) models.DailyMeals {
		m.Drinks = prependEntry(m.Drinks, entry)
		return m
	})
}

// DeleteDrink removes a drink entry by id.
func DeleteDrink(byDay map[string]models.DailyMeals, dayID, id string) map[string]models.DailyMeals {
	return updateMeals(byDay, dayID, func(m models.DailyMeals) models.DailyMeals {
		m.Drinks = deleteEntry(m.Drinks, id)
		return m
	})
}

func newEntry(text string, now time.Time) (models.MealEntry, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return models.MealEntry{}, false
	}
	return models.MealEntry{
		ID:        uuid.New().String(),
		Text:      text,
		CreatedAt: now,
	}, true
}

func prependEntry(entries []models.MealEntry, e models.MealEntry) []models.MealEntry {
	out := make([]models.MealEntry, 0, len(entries)+1)
	out = append(out, e)
	return append(out, entries...)
}

func deleteEntry(entries []models.MealEntry, id string) []models.MealEntry {
	out := make([]models.MealEntry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

func updateMeals(byDay map[string]models.DailyMeals, dayID string, f func(models.DailyMeals) models.DailyMeals) map[string]models.DailyMeals {
	next := make(map[string]models.DailyMeals, len(byDay)+1)
	for d, m := range byDay {
		next[d] = m
	}
	next[dayID] = f(byDay[dayID])
	return next
}
