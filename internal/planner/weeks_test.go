package planner

import (
	"testing"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

func TestSetTheme_CreatesWeekRecord(t *testing.T) {
	weeks := SetTheme(models.WeeksMap{}, thisWeek, "Be brave")

	w, ok := weeks[thisWeek]
	if !ok {
		t.Fatal("week record should be created on first theme set")
	}
	if w.Theme != "Be brave" {
		t.Errorf("theme = %q", w.Theme)
	}
	if w.Reflections == nil || len(w.Reflections) != 0 {
		t.Error("fresh week should carry an empty reflections list")
	}
	if w.WeeklyReset == nil || w.WeeklyReset.Completed {
		t.Error("fresh week should carry an empty, present weeklyReset")
	}
}

func TestAddReflection_PrependsWithDayID(t *testing.T) {
	weeks := AddReflection(models.WeeksMap{}, thisWeek, "2024-06-03", "noticed the light", testNow)
	weeks = AddReflection(weeks, thisWeek, "2024-06-04", "said no kindly", testNow.AddDate(0, 0, 1))

	rs := weeks[thisWeek].Reflections
	if len(rs) != 2 {
		t.Fatalf("want 2 reflections, got %d", len(rs))
	}
	if rs[0].Text != "said no kindly" {
		t.Error("newest reflection should be first")
	}
	if rs[0].DayID != "2024-06-04" || rs[1].DayID != "2024-06-03" {
		t.Error("reflections must remember the day they were written on")
	}
}

func TestAddReflection_BlankIsNoop(t *testing.T) {
	weeks := AddReflection(models.WeeksMap{}, thisWeek, "2024-06-03", "  \n ", testNow)
	if len(weeks) != 0 {
		t.Error("blank reflection must not create a week")
	}
}

func TestDeleteReflection(t *testing.T) {
	weeks := AddReflection(models.WeeksMap{}, thisWeek, "2024-06-03", "keep me", testNow)
	weeks = AddReflection(weeks, thisWeek, "2024-06-03", "drop me", testNow)
	dropID := weeks[thisWeek].Reflections[0].ID

	weeks = DeleteReflection(weeks, thisWeek, dropID)

	rs := weeks[thisWeek].Reflections
	if len(rs) != 1 || rs[0].Text != "keep me" {
		t.Errorf("unexpected reflections after delete: %+v", rs)
	}

	// Unknown week is a no-op, not a crash.
	if got := DeleteReflection(weeks, "2030-01-06", "x"); len(got) != len(weeks) {
		t.Error("deleting from an unknown week must be a no-op")
	}
}

func TestWeeklyTasks_Lifecycle(t *testing.T) {
	weeks := AddWeeklyTask(models.WeeksMap{}, thisWeek, "Plan groceries", testNow)
	id := weeks[thisWeek].WeeklyTasks[0].ID

	weeks = ToggleWeeklyTask(weeks, thisWeek, id, testNow)
	if !weeks[thisWeek].WeeklyTasks[0].Done {
		t.Fatal("weekly task should be done")
	}

	weeks = DeleteWeeklyTask(weeks, thisWeek, id)
	if len(weeks[thisWeek].WeeklyTasks) != 0 {
		t.Error("weekly task should be gone")
	}
}
