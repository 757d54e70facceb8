package planner

import (
	"testing"
	"time"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// mapSink applies updates to an in-memory weeks map, standing in for the
// aggregate store.
type mapSink struct {
	weeks models.WeeksMap
}

func newMapSink() *mapSink { return &mapSink{weeks: models.WeeksMap{}} }

func (s *mapSink) UpdateWeeks(f func(models.WeeksMap) models.WeeksMap) {
	s.weeks = f(s.weeks)
}

const (
	thisWeek = "2024-06-03"
	lastWeek = "2024-05-27"
)

func TestResetFlow_BeginStampsStartedAtOnce(t *testing.T) {
	sink := newMapSink()
	flow := NewResetFlow(sink, thisWeek, lastWeek)

	if flow.Step() != StepIntro {
		t.Fatalf("initial step = %s, want intro", flow.Step())
	}

	flow.Begin()
	if flow.Step() != StepLookback {
		t.Fatalf("after begin, step = %s, want lookback", flow.Step())
	}
	first := sink.weeks[thisWeek].WeeklyReset.StartedAt
	if first == nil {
		t.Fatal("begin must stamp startedAt")
	}

	// A second begin from a fresh flow must not move the stamp.
	later := NewResetFlow(sink, thisWeek, lastWeek)
	later.now = func() time.Time { return first.Add(time.Hour) }
	later.Begin()
	if got := sink.weeks[thisWeek].WeeklyReset.StartedAt; !got.Equal(*first) {
		t.Errorf("startedAt moved from %v to %v", first, got)
	}
}

func TestResetFlow_LaterLeavesNoTrace(t *testing.T) {
	sink := newMapSink()
	flow := NewResetFlow(sink, thisWeek, lastWeek)

	flow.Later()

	if !flow.Exited() {
		t.Error("later must exit the wizard")
	}
	if len(sink.weeks) != 0 {
		t.Error("later must not write anything")
	}
}

func TestResetFlow_SkipWeekMarksCompletedSkipped(t *testing.T) {
	sink := newMapSink()
	flow := NewResetFlow(sink, thisWeek, lastWeek)

	flow.SkipWeek()

	if !flow.Exited() {
		t.Error("skipWeek must exit")
	}
	r := sink.weeks[thisWeek].WeeklyReset
	if !r.Completed || !r.Skipped {
		t.Errorf("want completed+skipped, got %+v", r)
	}
	if r.CompletedAt == nil {
		t.Error("completedAt should be stamped")
	}
}

func TestResetFlow_FullWalkthrough(t *testing.T) {
	sink := newMapSink()
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)
	sink.weeks = AddWeeklyTask(sink.weeks, lastWeek, "Email Bob", now)
	prevTaskID := sink.weeks[lastWeek].WeeklyTasks[0].ID

	flow := NewResetFlow(sink, thisWeek, lastWeek)
	flow.Begin()
	flow.SaveLookback("long walks", "dinner plans")
	if flow.Step() != StepTasks {
		t.Fatalf("step = %s, want tasks", flow.Step())
	}

	pending := PendingResetTasks(sink.weeks, thisWeek, lastWeek)
	if len(pending) != 1 || pending[0].ID != prevTaskID {
		t.Fatalf("pending = %+v, want the one unfinished task", pending)
	}

	flow.Decide(prevTaskID, models.DecisionCarry)

	// The decision removes the task from the working set.
	if got := PendingResetTasks(sink.weeks, thisWeek, lastWeek); len(got) != 0 {
		t.Errorf("decided task still pending: %+v", got)
	}
	if d := sink.weeks[thisWeek].WeeklyReset.TaskDecisions[prevTaskID]; d != models.DecisionCarry {
		t.Errorf("decision = %q, want carry", d)
	}

	// The carry cloned the task into this week with a fresh id.
	carried := sink.weeks[thisWeek].WeeklyTasks
	if len(carried) != 1 {
		t.Fatalf("want 1 carried task, got %d", len(carried))
	}
	if carried[0].Title != "Email Bob" || carried[0].Done || carried[0].ID == prevTaskID {
		t.Errorf("bad clone: %+v", carried[0])
	}
	if len(sink.weeks[lastWeek].WeeklyTasks) != 1 {
		t.Error("previous week must be untouched")
	}

	flow.Next()
	flow.SaveTheme(ThemePatch{
		Theme:       "Be brave",
		PausePrompt: "What would feel kind?",
		Inspiration: "morning light",
		Behavior:    "one brave thing a day",
	})
	if flow.Step() != StepComplete {
		t.Fatalf("step = %s, want complete", flow.Step())
	}

	w := sink.weeks[thisWeek]
	if w.Theme != "Be brave" {
		t.Errorf("theme = %q, want it set on the week record", w.Theme)
	}
	r := w.WeeklyReset
	if r.PausePrompt != "What would feel kind?" || r.Inspiration != "morning light" || r.Behavior != "one brave thing a day" {
		t.Errorf("theme patch not stored: %+v", r)
	}
	if !r.Completed || r.Skipped {
		t.Errorf("want completed and not skipped, got %+v", r)
	}
	if r.Lookback.Meaningful != "long walks" || r.Lookback.AskedALot != "dinner plans" {
		t.Errorf("lookback lost: %+v", r.Lookback)
	}

	flow.Done()
	if !flow.Exited() {
		t.Error("done must exit")
	}
}

func TestResetFlow_SkipThemeStillCompletes(t *testing.T) {
	sink := newMapSink()
	flow := NewResetFlow(sink, thisWeek, lastWeek)
	flow.Begin()
	flow.Skip() // lookback -> tasks
	flow.Skip() // tasks -> theme
	flow.Skip() // theme -> complete, terminal effect without patch

	if flow.Step() != StepComplete {
		t.Fatalf("step = %s, want complete", flow.Step())
	}
	r := sink.weeks[thisWeek].WeeklyReset
	if !r.Completed || r.Skipped {
		t.Errorf("want completed and not skipped, got %+v", r)
	}
	if r.PausePrompt != "" || sink.weeks[thisWeek].Theme != "" {
		t.Error("skipping the theme step must not write a patch")
	}
}

func TestResetFlow_CompletedAtStampedOnce(t *testing.T) {
	sink := newMapSink()
	base := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	sink.weeks = MarkResetCompleted(sink.weeks, thisWeek, false, base)
	first := sink.weeks[thisWeek].WeeklyReset.CompletedAt

	sink.weeks = MarkResetCompleted(sink.weeks, thisWeek, false, base.Add(time.Hour))
	if got := sink.weeks[thisWeek].WeeklyReset.CompletedAt; !got.Equal(*first) {
		t.Errorf("completedAt moved from %v to %v", first, got)
	}
	if !sink.weeks[thisWeek].WeeklyReset.Completed {
		t.Error("completed must stay true")
	}
}

func TestDecideResetTask_MissingTaskRecordsDecisionOnly(t *testing.T) {
	weeks := models.WeeksMap{}
	now := time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC)

	next := DecideResetTask(weeks, thisWeek, lastWeek, "ghost", models.DecisionCarry, now)

	if d := next[thisWeek].WeeklyReset.TaskDecisions["ghost"]; d != models.DecisionCarry {
		t.Errorf("decision = %q, want carry", d)
	}
	if len(next[thisWeek].WeeklyTasks) != 0 {
		t.Error("nothing should be cloned for an unknown task id")
	}
}

func TestResetFlow_ActionsOutsideTheirStepAreNoops(t *testing.T) {
	sink := newMapSink()
	flow := NewResetFlow(sink, thisWeek, lastWeek)

	flow.SaveLookback("x", "y")
	flow.Decide("t1", models.DecisionCarry)
	flow.SaveTheme(ThemePatch{Theme: "nope"})
	flow.Done()

	if flow.Step() != StepIntro || flow.Exited() {
		t.Error("out-of-step actions must not move the machine")
	}
	if len(sink.weeks) != 0 {
		t.Error("out-of-step actions must not write")
	}
}

func TestMarkResetCompleted_SkipSurvivesLaterCompletion(t *testing.T) {
	now := time.Date(2024, 6, 3, 10, 0, 0, 0, time.UTC)

	weeks := MarkResetCompleted(models.WeeksMap{}, thisWeek, true, now)
	weeks = MarkResetCompleted(weeks, thisWeek, false, now.Add(time.Hour))

	reset := weeks[thisWeek].WeeklyReset
	if !reset.Completed {
		t.Fatal("reset should stay completed")
	}
	if !reset.Skipped {
		t.Fatal("a recorded skip must not be reverted by a later completion")
	}
	if !reset.CompletedAt.Equal(now) {
		t.Fatalf("completedAt = %v, want the first stamp kept", reset.CompletedAt)
	}
}
