package planner

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// ResetStep is one state of the weekly reset ritual.
type ResetStep string

const (
	StepIntro    ResetStep = "intro"
	StepLookback ResetStep = "lookback"
	StepTasks    ResetStep = "tasks"
	StepTheme    ResetStep = "theme"
	StepComplete ResetStep = "complete"
)

// ThemePatch carries the theme step's answers. Theme lands on the week
// record itself; the rest lands inside the reset record.
type ThemePatch struct {
	PausePrompt string
	Theme       string
	Inspiration string
	Behavior    string
}

// WeeksSink applies a copy-on-write transformation to the weeks slice. The
// aggregate store satisfies it.
type WeeksSink interface {
	UpdateWeeks(func(models.WeeksMap) models.WeeksMap)
}

// ResetFlow drives the weekly reset wizard: a linear walk
// intro → lookback → tasks → theme → complete, with early exits for
// "later" and "skip this week". Each step commits its patch through the
// sink as it happens, so abandoning the wizard mid-way loses nothing
// already answered.
type ResetFlow struct {
	sink       WeeksSink
	weekID     string
	prevWeekID string
	now        func() time.Time
	step       ResetStep
	exited     bool
}

// NewResetFlow starts a flow at the intro step for the given week.
func NewResetFlow(sink WeeksSink, weekID, prevWeekID string) *ResetFlow {
	return &ResetFlow{
		sink:       sink,
		weekID:     weekID,
		prevWeekID: prevWeekID,
		now:        time.Now,
		step:       StepIntro,
	}
}

// Step returns the current wizard state.
func (f *ResetFlow) Step() ResetStep { return f.step }

// Exited reports whether the wizard has been left, either early or after
// completion.
func (f *ResetFlow) Exited() bool { return f.exited }

// Begin leaves the intro, stamping startedAt the first time only.
func (f *ResetFlow) Begin() {
	if f.step != StepIntro {
		return
	}
	now := f.now()
	f.sink.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return MarkResetStarted(weeks, f.weekID, now)
	})
	f.step = StepLookback
}

// Later exits from the intro without touching the record.
func (f *ResetFlow) Later() {
	if f.step != StepIntro {
		return
	}
	f.exited = true
}

// SkipWeek marks the whole ritual as skipped for this week and exits.
func (f *ResetFlow) SkipWeek() {
	if f.step != StepIntro {
		return
	}
	now := f.now()
	f.sink.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return MarkResetCompleted(weeks, f.weekID, true, now)
	})
	f.exited = true
}

// SaveLookback stores the lookback answers and moves on to tasks.
func (f *ResetFlow) SaveLookback(meaningful, askedALot string) {
	if f.step != StepLookback {
		return
	}
	f.sink.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return UpdateLookback(weeks, f.weekID, meaningful, askedALot)
	})
	f.step = StepTasks
}

// Decide records carry or release for one of last week's unfinished tasks.
// A carry additionally clones the task into this week's list; the previous
// week stays untouched. The step does not advance: deciding removes the
// task from the pending set by virtue of the recorded decision.
func (f *ResetFlow) Decide(taskID string, decision models.TaskDecision) {
	if f.step != StepTasks {
		return
	}
	now := f.now()
	f.sink.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return DecideResetTask(weeks, f.weekID, f.prevWeekID, taskID, decision, now)
	})
}

// Next advances tasks → theme.
func (f *ResetFlow) Next() {
	if f.step == StepTasks {
		f.step = StepTheme
	}
}

// SaveTheme stores the theme step's answers and finishes the ritual.
func (f *ResetFlow) SaveTheme(patch ThemePatch) {
	if f.step != StepTheme {
		return
	}
	f.sink.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return ApplyThemePatch(weeks, f.weekID, patch)
	})
	f.Finish()
}

// Finish marks the reset complete (completedAt stamped at most once) and
// lands on the closing step.
func (f *ResetFlow) Finish() {
	if f.step != StepTheme {
		return
	}
	now := f.now()
	f.sink.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return MarkResetCompleted(weeks, f.weekID, false, now)
	})
	f.step = StepComplete
}

// Skip skips the current step: out of the wizard from the intro, forward
// everywhere else. Skipping the theme step still finishes the ritual, just
// without a patch.
func (f *ResetFlow) Skip() {
	switch f.step {
	case StepIntro:
		f.exited = true
	case StepLookback:
		f.step = StepTasks
	case StepTasks:
		f.step = StepTheme
	case StepTheme:
		f.Finish()
	}
}

// Done exits from the closing step.
func (f *ResetFlow) Done() {
	if f.step == StepComplete {
		f.exited = true
	}
}

// MarkResetStarted stamps startedAt on the week's reset record if it is
// not already set.
func MarkResetStarted(weeks models.WeeksMap, weekID string, now time.Time) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	if w.WeeklyReset.StartedAt != nil {
		return next
	}
	reset := NormalizeReset(w.WeeklyReset)
	at := now
	reset.StartedAt = &at
	w.WeeklyReset = reset
	next[weekID] = w
	return next
}

// MarkResetCompleted marks the reset done. completedAt is written at most
// once, even if finishing twice; completed never reverts, and neither
// does an already-recorded skip.
func MarkResetCompleted(weeks models.WeeksMap, weekID string, skipped bool, now time.Time) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	reset := NormalizeReset(w.WeeklyReset)
	reset.Completed = true
	reset.Skipped = reset.Skipped || skipped
	if reset.CompletedAt == nil {
		at := now
		reset.CompletedAt = &at
	}
	w.WeeklyReset = reset
	next[weekID] = w
	return next
}

// UpdateLookback patches the lookback answers into the week's reset
// record.
func UpdateLookback(weeks models.WeeksMap, weekID, meaningful, askedALot string) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	reset := NormalizeReset(w.WeeklyReset)
	reset.Lookback.Meaningful = strings.TrimSpace(meaningful)
	reset.Lookback.AskedALot = strings.TrimSpace(askedALot)
	w.WeeklyReset = reset
	next[weekID] = w
	return next
}

// RecordTaskDecision writes a carry/release decision into the week's reset
// record. Decisions accumulate; they are never removed.
func RecordTaskDecision(weeks models.WeeksMap, weekID, taskID string, decision models.TaskDecision) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	reset := NormalizeReset(w.WeeklyReset)
	reset.TaskDecisions[taskID] = decision
	w.WeeklyReset = reset
	next[weekID] = w
	return next
}

// DecideResetTask records the decision and, on carry, clones the
// referenced previous-week task into the current week's weekly tasks with
// a fresh id and undone state. A decision for an id no longer present in
// the previous week records the decision and nothing else.
func DecideResetTask(weeks models.WeeksMap, weekID, prevWeekID, taskID string, decision models.TaskDecision, now time.Time) models.WeeksMap {
	next := RecordTaskDecision(weeks, weekID, taskID, decision)
	if decision != models.DecisionCarry {
		return next
	}

	prev, ok := next[prevWeekID]
	if !ok {
		return next
	}
	for _, t := range prev.WeeklyTasks {
		if t.ID != taskID {
			continue
		}
		w := next[weekID]
		clone := models.Task{
			ID:        uuid.New().String(),
			Title:     t.Title,
			CreatedAt: now,
		}
		w.WeeklyTasks = prependTask(w.WeeklyTasks, clone)
		next[weekID] = w
		break
	}
	return next
}

// ApplyThemePatch writes the theme step's answers: the theme onto the week
// record, the rest into the reset record.
func ApplyThemePatch(weeks models.WeeksMap, weekID string, patch ThemePatch) models.WeeksMap {
	next := EnsureWeek(weeks, weekID)
	w := next[weekID]
	reset := NormalizeReset(w.WeeklyReset)
	reset.PausePrompt = strings.TrimSpace(patch.PausePrompt)
	reset.Inspiration = strings.TrimSpace(patch.Inspiration)
	reset.Behavior = strings.TrimSpace(patch.Behavior)
	w.WeeklyReset = reset
	if theme := strings.TrimSpace(patch.Theme); theme != "" {
		w.Theme = theme
	}
	next[weekID] = w
	return next
}

// PendingResetTasks returns the previous week's unfinished weekly tasks
// that have no decision recorded yet, the working set of the tasks step.
func PendingResetTasks(weeks models.WeeksMap, weekID, prevWeekID string) []models.Task {
	var decisions map[string]models.TaskDecision
	if w, ok := weeks[weekID]; ok && w.WeeklyReset != nil {
		decisions = w.WeeklyReset.TaskDecisions
	}
	var out []models.Task
	for _, t := range UnfinishedWeeklyTasks(weeks, prevWeekID) {
		if _, decided := decisions[t.ID]; decided {
			continue
		}
		out = append(out, t)
	}
	return out
}
