package models

import "time"

// Reflection is a short note written against the week's theme. DayID records
// which day it was written on, for history grouping only.
type Reflection struct {
	ID        string    `json:"id" bson:"id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	DayID     string    `json:"day_id" bson:"dayId"`
}

// TaskDecision records what the weekly reset decided about one of last
// week's unfinished tasks.
type TaskDecision string

const (
	DecisionCarry   TaskDecision = "carry"
	DecisionRelease TaskDecision = "release"
)

// ResetLookback holds the free-text answers of the reset's lookback step.
type ResetLookback struct {
	Meaningful string `json:"meaningful,omitempty" bson:"meaningful,omitempty"`
	AskedALot  string `json:"asked_a_lot,omitempty" bson:"askedALot,omitempty"`
}

// WeeklyReset tracks the weekly reset ritual for one week. Completed never
// flips back to false and TaskDecisions only grows.
type WeeklyReset struct {
	Completed     bool                    `json:"completed" bson:"completed"`
	StartedAt     *time.Time              `json:"started_at,omitempty" bson:"startedAt,omitempty"`
	CompletedAt   *time.Time              `json:"completed_at,omitempty" bson:"completedAt,omitempty"`
	Skipped       bool                    `json:"skipped,omitempty" bson:"skipped,omitempty"`
	Lookback      ResetLookback           `json:"lookback" bson:"lookback"`
	PausePrompt   string                  `json:"pause_prompt,omitempty" bson:"pausePrompt,omitempty"`
	Inspiration   string                  `json:"inspiration,omitempty" bson:"inspiration,omitempty"`
	Behavior      string                  `json:"behavior,omitempty" bson:"behavior,omitempty"`
	TaskDecisions map[string]TaskDecision `json:"task_decisions" bson:"taskDecisions"`
}

// WeekRecord is everything tracked for one Monday-start week. WeeklyReset
// may be nil on legacy records; planner.NormalizeWeek fills it in before
// any consumer touches it.
type WeekRecord struct {
	WeekID            string            `json:"week_id" bson:"weekId"`
	Theme             string            `json:"theme" bson:"theme"`
	Reflections       []Reflection      `json:"reflections" bson:"reflections"`
	AffirmationsByDay map[string]string `json:"affirmations_by_day" bson:"affirmationsByDay"`
	WeeklyTasks       []Task            `json:"weekly_tasks" bson:"weeklyTasks"`
	WeeklyReset       *WeeklyReset      `json:"weekly_reset,omitempty" bson:"weeklyReset,omitempty"`
}
