package models

// Field names of the top-level PlannerDoc slices, as stored by every
// backend. Partial updates are keyed by these.
const (
	FieldWeeks = "weeks"
	FieldMeals = "mealsByDay"
	FieldTasks = "tasksByDay"
	FieldNotes = "notesByDay"
)

// AllFields lists every top-level slice in storage order.
var AllFields = []string{FieldWeeks, FieldMeals, FieldTasks, FieldNotes}

// WeeksMap maps week bucket id (the Monday's YYYY-MM-DD) to its record.
type WeeksMap = map[string]WeekRecord

// PlannerDoc is the aggregate document: the whole of one user's planner
// state. Map keys are canonical bucket ids from the dates package.
type PlannerDoc struct {
	Weeks      WeeksMap              `json:"weeks" bson:"weeks"`
	MealsByDay map[string]DailyMeals `json:"meals_by_day" bson:"mealsByDay"`
	TasksByDay map[string][]Task     `json:"tasks_by_day" bson:"tasksByDay"`
	NotesByDay map[string]string     `json:"notes_by_day" bson:"notesByDay"`
}

// NewPlannerDoc returns an empty document with all maps allocated.
func NewPlannerDoc() PlannerDoc {
	return PlannerDoc{
		Weeks:      WeeksMap{},
		MealsByDay: map[string]DailyMeals{},
		TasksByDay: map[string][]Task{},
		NotesByDay: map[string]string{},
	}
}

// EnsureMaps replaces any nil top-level map with an empty one. Snapshots
// from storage may omit fields that were never written.
func (d *PlannerDoc) EnsureMaps() {
	if d.Weeks == nil {
		d.Weeks = WeeksMap{}
	}
	if d.MealsByDay == nil {
		d.MealsByDay = map[string]DailyMeals{}
	}
	if d.TasksByDay == nil {
		d.TasksByDay = map[string][]Task{}
	}
	if d.NotesByDay == nil {
		d.NotesByDay = map[string]string{}
	}
}

// Field returns the named top-level slice, for backends that persist the
// document field by field.
func (d PlannerDoc) Field(name string) any {
	switch name {
	case FieldWeeks:
		return d.Weeks
	case FieldMeals:
		return d.MealsByDay
	case FieldTasks:
		return d.TasksByDay
	case FieldNotes:
		return d.NotesByDay
	}
	return nil
}
