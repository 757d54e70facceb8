package models

import "time"

// MealSlot names one of the single-entry meal fields of a day.
type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
)

// MealEntry is one logged snack or drink.
type MealEntry struct {
	ID        string    `json:"id" bson:"id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// DailyMeals holds everything eaten on a single day. The three meal slots
// are overwritten wholesale on save and emptied wholesale on clear; snacks
// and drinks grow by prepend and shrink by id.
type DailyMeals struct {
	Breakfast string      `json:"breakfast,omitempty" bson:"breakfast,omitempty"`
	Lunch     string      `json:"lunch,omitempty" bson:"lunch,omitempty"`
	Dinner    string      `json:"dinner,omitempty" bson:"dinner,omitempty"`
	Snacks    []MealEntry `json:"snacks" bson:"snacks"`
	Drinks    []MealEntry `json:"drinks" bson:"drinks"`
}
