package models

import "time"

// Task is a single to-do item, either inside a day bucket or on a week's
// weekly task list.
type Task struct {
	ID        string     `json:"id" bson:"id"`
	Title     string     `json:"title" bson:"title"`
	Done      bool       `json:"done" bson:"done"`
	CreatedAt time.Time  `json:"created_at" bson:"createdAt"`
	DoneAt    *time.Time `json:"done_at,omitempty" bson:"doneAt,omitempty"`
}
