// Package storage provides the document-store backends the aggregate store
// persists to: a JSON file, a SQLite database, or a remote MongoDB
// collection. All three expose the same subscribe / set / partial-update
// surface over the planner document.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// ErrDocMissing is returned by Update when the planner document has never
// been created. The store recovers by falling back to a full Set.
var ErrDocMissing = errors.New("planner document does not exist")

// SnapshotFunc receives the stored state of the planner document. It is
// called with nil when the document does not exist.
type SnapshotFunc func(doc *models.PlannerDoc)

// Backend is a document store holding one planner document.
type Backend interface {
	// Subscribe delivers the current document immediately and again
	// whenever the backend observes a change, until stop is called or ctx
	// is done.
	Subscribe(ctx context.Context, fn SnapshotFunc) (stop func(), err error)

	// Set writes the whole document, creating it if necessary.
	Set(ctx context.Context, doc models.PlannerDoc) error

	// Update persists only the given top-level fields. Returns
	// ErrDocMissing when there is no document to update.
	Update(ctx context.Context, fields map[string]any) error

	// Location describes where the document lives, for command output.
	Location() string

	Close() error
}

// applyFields writes partial-update values onto a document. Field values
// are the typed slice maps produced by the store; anything else is a
// programming error.
func applyFields(doc *models.PlannerDoc, fields map[string]any) error {
	for name, v := range fields {
		switch name {
		case models.FieldWeeks:
			m, ok := v.(models.WeeksMap)
			if !ok {
				return fmt.Errorf("field %q: unexpected type %T", name, v)
			}
			doc.Weeks = m
		case models.FieldMeals:
			m, ok := v.(map[string]models.DailyMeals)
			if !ok {
				return fmt.Errorf("field %q: unexpected type %T", name, v)
			}
			doc.MealsByDay = m
		case models.FieldTasks:
			m, ok := v.(map[string][]models.Task)
			if !ok {
				return fmt.Errorf("field %q: unexpected type %T", name, v)
			}
			doc.TasksByDay = m
		case models.FieldNotes:
			m, ok := v.(map[string]string)
			if !ok {
				return fmt.Errorf("field %q: unexpected type %T", name, v)
			}
			doc.NotesByDay = m
		default:
			return fmt.Errorf("unknown planner field %q", name)
		}
	}
	return nil
}
