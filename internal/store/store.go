// Package store holds the user's whole planner state in memory and keeps
// it synchronized with a storage backend. Reads and updates are optimistic:
// a mutation lands in local state immediately and is persisted in the
// background, field by field, with last-writer-wins semantics.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/storage"
)

const persistTimeout = 15 * time.Second

// Store reconciles two copies of the planner document: the committed value
// (whatever the backend last reported) and the pending value (committed
// plus local edits whose persists have not settled). Updaters run against
// pending under the lock, so rapid mutations to one field are totally
// ordered locally even while their writes race remotely. When a snapshot
// arrives, fields with no write in flight adopt it; fields with
// unacknowledged writes keep the pending value until their persist
// settles.
//
// All slice values are treated as immutable: updaters return fresh maps
// and never mutate what they were given, so values previously read from
// the store stay stable.
type Store struct {
	backend storage.Backend
	log     *zap.Logger

	mu        sync.Mutex
	committed models.PlannerDoc
	pending   models.PlannerDoc
	dirty     map[string]int // field -> writes in flight
	loading   bool

	loaded chan struct{}
	stop   func()
	wg     sync.WaitGroup
}

// New builds a store over the given backend. Call Open to start the
// subscription.
func New(backend storage.Backend, log *zap.Logger) *Store {
	return &Store{
		backend:   backend,
		log:       log,
		committed: models.NewPlannerDoc(),
		pending:   models.NewPlannerDoc(),
		dirty:     map[string]int{},
		loading:   true,
		loaded:    make(chan struct{}),
	}
}

// Open subscribes to the backend. Until the first snapshot arrives the
// store reports Loading and serves empty defaults.
func (s *Store) Open(ctx context.Context) error {
	stop, err := s.backend.Subscribe(ctx, s.onSnapshot)
	if err != nil {
		return err
	}
	s.stop = stop
	return nil
}

// Close stops the subscription and waits for in-flight persists.
func (s *Store) Close() error {
	if s.stop != nil {
		s.stop()
	}
	s.Flush()
	return nil
}

// Flush blocks until every background persist has settled.
func (s *Store) Flush() {
	s.wg.Wait()
}

// Loading reports whether the first snapshot is still outstanding.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// WaitLoaded blocks until the first snapshot has arrived.
func (s *Store) WaitLoaded(ctx context.Context) error {
	select {
	case <-s.loaded:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store) onSnapshot(doc *models.PlannerDoc) {
	snap := models.NewPlannerDoc()
	if doc != nil {
		snap = *doc
		snap.EnsureMaps()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.committed = snap
	if s.dirty[models.FieldWeeks] == 0 {
		s.pending.Weeks = snap.Weeks
	}
	if s.dirty[models.FieldMeals] == 0 {
		s.pending.MealsByDay = snap.MealsByDay
	}
	if s.dirty[models.FieldTasks] == 0 {
		s.pending.TasksByDay = snap.TasksByDay
	}
	if s.dirty[models.FieldNotes] == 0 {
		s.pending.NotesByDay = snap.NotesByDay
	}
	if s.loading {
		s.loading = false
		close(s.loaded)
	}
}

// Weeks returns the current weeks slice. Treat as read-only.
func (s *Store) Weeks() models.WeeksMap {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Weeks
}

// MealsByDay returns the current meals slice. Treat as read-only.
func (s *Store) MealsByDay() map[string]models.DailyMeals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.MealsByDay
}

// TasksByDay returns the current daily tasks slice. Treat as read-only.
func (s *Store) TasksByDay() map[string][]models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.TasksByDay
}

// NotesByDay returns the current notes slice. Treat as read-only.
func (s *Store) NotesByDay() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.NotesByDay
}

// Doc returns the full pending document.
func (s *Store) Doc() models.PlannerDoc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Committed returns the document as the backend last reported it,
// without local optimistic edits.
func (s *Store) Committed() models.PlannerDoc {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed
}

// UpdateWeeks applies a copy-on-write transformation to the weeks slice
// and persists the result in the background.
func (s *Store) UpdateWeeks(f func(models.WeeksMap) models.WeeksMap) {
	s.mu.Lock()
	next := f(s.pending.Weeks)
	s.pending.Weeks = next
	s.dirty[models.FieldWeeks]++
	s.mu.Unlock()
	s.persist(models.FieldWeeks, next)
}

// UpdateMeals applies a copy-on-write transformation to the meals slice.
func (s *Store) UpdateMeals(f func(map[string]models.DailyMeals) map[string]models.DailyMeals) {
	s.mu.Lock()
	next := f(s.pending.MealsByDay)
	s.pending.MealsByDay = next
	s.dirty[models.FieldMeals]++
	s.mu.Unlock()
	s.persist(models.FieldMeals, next)
}

// UpdateTasks applies a copy-on-write transformation to the daily tasks
// slice.
func (s *Store) UpdateTasks(f func(map[string][]models.Task) map[string][]models.Task) {
	s.mu.Lock()
	next := f(s.pending.TasksByDay)
	s.pending.TasksByDay = next
	s.dirty[models.FieldTasks]++
	s.mu.Unlock()
	s.persist(models.FieldTasks, next)
}

// UpdateNotes applies a copy-on-write transformation to the notes slice.
func (s *Store) UpdateNotes(f func(map[string]string) map[string]string) {
	s.mu.Lock()
	next := f(s.pending.NotesByDay)
	s.pending.NotesByDay = next
	s.dirty[models.FieldNotes]++
	s.mu.Unlock()
	s.persist(models.FieldNotes, next)
}

// persist writes one field in the background. A missing document is
// recovered by creating it from the full local aggregate; any other
// failure is logged and dropped, leaving the local optimistic state
// authoritative until the next snapshot.
func (s *Store) persist(field string, value any) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			s.mu.Lock()
			s.dirty[field]--
			s.mu.Unlock()
		}()

		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()

		err := s.backend.Update(ctx, map[string]any{field: value})
		if errors.Is(err, storage.ErrDocMissing) {
			s.mu.Lock()
			full := s.pending
			s.mu.Unlock()
			err = s.backend.Set(ctx, full)
		}
		if err != nil {
			s.log.Warn("persist failed, keeping local state",
				zap.String("field", field),
				zap.Error(err))
		}
	}()
}
