package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

func fileBackend(t *testing.T) *FileBackend {
	t.Helper()
	return NewFileBackend(filepath.Join(t.TempDir(), "planner.json"))
}

func TestFileBackendAbsentDocument(t *testing.T) {
	b := fileBackend(t)

	ctx := context.Background()
	var got *models.PlannerDoc
	seen := false
	stop, err := b.Subscribe(ctx, func(doc *models.PlannerDoc) {
		got = doc
		seen = true
	})
	require.NoError(t, err)
	defer stop()

	assert.True(t, seen, "initial snapshot should be delivered synchronously")
	assert.Nil(t, got, "missing file reports an absent document")
}

func TestFileBackendUpdateWithoutDocument(t *testing.T) {
	b := fileBackend(t)

	err := b.Update(context.Background(), map[string]any{
		models.FieldNotes: map[string]string{"2024-06-03": "hi"},
	})
	assert.ErrorIs(t, err, ErrDocMissing)
}

func TestFileBackendSetThenRead(t *testing.T) {
	b := fileBackend(t)
	ctx := context.Background()

	doc := models.NewPlannerDoc()
	doc.NotesByDay["2024-06-03"] = "slow morning"
	doc.Weeks["2024-06-03"] = models.WeekRecord{WeekID: "2024-06-03", Theme: "gentle"}
	require.NoError(t, b.Set(ctx, doc))

	var got *models.PlannerDoc
	stop, err := b.Subscribe(ctx, func(d *models.PlannerDoc) { got = d })
	require.NoError(t, err)
	defer stop()

	require.NotNil(t, got)
	assert.Equal(t, "slow morning", got.NotesByDay["2024-06-03"])
	assert.Equal(t, "gentle", got.Weeks["2024-06-03"].Theme)
}

func TestFileBackendPartialUpdateLeavesOtherFields(t *testing.T) {
	b := fileBackend(t)
	ctx := context.Background()

	doc := models.NewPlannerDoc()
	doc.NotesByDay["2024-06-03"] = "keep me"
	require.NoError(t, b.Set(ctx, doc))

	require.NoError(t, b.Update(ctx, map[string]any{
		models.FieldTasks: map[string][]models.Task{
			"2024-06-03": {{ID: "t1", Title: "stretch", CreatedAt: time.Now()}},
		},
	}))

	var got *models.PlannerDoc
	stop, err := b.Subscribe(ctx, func(d *models.PlannerDoc) { got = d })
	require.NoError(t, err)
	defer stop()

	require.NotNil(t, got)
	assert.Equal(t, "keep me", got.NotesByDay["2024-06-03"], "untouched field survives partial update")
	assert.Len(t, got.TasksByDay["2024-06-03"], 1)
}

func TestFileBackendWatchOutlivesStartupDeadline(t *testing.T) {
	b := fileBackend(t)

	// A short-lived deadline like the one used for connecting must not
	// govern the subscription: long interactive sessions need snapshots
	// well after startup.
	startup, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	snapshots := make(chan *models.PlannerDoc, 4)
	stop, err := b.Subscribe(context.Background(), func(d *models.PlannerDoc) { snapshots <- d })
	require.NoError(t, err)
	defer stop()
	require.Nil(t, <-snapshots)

	<-startup.Done()
	time.Sleep(100 * time.Millisecond)

	other := NewFileBackend(b.Location())
	doc := models.NewPlannerDoc()
	doc.NotesByDay["2024-06-03"] = "still watching"
	require.NoError(t, other.Set(context.Background(), doc))

	select {
	case got := <-snapshots:
		require.NotNil(t, got)
		assert.Equal(t, "still watching", got.NotesByDay["2024-06-03"])
	case <-time.After(3 * time.Second):
		t.Fatal("watch died after the startup deadline passed")
	}
}

func TestFileBackendSubscribeStopsWhenContextCancelled(t *testing.T) {
	b := fileBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	snapshots := make(chan *models.PlannerDoc, 4)
	stop, err := b.Subscribe(ctx, func(d *models.PlannerDoc) { snapshots <- d })
	require.NoError(t, err)
	defer stop()
	require.Nil(t, <-snapshots)

	cancel()
	time.Sleep(100 * time.Millisecond)

	other := NewFileBackend(b.Location())
	require.NoError(t, other.Set(context.Background(), models.NewPlannerDoc()))

	select {
	case <-snapshots:
		t.Fatal("snapshot delivered after context cancellation")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestFileBackendSubscribeSeesExternalWrite(t *testing.T) {
	b := fileBackend(t)
	ctx := context.Background()

	snapshots := make(chan *models.PlannerDoc, 4)
	stop, err := b.Subscribe(ctx, func(d *models.PlannerDoc) { snapshots <- d })
	require.NoError(t, err)
	defer stop()

	// Initial snapshot for the missing file.
	require.Nil(t, <-snapshots)

	// Write through a second backend, as another process would.
	other := NewFileBackend(b.Location())
	doc := models.NewPlannerDoc()
	doc.NotesByDay["2024-06-03"] = "from elsewhere"
	require.NoError(t, other.Set(ctx, doc))

	select {
	case got := <-snapshots:
		require.NotNil(t, got)
		assert.Equal(t, "from elsewhere", got.NotesByDay["2024-06-03"])
	case <-time.After(3 * time.Second):
		t.Fatal("no snapshot after external write")
	}
}
