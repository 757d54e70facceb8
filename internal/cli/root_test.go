package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

func testContext() *Context {
	return &Context{
		Now: func() time.Time {
			return time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC) // a Wednesday
		},
	}
}

func TestResolveDay(t *testing.T) {
	ctx := testContext()

	got, err := ctx.resolveDay("")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", got)

	got, err = ctx.resolveDay("today")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-05", got)

	got, err = ctx.resolveDay("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", got)

	_, err = ctx.resolveDay("June 5th")
	assert.Error(t, err)
}

func TestWeekOf(t *testing.T) {
	assert.Equal(t, "2024-06-03", weekOf("2024-06-05"), "midweek day maps to its Monday")
	assert.Equal(t, "2024-06-03", weekOf("2024-06-03"), "Monday maps to itself")
}

func TestFindTask(t *testing.T) {
	tasks := []models.Task{
		{ID: "aaaa-1111", Title: "Water plants"},
		{ID: "bbbb-2222", Title: "Call the dentist"},
	}

	got, ok := findTask(tasks, "bbbb-2222")
	require.True(t, ok)
	assert.Equal(t, "Call the dentist", got.Title)

	got, ok = findTask(tasks, "aaaa")
	require.True(t, ok, "id prefix should match")
	assert.Equal(t, "Water plants", got.Title)

	got, ok = findTask(tasks, "water plants")
	require.True(t, ok, "title match is case-insensitive")
	assert.Equal(t, "aaaa-1111", got.ID)

	_, ok = findTask(tasks, "laundry")
	assert.False(t, ok)

	_, ok = findTask(tasks, "   ")
	assert.False(t, ok)
}

func TestParseSlot(t *testing.T) {
	for _, name := range []string{"breakfast", "Lunch", " DINNER "} {
		_, err := parseSlot(name)
		assert.NoError(t, err, name)
	}
	_, err := parseSlot("brunch")
	assert.Error(t, err)
}
