package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/storage"
	"github.com/AmyTroutman/gentle-planner/internal/store"
)

// Context carries everything a command needs to run.
type Context struct {
	Store   *store.Store
	Backend storage.Backend
	Log     *zap.Logger
	Now     func() time.Time

	// LocalPath is the data file for file/sqlite backends, empty for
	// remote storage.
	LocalPath string
	IsRemote  bool
}

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	themeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Italic(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// resolveDay turns a command-line date argument into a day bucket id.
// Empty and "today" mean now.
func (c *Context) resolveDay(arg string) (string, error) {
	if arg == "" || arg == "today" {
		return dates.DayID(c.Now()), nil
	}
	t, err := dates.ParseDay(arg)
	if err != nil {
		return "", fmt.Errorf("invalid date %q, use YYYY-MM-DD or 'today'", arg)
	}
	return dates.DayID(t), nil
}

// weekOf returns the week bucket id holding the given day id.
func weekOf(dayID string) string {
	t, err := dates.ParseDay(dayID)
	if err != nil {
		return dayID
	}
	return dates.WeekID(t)
}

// findTask resolves a user-supplied reference to a task: an id, an id
// prefix, or a case-insensitive title.
func findTask(tasks []models.Task, ref string) (models.Task, bool) {
	needle := strings.ToLower(strings.TrimSpace(ref))
	if needle == "" {
		return models.Task{}, false
	}
	for _, t := range tasks {
		if t.ID == ref {
			return t, true
		}
	}
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, ref) {
			return t, true
		}
	}
	for _, t := range tasks {
		if strings.ToLower(strings.TrimSpace(t.Title)) == needle {
			return t, true
		}
	}
	return models.Task{}, false
}

func printTasks(tasks []models.Task) {
	if len(tasks) == 0 {
		fmt.Println(mutedStyle.Render("  nothing here yet"))
		return
	}
	for _, t := range tasks {
		mark := "[ ]"
		title := t.Title
		if t.Done {
			mark = "[x]"
			title = doneStyle.Render(title)
		}
		fmt.Printf("  %s %s  %s\n", mark, title, mutedStyle.Render(shortID(t.ID)))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
