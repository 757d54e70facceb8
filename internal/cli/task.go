package cli

import (
	"fmt"
	"strings"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type TaskAddCmd struct {
	Title []string `arg:"" help:"Task title."`
	Week  bool     `short:"w" help:"Add to this week's list instead of today."`
}

func (c *TaskAddCmd) Run(ctx *Context) error {
	title := strings.TrimSpace(strings.Join(c.Title, " "))
	if title == "" {
		return nil
	}
	now := ctx.Now()
	if c.Week {
		ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
			return planner.AddWeeklyTask(weeks, dates.WeekID(now), title, now)
		})
	} else {
		ctx.Store.UpdateTasks(func(tasks map[string][]models.Task) map[string][]models.Task {
			return planner.AddDayTask(tasks, dates.DayID(now), title, now)
		})
	}
	fmt.Printf("Added: %s\n", title)
	return nil
}

type TaskDoneCmd struct {
	Ref  []string `arg:"" help:"Task id, id prefix, or title."`
	Week bool     `short:"w" help:"Toggle a weekly task instead of today's."`
}

func (c *TaskDoneCmd) Run(ctx *Context) error {
	ref := strings.Join(c.Ref, " ")
	now := ctx.Now()
	task, ok := findTask(c.current(ctx), ref)
	if !ok {
		return fmt.Errorf("no task matching %q", ref)
	}
	if c.Week {
		ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
			return planner.ToggleWeeklyTask(weeks, dates.WeekID(now), task.ID, now)
		})
	} else {
		ctx.Store.UpdateTasks(func(tasks map[string][]models.Task) map[string][]models.Task {
			return planner.ToggleDayTask(tasks, dates.DayID(now), task.ID, now)
		})
	}
	if task.Done {
		fmt.Printf("Reopened: %s\n", task.Title)
	} else {
		fmt.Printf("Done: %s\n", task.Title)
	}
	return nil
}

func (c *TaskDoneCmd) current(ctx *Context) []models.Task {
	now := ctx.Now()
	if c.Week {
		return ctx.Store.Weeks()[dates.WeekID(now)].WeeklyTasks
	}
	return ctx.Store.TasksByDay()[dates.DayID(now)]
}

type TaskListCmd struct {
	Week bool `short:"w" help:"List this week's tasks instead of today's."`
}

func (c *TaskListCmd) Run(ctx *Context) error {
	now := ctx.Now()
	if c.Week {
		weekID := dates.WeekID(now)
		fmt.Println(titleStyle.Render("Week of " + weekID))
		printTasks(ctx.Store.Weeks()[weekID].WeeklyTasks)
		return nil
	}
	dayID := dates.DayID(now)
	fmt.Println(titleStyle.Render(dayID))
	printTasks(ctx.Store.TasksByDay()[dayID])
	return nil
}

type TaskRmCmd struct {
	Ref  []string `arg:"" help:"Task id, id prefix, or title."`
	Week bool     `short:"w" help:"Remove a weekly task instead of today's."`
}

func (c *TaskRmCmd) Run(ctx *Context) error {
	ref := strings.Join(c.Ref, " ")
	now := ctx.Now()
	var tasks []models.Task
	if c.Week {
		tasks = ctx.Store.Weeks()[dates.WeekID(now)].WeeklyTasks
	} else {
		tasks = ctx.Store.TasksByDay()[dates.DayID(now)]
	}
	task, ok := findTask(tasks, ref)
	if !ok {
		return fmt.Errorf("no task matching %q", ref)
	}
	if c.Week {
		ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
			return planner.DeleteWeeklyTask(weeks, dates.WeekID(now), task.ID)
		})
	} else {
		ctx.Store.UpdateTasks(func(byDay map[string][]models.Task) map[string][]models.Task {
			return planner.DeleteDayTask(byDay, dates.DayID(now), task.ID)
		})
	}
	fmt.Printf("Removed: %s\n", task.Title)
	return nil
}

type TaskCarryCmd struct{}

// Run copies last week's unfinished weekly tasks into this week,
// skipping titles this week already has.
func (c *TaskCarryCmd) Run(ctx *Context) error {
	now := ctx.Now()
	weekID := dates.WeekID(now)
	prevWeekID := dates.PreviousWeekID(now)

	carried := 0
	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		next, n := planner.CarryOverUnfinished(weeks, weekID, prevWeekID, now)
		carried = n
		return next
	})

	if carried == 0 {
		fmt.Println("Nothing to carry over.")
		return nil
	}
	fmt.Printf("Carried %d task(s) from the week of %s.\n", carried, prevWeekID)
	return nil
}
