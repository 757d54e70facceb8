package cli

import (
	"fmt"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
)

type HistoryCmd struct {
	Date string `arg:"" optional:"" help:"A day in the week to look back on (YYYY-MM-DD)."`
}

// Run shows a past week: theme, weekly tasks, reflections, then the
// chosen day's note, tasks, and meals.
func (c *HistoryCmd) Run(ctx *Context) error {
	dayID, err := ctx.resolveDay(c.Date)
	if err != nil {
		return err
	}
	weekID := weekOf(dayID)
	week := ctx.Store.Weeks()[weekID]

	fmt.Println(titleStyle.Render("Week of " + weekID))
	if week.Theme != "" {
		fmt.Println(themeStyle.Render("  theme: " + week.Theme))
	}
	if week.WeeklyReset != nil && week.WeeklyReset.Skipped {
		fmt.Println(mutedStyle.Render("  (reset skipped this week)"))
	}

	if len(week.WeeklyTasks) > 0 {
		fmt.Println("\nWeekly tasks:")
		printTasks(week.WeeklyTasks)
	}

	if len(week.Reflections) > 0 {
		fmt.Println("\nReflections:")
		for _, r := range week.Reflections {
			fmt.Printf("  %s  %s\n", mutedStyle.Render(r.DayID), r.Text)
		}
	}

	fmt.Println("\nDays:")
	tasksByDay := ctx.Store.TasksByDay()
	notesByDay := ctx.Store.NotesByDay()
	for _, d := range dates.WeekDays(weekID) {
		done := 0
		for _, t := range tasksByDay[d] {
			if t.Done {
				done++
			}
		}
		line := fmt.Sprintf("  %s  %d/%d tasks", d, done, len(tasksByDay[d]))
		if notesByDay[d] != "" {
			line += "  ✎"
		}
		fmt.Println(line)
	}

	fmt.Println()
	fmt.Println(titleStyle.Render(dayID))

	if affirmation, ok := week.AffirmationsByDay[dayID]; ok && affirmation != "" {
		fmt.Println("  " + themeStyle.Render(affirmation))
	}
	if note := ctx.Store.NotesByDay()[dayID]; note != "" {
		fmt.Println("  note: " + note)
	}
	if tasks := ctx.Store.TasksByDay()[dayID]; len(tasks) > 0 {
		fmt.Println("\nTasks:")
		printTasks(tasks)
	}
	if meals, ok := ctx.Store.MealsByDay()[dayID]; ok {
		fmt.Println()
		printMeals(dayID, meals)
	}
	return nil
}
