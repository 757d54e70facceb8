package cli

import (
	"fmt"
	"strings"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type ReflectAddCmd struct {
	Text []string `arg:"" help:"What living the theme looked like today."`
}

func (c *ReflectAddCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return nil
	}
	now := ctx.Now()
	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return planner.AddReflection(weeks, dates.WeekID(now), dates.DayID(now), text, now)
	})
	fmt.Println("Reflection saved.")
	return nil
}

type ReflectListCmd struct{}

func (c *ReflectListCmd) Run(ctx *Context) error {
	weekID := dates.WeekID(ctx.Now())
	week := ctx.Store.Weeks()[weekID]

	fmt.Println(titleStyle.Render("Reflections, week of " + weekID))
	if week.Theme != "" {
		fmt.Println(themeStyle.Render("  theme: " + week.Theme))
	}
	if len(week.Reflections) == 0 {
		fmt.Println(mutedStyle.Render("  none yet"))
		return nil
	}
	for _, r := range week.Reflections {
		fmt.Printf("  %s  %s  %s\n", r.DayID, r.Text, mutedStyle.Render(shortID(r.ID)))
	}
	return nil
}

type ReflectRmCmd struct {
	ID string `arg:"" help:"Reflection id or id prefix."`
}

func (c *ReflectRmCmd) Run(ctx *Context) error {
	weekID := dates.WeekID(ctx.Now())
	week := ctx.Store.Weeks()[weekID]

	var target *models.Reflection
	for i, r := range week.Reflections {
		if r.ID == c.ID || strings.HasPrefix(r.ID, c.ID) {
			target = &week.Reflections[i]
			break
		}
	}
	if target == nil {
		return fmt.Errorf("no reflection matching %q", c.ID)
	}

	id := target.ID
	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return planner.DeleteReflection(weeks, weekID, id)
	})
	fmt.Println("Reflection removed.")
	return nil
}
