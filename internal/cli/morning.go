package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type MorningCmd struct{}

// Run walks the morning ritual: greet, set a theme if the week has none,
// reflect on yesterday's theme, surface today's affirmation, and plan
// breakfast. Every answer is optional; skipping a prompt skips its
// write.
func (c *MorningCmd) Run(ctx *Context) error {
	now := ctx.Now()
	weekID := dates.WeekID(now)
	dayID := dates.DayID(now)

	fmt.Println(titleStyle.Render("Good morning."))
	fmt.Println()

	week := ctx.Store.Weeks()[weekID]

	if week.Theme == "" {
		var theme string
		form := huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("This week has no theme yet. What would you like it to be?").
				Placeholder("e.g. move slowly, notice more").
				Value(&theme),
		))
		if err := form.Run(); err != nil {
			return err
		}
		if strings.TrimSpace(theme) != "" {
			ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
				return planner.SetTheme(weeks, weekID, theme)
			})
		}
	} else {
		fmt.Println("This week's theme: " + themeStyle.Render(week.Theme))
	}

	var reflection string
	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("How did living the theme go yesterday?").
			Placeholder("leave empty to skip").
			Value(&reflection),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if strings.TrimSpace(reflection) != "" {
		ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
			return planner.AddReflection(weeks, weekID, dayID, reflection, now)
		})
	}

	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return planner.BackfillAffirmation(weeks, weekID, dayID)
	})
	if text, ok := planner.DailyAffirmation(ctx.Store.Weeks(), weekID, dayID); ok {
		fmt.Println()
		fmt.Println("Today's affirmation: " + themeStyle.Render(text))
		fmt.Println()
	}

	var breakfast string
	form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("What's for breakfast?").
			Placeholder("leave empty to skip").
			Value(&breakfast),
	))
	if err := form.Run(); err != nil {
		return err
	}
	if strings.TrimSpace(breakfast) != "" {
		ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
			return planner.SetMeal(byDay, dayID, models.MealBreakfast, breakfast)
		})
	}

	fmt.Println("Have a gentle day.")
	return nil
}
