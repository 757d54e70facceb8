package cli

import (
	"fmt"
	"strings"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type ThemeCmd struct {
	Text []string `arg:"" optional:"" help:"Theme text; omit to show this week's theme."`
}

func (c *ThemeCmd) Run(ctx *Context) error {
	weekID := dates.WeekID(ctx.Now())
	text := strings.TrimSpace(strings.Join(c.Text, " "))

	if text == "" {
		theme := ctx.Store.Weeks()[weekID].Theme
		if theme == "" {
			fmt.Println(mutedStyle.Render("No theme set for this week."))
			return nil
		}
		fmt.Println(themeStyle.Render(theme))
		return nil
	}

	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return planner.SetTheme(weeks, weekID, text)
	})
	fmt.Printf("Theme for the week of %s: %s\n", weekID, themeStyle.Render(text))
	return nil
}
