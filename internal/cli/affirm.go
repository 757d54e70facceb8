package cli

import (
	"fmt"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type AffirmCmd struct {
	Refresh bool `help:"Pick a new affirmation for today."`
}

// Run shows today's affirmation, picking one the first time the day is
// visited. An existing affirmation is only replaced on --refresh.
func (c *AffirmCmd) Run(ctx *Context) error {
	now := ctx.Now()
	weekID := dates.WeekID(now)
	dayID := dates.DayID(now)

	update := planner.BackfillAffirmation
	if c.Refresh {
		update = planner.RefreshAffirmation
	}
	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		return update(weeks, weekID, dayID)
	})

	text, ok := planner.DailyAffirmation(ctx.Store.Weeks(), weekID, dayID)
	if !ok {
		return fmt.Errorf("no affirmation for %s", dayID)
	}
	fmt.Println(themeStyle.Render(text))
	return nil
}
