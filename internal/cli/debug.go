package cli

import (
	"encoding/json"
	"fmt"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type DebugCmd struct {
	Location     *DebugLocationCmd     `cmd:"" help:"Show storage location."`
	DumpWeek     *DebugDumpWeekCmd     `cmd:"" help:"Dump a week record as JSON."`
	SeedLastWeek *DebugSeedLastWeekCmd `cmd:"" help:"Seed unfinished tasks into last week."`
}

type DebugLocationCmd struct{}

func (cmd *DebugLocationCmd) Run(ctx *Context) error {
	out, err := json.MarshalIndent(map[string]string{"location": ctx.Backend.Location()}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

type DebugDumpWeekCmd struct {
	Date string `arg:"" optional:"" help:"A day in the week to dump (YYYY-MM-DD or 'today')."`
}

func (cmd *DebugDumpWeekCmd) Run(ctx *Context) error {
	dayID, err := ctx.resolveDay(cmd.Date)
	if err != nil {
		return err
	}
	weekID := weekOf(dayID)
	week, ok := ctx.Store.Weeks()[weekID]
	if !ok {
		return fmt.Errorf("no record for the week of %s", weekID)
	}
	out, err := json.MarshalIndent(week, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

type DebugSeedLastWeekCmd struct{}

// Run plants a few unfinished weekly tasks in last week so the reset and
// carry-over paths can be exercised on a fresh document.
func (cmd *DebugSeedLastWeekCmd) Run(ctx *Context) error {
	now := ctx.Now()
	prevWeekID := dates.PreviousWeekID(now)

	titles := []string{"water the plants", "write that letter", "sort the photo box"}
	ctx.Store.UpdateWeeks(func(weeks models.WeeksMap) models.WeeksMap {
		next := weeks
		for _, title := range titles {
			next = planner.AddWeeklyTask(next, prevWeekID, title, now)
		}
		return next
	})
	fmt.Printf("Seeded %d unfinished task(s) into the week of %s.\n", len(titles), prevWeekID)
	return nil
}
