package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type ResetCmd struct{}

// Run walks the weekly reset ritual: look back at last week, decide what
// happens to its unfinished tasks, and choose a theme for the new week.
// The ritual can be deferred, skipped for the week, or skipped one step
// at a time; whatever was answered before leaving is kept.
func (c *ResetCmd) Run(ctx *Context) error {
	now := ctx.Now()
	weekID := dates.WeekID(now)
	prevWeekID := dates.PreviousWeekID(now)

	week := planner.NormalizeWeek(ctx.Store.Weeks()[weekID])
	if week.WeeklyReset.Completed {
		fmt.Println("This week's reset is already done.")
		return nil
	}

	flow := planner.NewResetFlow(ctx.Store, weekID, prevWeekID)

	var choice string
	intro := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Time for a weekly reset. Ready?").
			Options(
				huh.NewOption("Let's do it", "start"),
				huh.NewOption("Later", "later"),
				huh.NewOption("Skip this week", "skip"),
			).
			Value(&choice),
	))
	if err := intro.Run(); err != nil {
		return err
	}
	switch choice {
	case "later":
		flow.Later()
		fmt.Println("No rush. It'll be here when you are.")
		return nil
	case "skip":
		flow.SkipWeek()
		fmt.Println("Skipped for this week.")
		return nil
	}
	flow.Begin()

	var meaningful, askedALot string
	lookback := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Looking back: what felt meaningful last week?").
			Placeholder("leave empty to skip").
			Value(&meaningful),
		huh.NewText().
			Title("What asked a lot of you?").
			Value(&askedALot),
	))
	if err := lookback.Run(); err != nil {
		return err
	}
	if strings.TrimSpace(meaningful) == "" && strings.TrimSpace(askedALot) == "" {
		flow.Skip()
	} else {
		flow.SaveLookback(meaningful, askedALot)
	}

	if err := c.decideTasks(ctx, flow, weekID, prevWeekID); err != nil {
		return err
	}

	var patch planner.ThemePatch
	theme := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Take a breath. What's on your mind as the week turns?").
			Placeholder("leave empty to skip the whole step").
			Value(&patch.PausePrompt),
		huh.NewInput().
			Title("A theme for the coming week?").
			Value(&patch.Theme),
		huh.NewInput().
			Title("Something that inspires you right now?").
			Value(&patch.Inspiration),
		huh.NewInput().
			Title("One behavior to practice?").
			Value(&patch.Behavior),
	))
	if err := theme.Run(); err != nil {
		return err
	}
	if emptyPatch(patch) {
		flow.Skip()
	} else {
		flow.SaveTheme(patch)
	}

	fmt.Println(titleStyle.Render("Reset complete. Welcome to the new week."))
	return nil
}

// decideTasks walks last week's unfinished tasks one by one. Tasks that
// already have a decision from an earlier attempt are not asked again.
func (c *ResetCmd) decideTasks(ctx *Context, flow *planner.ResetFlow, weekID, prevWeekID string) error {
	pending := planner.PendingResetTasks(ctx.Store.Weeks(), weekID, prevWeekID)
	if len(pending) == 0 {
		flow.Next()
		return nil
	}

	for _, task := range pending {
		var decision models.TaskDecision
		form := huh.NewForm(huh.NewGroup(
			huh.NewSelect[models.TaskDecision]().
				Title(fmt.Sprintf("Last week: %q — carry it into this week?", task.Title)).
				Options(
					huh.NewOption("Carry it over", models.DecisionCarry),
					huh.NewOption("Let it go", models.DecisionRelease),
				).
				Value(&decision),
		))
		if err := form.Run(); err != nil {
			return err
		}
		flow.Decide(task.ID, decision)
	}
	flow.Next()
	return nil
}

func emptyPatch(p planner.ThemePatch) bool {
	return strings.TrimSpace(p.PausePrompt) == "" &&
		strings.TrimSpace(p.Theme) == "" &&
		strings.TrimSpace(p.Inspiration) == "" &&
		strings.TrimSpace(p.Behavior) == ""
}
