package cli

import (
	"fmt"
	"strings"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/models"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

func parseSlot(s string) (models.MealSlot, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "breakfast":
		return models.MealBreakfast, nil
	case "lunch":
		return models.MealLunch, nil
	case "dinner":
		return models.MealDinner, nil
	}
	return "", fmt.Errorf("unknown meal %q, use breakfast, lunch, or dinner", s)
}

type MealSetCmd struct {
	Slot string   `arg:"" help:"breakfast, lunch, or dinner."`
	Text []string `arg:"" help:"What you're having."`
}

func (c *MealSetCmd) Run(ctx *Context) error {
	slot, err := parseSlot(c.Slot)
	if err != nil {
		return err
	}
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return nil
	}
	dayID := dates.DayID(ctx.Now())
	ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
		return planner.SetMeal(byDay, dayID, slot, text)
	})
	fmt.Printf("%s: %s\n", c.Slot, text)
	return nil
}

type MealClearCmd struct {
	Slot string `arg:"" help:"breakfast, lunch, or dinner."`
}

func (c *MealClearCmd) Run(ctx *Context) error {
	slot, err := parseSlot(c.Slot)
	if err != nil {
		return err
	}
	dayID := dates.DayID(ctx.Now())
	ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
		return planner.ClearMeal(byDay, dayID, slot)
	})
	fmt.Printf("Cleared %s.\n", c.Slot)
	return nil
}

type MealSnackAddCmd struct {
	Text []string `arg:"" help:"Snack description."`
}

func (c *MealSnackAddCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return nil
	}
	now := ctx.Now()
	ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
		return planner.AddSnack(byDay, dates.DayID(now), text, now)
	})
	fmt.Printf("Snack: %s\n", text)
	return nil
}

type MealSnackRmCmd struct {
	ID string `arg:"" help:"Snack id or id prefix."`
}

func (c *MealSnackRmCmd) Run(ctx *Context) error {
	dayID := dates.DayID(ctx.Now())
	entry, ok := findEntry(ctx.Store.MealsByDay()[dayID].Snacks, c.ID)
	if !ok {
		return fmt.Errorf("no snack matching %q", c.ID)
	}
	ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
		return planner.DeleteSnack(byDay, dayID, entry.ID)
	})
	fmt.Printf("Removed snack: %s\n", entry.Text)
	return nil
}

type MealDrinkAddCmd struct {
	Text []string `arg:"" help:"Drink description."`
}

func (c *MealDrinkAddCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		return nil
	}
	now := ctx.Now()
	ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
		return planner.AddDrink(byDay, dates.DayID(now), text, now)
	})
	fmt.Printf("Drink: %s\n", text)
	return nil
}

type MealDrinkRmCmd struct {
	ID string `arg:"" help:"Drink id or id prefix."`
}

func (c *MealDrinkRmCmd) Run(ctx *Context) error {
	dayID := dates.DayID(ctx.Now())
	entry, ok := findEntry(ctx.Store.MealsByDay()[dayID].Drinks, c.ID)
	if !ok {
		return fmt.Errorf("no drink matching %q", c.ID)
	}
	ctx.Store.UpdateMeals(func(byDay map[string]models.DailyMeals) map[string]models.DailyMeals {
		return planner.DeleteDrink(byDay, dayID, entry.ID)
	})
	fmt.Printf("Removed drink: %s\n", entry.Text)
	return nil
}

type MealShowCmd struct {
	Date string `arg:"" optional:"" help:"Date to show (YYYY-MM-DD or 'today')."`
}

func (c *MealShowCmd) Run(ctx *Context) error {
	dayID, err := ctx.resolveDay(c.Date)
	if err != nil {
		return err
	}
	printMeals(dayID, ctx.Store.MealsByDay()[dayID])
	return nil
}

func printMeals(dayID string, meals models.DailyMeals) {
	fmt.Println(titleStyle.Render("Meals for " + dayID))
	printSlot("breakfast", meals.Breakfast)
	printSlot("lunch", meals.Lunch)
	printSlot("dinner", meals.Dinner)
	printEntries("snacks", meals.Snacks)
	printEntries("drinks", meals.Drinks)
}

func printSlot(name, text string) {
	if text == "" {
		text = mutedStyle.Render("—")
	}
	fmt.Printf("  %-10s %s\n", name, text)
}

func printEntries(name string, entries []models.MealEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Printf("  %s\n", name)
	for _, e := range entries {
		fmt.Printf("    %s  %s\n", e.Text, mutedStyle.Render(shortID(e.ID)))
	}
}

func findEntry(entries []models.MealEntry, ref string) (models.MealEntry, bool) {
	for _, e := range entries {
		if e.ID == ref || strings.HasPrefix(e.ID, ref) {
			return e, true
		}
	}
	return models.MealEntry{}, false
}
