package cli

import (
	"fmt"
	"strings"

	"github.com/AmyTroutman/gentle-planner/internal/dates"
	"github.com/AmyTroutman/gentle-planner/internal/planner"
)

type NoteCmd struct {
	Text  []string `arg:"" optional:"" help:"Note text; omit to show today's note."`
	Clear bool     `help:"Clear today's note."`
}

func (c *NoteCmd) Run(ctx *Context) error {
	dayID := dates.DayID(ctx.Now())

	if c.Clear {
		ctx.Store.UpdateNotes(func(notes map[string]string) map[string]string {
			return planner.ClearNote(notes, dayID)
		})
		fmt.Println("Note cleared.")
		return nil
	}

	text := strings.TrimSpace(strings.Join(c.Text, " "))
	if text == "" {
		note := ctx.Store.NotesByDay()[dayID]
		if note == "" {
			fmt.Println(mutedStyle.Render("No note for today."))
			return nil
		}
		fmt.Println(note)
		return nil
	}

	ctx.Store.UpdateNotes(func(notes map[string]string) map[string]string {
		return planner.SetNote(notes, dayID, text)
	})
	fmt.Println("Noted.")
	return nil
}
