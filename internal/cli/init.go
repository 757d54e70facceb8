package cli

import (
	"context"
	"fmt"
)

type InitCmd struct{}

// Run creates the backing document if storage has never been written.
// Re-running against existing data writes the same document back, so it
// is safe to repeat.
func (c *InitCmd) Run(ctx *Context) error {
	runCtx := context.Background()
	if err := ctx.Store.WaitLoaded(runCtx); err != nil {
		return err
	}
	if err := ctx.Backend.Set(runCtx, ctx.Store.Doc()); err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	fmt.Printf("Initialized gentle-planner storage at: %s\n", ctx.Backend.Location())
	return nil
}
