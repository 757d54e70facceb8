package cli

import (
	"context"
	"fmt"

	"github.com/AmyTroutman/gentle-planner/internal/storage"
)

type MigrateCmd struct {
	URI  string `help:"MongoDB connection string." env:"PLANNER_MONGO_URI"`
	User string `help:"User id to migrate into." env:"PLANNER_USER" default:"me"`
}

// Run copies the local planner document into the remote backend as one
// whole-document write. The local data is left untouched; point
// PLANNER_MONGO_URI at the remote afterwards to start using it.
func (c *MigrateCmd) Run(ctx *Context) error {
	if ctx.IsRemote {
		return fmt.Errorf("already running against remote storage; nothing to migrate")
	}
	if c.URI == "" {
		return fmt.Errorf("no MongoDB URI given; set --uri or PLANNER_MONGO_URI")
	}

	runCtx := context.Background()
	if err := ctx.Store.WaitLoaded(runCtx); err != nil {
		return err
	}
	ctx.Store.Flush()

	remote, err := storage.NewMongoBackend(runCtx, c.URI, c.User)
	if err != nil {
		return fmt.Errorf("connect to remote storage: %w", err)
	}
	defer remote.Close()

	doc := ctx.Store.Doc()
	if err := remote.Set(runCtx, doc); err != nil {
		return fmt.Errorf("write planner document: %w", err)
	}

	fmt.Printf("Migrated %d week(s), %d day(s) of tasks, %d day(s) of meals, %d note(s).\n",
		len(doc.Weeks), len(doc.TasksByDay), len(doc.MealsByDay), len(doc.NotesByDay))
	fmt.Println("Set PLANNER_MONGO_URI to use the remote backend from now on.")
	return nil
}
