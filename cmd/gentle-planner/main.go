package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/AmyTroutman/gentle-planner/internal/cli"
	"github.com/AmyTroutman/gentle-planner/internal/storage"
	"github.com/AmyTroutman/gentle-planner/internal/store"
	"github.com/AmyTroutman/gentle-planner/pkg/cleanup"
	"github.com/AmyTroutman/gentle-planner/pkg/config"
)

var CLI struct {
	Version kong.VersionFlag
	Data    string `help:"Storage location: a .json path, a .db path, or a mongodb:// URI. Overrides the environment." type:"string"`

	Init cli.InitCmd `cmd:"" help:"Create the planner document."`
	Task struct {
		Add   cli.TaskAddCmd   `cmd:"" help:"Add a task for today (or the week with -w)."`
		Done  cli.TaskDoneCmd  `cmd:"" help:"Toggle a task done/undone."`
		List  cli.TaskListCmd  `cmd:"" help:"List today's or this week's tasks."`
		Rm    cli.TaskRmCmd    `cmd:"" help:"Remove a task."`
		Carry cli.TaskCarryCmd `cmd:"" help:"Carry last week's unfinished tasks into this week."`
	} `cmd:"" help:"Manage tasks."`
	Meal struct {
		Set   cli.MealSetCmd   `cmd:"" help:"Set breakfast, lunch, or dinner."`
		Clear cli.MealClearCmd `cmd:"" help:"Clear a meal."`
		Snack struct {
			Add cli.MealSnackAddCmd `cmd:"" help:"Log a snack."`
			Rm  cli.MealSnackRmCmd  `cmd:"" help:"Remove a snack."`
		} `cmd:"" help:"Manage snacks."`
		Drink struct {
			Add cli.MealDrinkAddCmd `cmd:"" help:"Log a drink."`
			Rm  cli.MealDrinkRmCmd  `cmd:"" help:"Remove a drink."`
		} `cmd:"" help:"Manage drinks."`
		Show cli.MealShowCmd `cmd:"" help:"Show a day's meals."`
	} `cmd:"" help:"Plan and log meals."`
	Note    cli.NoteCmd `cmd:"" help:"Set or show today's note."`
	Reflect struct {
		Add  cli.ReflectAddCmd  `cmd:"" help:"Add a reflection on this week's theme."`
		List cli.ReflectListCmd `cmd:"" help:"List this week's reflections."`
		Rm   cli.ReflectRmCmd   `cmd:"" help:"Remove a reflection."`
	} `cmd:"" help:"Reflect on the weekly theme."`
	Theme   cli.ThemeCmd   `cmd:"" help:"Set or show this week's theme."`
	Affirm  cli.AffirmCmd  `cmd:"" help:"Show today's affirmation."`
	Morning cli.MorningCmd `cmd:"" help:"Walk the guided morning flow."`
	Reset   cli.ResetCmd   `cmd:"" help:"Walk the weekly reset ritual."`
	History cli.HistoryCmd `cmd:"" help:"Look back at a past week and day."`
	Backup  struct {
		Create  cli.BackupCreateCmd  `cmd:"" help:"Create a backup of the local data file."`
		List    cli.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore a backup."`
	} `cmd:"" help:"Manage backups (local storage only)."`
	Migrate cli.MigrateCmd `cmd:"" help:"Copy the local document into remote MongoDB storage."`
	Doctor  cli.DoctorCmd  `cmd:"" help:"Run diagnostics."`
	Debug   cli.DebugCmd   `cmd:"" hidden:"" help:"Debugging helpers."`
}

func main() {
	kctx := kong.Parse(&CLI,
		kong.Name("gentle-planner"),
		kong.Description("A soft-edged daily planner: tasks, meals, themes, and weekly resets"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.3.0"},
	)

	cfg := config.New()
	logger := newLogger(cfg.Debug)

	location := CLI.Data
	if location == "" {
		if cfg.MongoURI != "" {
			location = cfg.MongoURI
		} else {
			location = filepath.Join(cfg.Home, "planner.json")
		}
	}

	// The connect timeout covers backend construction only. The
	// subscription gets a process-lifetime context: it has to keep
	// delivering snapshots for as long as a command runs, including the
	// wizards where the user can sit in a form indefinitely.
	connectCtx, connectCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer connectCancel()

	backend, isRemote, err := openBackend(connectCtx, location, cfg.User)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	runCtx, stopWatching := context.WithCancel(context.Background())

	st := store.New(backend, logger)
	if err := st.Open(runCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	cleanup.Register(&cleanup.Job{Name: "stop watching", F: func() error {
		stopWatching()
		return nil
	}})
	cleanup.Register(&cleanup.Job{Name: "flush store", F: st.Close})
	cleanup.Register(&cleanup.Job{Name: "close backend", F: backend.Close})

	localPath := location
	if isRemote {
		localPath = ""
	}
	appCtx := &cli.Context{
		Store:     st,
		Backend:   backend,
		Log:       logger,
		Now:       time.Now,
		LocalPath: localPath,
		IsRemote:  isRemote,
	}

	runErr := kctx.Run(appCtx)

	cleanup.CleanUp(logger)
	_ = logger.Sync()

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

// openBackend picks storage from the location's shape: a MongoDB URI, a
// SQLite file, or a plain JSON file.
func openBackend(ctx context.Context, location, user string) (storage.Backend, bool, error) {
	switch {
	case strings.HasPrefix(location, "mongodb://"), strings.HasPrefix(location, "mongodb+srv://"):
		b, err := storage.NewMongoBackend(ctx, location, user)
		return b, true, err
	case strings.HasSuffix(location, ".db"):
		b, err := storage.NewSQLiteBackend(location, user)
		return b, false, err
	default:
		return storage.NewFileBackend(location), false, nil
	}
}

func newLogger(debug bool) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if debug {
		cfg = zap.NewDevelopmentConfig()
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
