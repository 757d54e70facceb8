package cli

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-ps"

	"github.com/AmyTroutman/gentle-planner/internal/storage"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := checkStorageReachable(ctx); err != nil {
		fmt.Printf("❌ Storage reachable: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Storage reachable: OK\n")
	}

	if err := checkDuplicateTaskIDs(ctx); err != nil {
		fmt.Printf("❌ Task ids unique: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Task ids unique: OK\n")
	}

	if !ctx.IsRemote {
		if err := checkBackupsPresent(ctx); err != nil {
			fmt.Printf("⚠ Backups present: WARNING\n   %v\n", err)
		} else {
			fmt.Printf("✓ Backups present: OK\n")
		}
	}

	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock sanity: FAIL\n   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock sanity: OK\n")
	}

	if err := checkNoOtherProcess(); err != nil {
		fmt.Printf("⚠ Single process: WARNING\n   %v\n", err)
	} else {
		fmt.Printf("✓ Single process: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStorageReachable(ctx *Context) error {
	waitCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ctx.Store.WaitLoaded(waitCtx); err != nil {
		return fmt.Errorf("first snapshot never arrived: %w", err)
	}

	if sqlite, ok := ctx.Backend.(*storage.SQLiteBackend); ok {
		var result int
		if err := sqlite.DB().QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("query database: %w", err)
		}
	}
	return nil
}

func checkDuplicateTaskIDs(ctx *Context) error {
	seen := map[string]bool{}
	check := func(id string) error {
		if seen[id] {
			return fmt.Errorf("duplicate task id: %s", id)
		}
		seen[id] = true
		return nil
	}
	for _, week := range ctx.Store.Weeks() {
		for _, t := range week.WeeklyTasks {
			if err := check(t.ID); err != nil {
				return err
			}
		}
	}
	for _, tasks := range ctx.Store.TasksByDay() {
		for _, t := range tasks {
			if err := check(t.ID); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkBackupsPresent(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'gentle-planner backup create'")
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

// checkNoOtherProcess flags a second running gentle-planner, which could
// race this one on the local data file.
func checkNoOtherProcess() error {
	procs, err := ps.Processes()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}
	self := os.Getpid()
	for _, p := range procs {
		if p.Pid() == self {
			continue
		}
		if strings.HasPrefix(p.Executable(), "gentle-planner") {
			return fmt.Errorf("another gentle-planner process is running (pid %d)", p.Pid())
		}
	}
	return nil
}
