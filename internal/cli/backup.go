package cli

import (
	"fmt"
	"path/filepath"

	"github.com/AmyTroutman/gentle-planner/internal/backup"
)

func (c *Context) backupManager() (*backup.Manager, error) {
	if c.IsRemote {
		return nil, fmt.Errorf("backups only apply to local storage; the remote backend is its own copy")
	}
	return backup.NewManager(c.LocalPath), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	// Make sure pending writes reach the file before copying it.
	ctx.Store.Flush()

	path, err := mgr.Create()
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}
	fmt.Printf("Backup created: %s\n", filepath.Base(path))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("list backups: %w", err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		fmt.Printf("Backups are stored in: %s\n", mgr.BackupDir())
		return nil
	}

	fmt.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		fmt.Printf("  %s  %s  (%.1f KB)\n",
			b.Timestamp.Format("2006-01-02 15:04:05"),
			filepath.Base(b.Path),
			float64(b.Size)/1024.0)
	}
	return nil
}

type BackupRestoreCmd struct {
	Name string `arg:"" help:"Backup file name (from 'backup list')."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	ctx.Store.Flush()

	if err := mgr.Restore(filepath.Join(mgr.BackupDir(), c.Name)); err != nil {
		return err
	}
	fmt.Println("Restored. Restart any running gentle-planner sessions.")
	return nil
}
