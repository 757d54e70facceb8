package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/AmyTroutman/gentle-planner/internal/models"
)

// FileBackend stores the planner document as a single JSON file. It is the
// local-storage analogue: synchronous reads and writes, with a filesystem
// watch standing in for remote snapshots so edits from another process (or
// a restored backup) are picked up.
//
// Not safe for two processes writing the same path at once; the doctor
// command checks for that.
type FileBackend struct {
	path string
}

func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

func (b *FileBackend) Location() string { return b.path }

func (b *FileBackend) Close() error { return nil }

func (b *FileBackend) read() (*models.PlannerDoc, error) {
	data, err := os.ReadFile(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read storage: %w", err)
	}
	doc := &models.PlannerDoc{}
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, fmt.Errorf("failed to parse storage: %w", err)
	}
	doc.EnsureMaps()
	return doc, nil
}

func (b *FileBackend) write(doc models.PlannerDoc) error {
	if err := os.MkdirAll(filepath.Dir(b.path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}
	if err := os.WriteFile(b.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	return nil
}

func (b *FileBackend) Set(_ context.Context, doc models.PlannerDoc) error {
	return b.write(doc)
}

func (b *FileBackend) Update(_ context.Context, fields map[string]any) error {
	doc, err := b.read()
	if err != nil {
		return err
	}
	if doc == nil {
		return ErrDocMissing
	}
	if err := applyFields(doc, fields); err != nil {
		return err
	}
	return b.write(*doc)
}

func (b *FileBackend) Subscribe(ctx context.Context, fn SnapshotFunc) (func(), error) {
	doc, err := b.read()
	if err != nil {
		return nil, err
	}
	fn(doc)

	// Watch the directory rather than the file so creation of a missing
	// file is observed too.
	dir := filepath.Dir(b.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to start storage watcher: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	done := make(chan struct{})
	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Name != b.path {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
					continue
				}
				// A half-written or mangled file is skipped; the next
				// complete write delivers a snapshot.
				if doc, err := b.read(); err == nil {
					fn(doc)
				}
			case _, ok := <-watcher.Errors:
				if !ok {
					return
				}
			case <-done:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	var stopped bool
	return func() {
		if stopped {
			return
		}
		stopped = true
		close(done)
		watcher.Close()
	}, nil
}
