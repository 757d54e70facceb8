package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writePlannerFile(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "planner.json")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("write data file: %v", err)
	}
	return path
}

func TestCreateCopiesDataFile(t *testing.T) {
	dir := t.TempDir()
	path := writePlannerFile(t, dir, `{"weeks":{}}`)
	m := NewManager(path)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	raw, err := os.ReadFile(backupPath)
	if err != nil {
		t.Fatalf("read backup: %v", err)
	}
	if string(raw) != `{"weeks":{}}` {
		t.Fatalf("backup content = %q", raw)
	}
	if filepath.Dir(backupPath) != m.BackupDir() {
		t.Fatalf("backup written outside backup dir: %s", backupPath)
	}
}

func TestCreateWithoutDataFile(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "planner.json"))
	if _, err := m.Create(); err == nil {
		t.Fatal("expected error for missing data file")
	}
}

func TestListSortsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	path := writePlannerFile(t, dir, `{}`)
	m := NewManager(path)
	if err := os.MkdirAll(m.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	stamps := []string{"20240601-080000", "20240603-080000", "20240602-080000"}
	for _, s := range stamps {
		name := BackupFilePrefix + s + ".json"
		if err := os.WriteFile(filepath.Join(m.BackupDir(), name), []byte(`{}`), 0600); err != nil {
			t.Fatal(err)
		}
	}
	// Something that should be ignored.
	if err := os.WriteFile(filepath.Join(m.BackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != 3 {
		t.Fatalf("got %d backups, want 3", len(backups))
	}
	for i := 1; i < len(backups); i++ {
		if backups[i].Timestamp.After(backups[i-1].Timestamp) {
			t.Fatal("backups not sorted newest first")
		}
	}
	if backups[0].Timestamp != time.Date(2024, 6, 3, 8, 0, 0, 0, time.UTC) {
		t.Fatalf("newest = %v", backups[0].Timestamp)
	}
}

func TestCreateRotatesOldBackups(t *testing.T) {
	dir := t.TempDir()
	path := writePlannerFile(t, dir, `{}`)
	m := NewManager(path)
	if err := os.MkdirAll(m.BackupDir(), 0700); err != nil {
		t.Fatal(err)
	}

	// Seed more than the retention limit of older backups.
	for i := 0; i < MaxBackups+3; i++ {
		name := fmt.Sprintf("%s2024%02d%02d-080000.json", BackupFilePrefix, i/28+1, i%28+1)
		if err := os.WriteFile(filepath.Join(m.BackupDir(), name), []byte(`{}`), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := m.Create(); err != nil {
		t.Fatalf("Create: %v", err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(backups) != MaxBackups {
		t.Fatalf("got %d backups after rotation, want %d", len(backups), MaxBackups)
	}
}

func TestRestoreReplacesDataFile(t *testing.T) {
	dir := t.TempDir()
	path := writePlannerFile(t, dir, `{"notesByDay":{"2024-06-03":"original"}}`)
	m := NewManager(path)

	backupPath, err := m.Create()
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := os.WriteFile(path, []byte(`{"notesByDay":{"2024-06-03":"changed"}}`), 0600); err != nil {
		t.Fatal(err)
	}

	if err := m.Restore(backupPath); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"notesByDay":{"2024-06-03":"original"}}` {
		t.Fatalf("restored content = %q", raw)
	}
}

func TestRestoreRejectsInvalidBackup(t *testing.T) {
	dir := t.TempDir()
	path := writePlannerFile(t, dir, `{}`)
	m := NewManager(path)

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := m.Restore(bad); err == nil {
		t.Fatal("expected restore of invalid backup to fail")
	}
}
