package finboard

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestStoreLoadMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "state.json"))
	book, err := store.Load(MustParseTime("2025-01-01T09:00:00"))
	if err != nil {
		t.Fatal(err)
	}
	if !book.CashBalance().IsZero() {
		t.Errorf("fresh book has cash %s", book.CashBalance())
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path)
	start := MustParseTime("2025-01-01T09:00:00")

	book := NewBook(start)
	book.Record(start, "Opening", USD(100), "")
	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}

	got, err := NewStore(path).Load(start)
	if err != nil {
		t.Fatal(err)
	}
	if !got.CashBalance().Equal(USD(100)) {
		t.Errorf("cash = %s, want $100.00", got.CashBalance())
	}
}

func TestStoreSaveKeepsBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	store := NewStore(path)
	start := MustParseTime("2025-01-01T09:00:00")

	book := NewBook(start)
	book.Record(start, "Opening", USD(100), "")
	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}
	book.Record(start, "More", USD(50), "")
	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}

	// the backup still holds the first save
	backup, err := NewStore(path + ".bak").Load(start)
	if err != nil {
		t.Fatal(err)
	}
	if !backup.CashBalance().Equal(USD(100)) {
		t.Errorf("backup cash = %s, want $100.00", backup.CashBalance())
	}
}

func TestStoreCorruptionRecoversFromBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	start := MustParseTime("2025-01-01T09:00:00")

	// a good save followed by a second one, then the main file is trashed
	store := NewStore(path)
	book := NewBook(start)
	book.Record(start, "Opening", USD(100), "")
	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}
	book.Record(start, "More", USD(50), "")
	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("{ trashed"), 0644); err != nil {
		t.Fatal(err)
	}

	recovered := NewStore(path)
	got, err := recovered.Load(start)
	if err == nil {
		t.Fatal("corrupt load reported no error")
	}
	if got == nil {
		t.Fatal("corrupt load returned no book")
	}
	// recovered from the backup of the second save
	if !got.CashBalance().Equal(USD(100)) {
		t.Errorf("recovered cash = %s, want the backup's $100.00", got.CashBalance())
	}
	if !recovered.Corrupted() {
		t.Error("store does not report corruption")
	}

	// the corrupt bytes were preserved
	matches, _ := filepath.Glob(path + ".corrupt.*.bak")
	if len(matches) != 1 {
		t.Fatalf("found %d preserved corrupt files, want 1", len(matches))
	}
	preserved, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(preserved) != "{ trashed" {
		t.Errorf("preserved bytes = %q", preserved)
	}
}

func TestStoreCorruptionWithoutBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte("not even json"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	book, err := store.Load(MustParseTime("2025-01-01T09:00:00"))
	if !errors.Is(err, ErrCorruptState) {
		t.Errorf("err = %v, want ErrCorruptState", err)
	}
	if book == nil || !book.CashBalance().IsZero() {
		t.Error("expected a fresh empty book")
	}
}

func TestStoreRefusesSilentOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "state.json")
	if err := os.WriteFile(path, []byte("precious corrupt bytes"), 0644); err != nil {
		t.Fatal(err)
	}

	store := NewStore(path)
	start := MustParseTime("2025-01-01T09:00:00")
	book, _ := store.Load(start)
	book.Record(start, "Opening", USD(5), "")

	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}

	// the corrupt original is untouched, the save went to a recovery file
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "precious corrupt bytes" {
		t.Errorf("corrupt original was overwritten: %q", content)
	}
	matches, _ := filepath.Glob(path + ".recovered.*.json")
	if len(matches) != 1 {
		t.Fatalf("found %d recovery files, want 1", len(matches))
	}
	if !strings.Contains(readFile(t, matches[0]), `"Opening"`) {
		t.Error("recovery file does not hold the new state")
	}

	// after confirmation the original may be replaced
	store.ConfirmOverwrite()
	if err := store.Save(book); err != nil {
		t.Fatal(err)
	}
	if got := readFile(t, path); !strings.Contains(got, `"Opening"`) {
		t.Errorf("confirmed save did not replace the original: %q", got)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(content)
}
