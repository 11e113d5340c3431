package history

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAppendAndListNewestFirst(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "history.json"))

	first := Entry{QuizCode: "AB12", QuizTitle: "Geography", Nickname: "alice", Score: 22, Placement: 1, FinishedAt: time.Now()}
	second := Entry{QuizCode: "CD34", QuizTitle: "History", Nickname: "alice", Score: 10, Placement: 3, FinishedAt: time.Now()}

	if err := store.Append(first); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if err := store.Append(second); err != nil {
		t.Fatalf("append failed: %v", err)
	}

	entries, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].QuizCode != "CD34" || entries[1].QuizCode != "AB12" {
		t.Errorf("expected newest first, got %v then %v", entries[0].QuizCode, entries[1].QuizCode)
	}
}

func TestMissingFileReadsEmpty(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.json"))
	entries, err := store.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history, got %d entries", len(entries))
	}
}

func TestAppendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "history.json")
	store := NewStore(path)
	if err := store.Append(Entry{QuizCode: "AB12"}); err != nil {
		t.Fatalf("append failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("history file missing: %v", err)
	}
}

func TestCorruptFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	store := NewStore(path)
	if _, err := store.List(); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
