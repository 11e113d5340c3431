package history

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Entry records one finished play-through.
type Entry struct {
	QuizCode   string    `json:"quizCode"`
	QuizTitle  string    `json:"quizTitle"`
	Nickname   string    `json:"nickname"`
	Score      int       `json:"score"`
	Placement  int       `json:"placement"` // 1-based; 0 when unknown
	FinishedAt time.Time `json:"finishedAt"`
}

type historyFile struct {
	Entries []Entry `json:"entries"`
}

// Store is a JSON-file record of finished games. An absent file reads
// as empty; writes replace the file atomically.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore builds a Store writing to path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// DefaultPath places the history file under the user config dir.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "popquiz-history.json"
	}
	return filepath.Join(dir, "popquiz-client", "history.json")
}

// Append adds an entry to the history.
func (s *Store) Append(entry Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return err
	}
	file.Entries = append(file.Entries, entry)
	return s.write(file)
}

// List returns all recorded entries, newest first.
func (s *Store) List() ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.read()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(file.Entries))
	for i := len(file.Entries) - 1; i >= 0; i-- {
		entries = append(entries, file.Entries[i])
	}
	return entries, nil
}

func (s *Store) read() (historyFile, error) {
	file := historyFile{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("read history: %w", err)
	}
	if err := json.Unmarshal(data, &file); err != nil {
		return historyFile{}, fmt.Errorf("parse history: %w", err)
	}
	return file, nil
}

func (s *Store) write(file historyFile) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create history dir: %w", err)
		}
	}
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}
