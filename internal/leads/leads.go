// Package leads persists collected contact requests into an append-only
// CSV log. The file doubles as the handover format for the sales side,
// so the column set is fixed and rows are only ever appended.
package leads

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/m3rciful/leadbot/core/logger"
)

// Header is the fixed CSV column order.
var Header = []string{"timestamp", "name", "email", "need", "from", "username", "note"}

// Record is a single captured lead.
type Record struct {
	Timestamp time.Time
	Name      string
	Email     string
	Need      string
	From      string
	Username  string
	Note      string
}

// Store appends lead records to a CSV file.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store for the given CSV path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the file with a header row when it does not
// exist yet. Safe to call repeatedly.
func (s *Store) EnsureInitialized() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("leads: stat %s: %w", s.path, err)
	}

	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("leads: create dir %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if os.IsExist(err) {
			return nil
		}
		return fmt.Errorf("leads: create %s: %w", s.path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("leads: write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("leads: flush header: %w", err)
	}

	logger.Leads.Info("store initialized",
		slog.String("event", "store.init"),
		slog.String("payload", s.path),
	)
	return nil
}

// Append writes one record at the end of the log.
func (s *Store) Append(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("leads: open %s: %w", s.path, err)
	}
	defer f.Close()

	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	w := csv.NewWriter(f)
	row := []string{
		ts.Format(time.RFC3339),
		sanitizeField(rec.Name),
		sanitizeField(rec.Email),
		sanitizeField(rec.Need),
		sanitizeField(rec.From),
		sanitizeField(rec.Username),
		sanitizeField(rec.Note),
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("leads: write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("leads: flush row: %w", err)
	}
	return nil
}

// sanitizeField keeps rows single-line. The csv writer already quotes
// separators, but embedded newlines would break naive downstream readers.
func sanitizeField(s string) string {
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
