package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// FileName is the ledger file kept in each output directory.
const FileName = ".promptkit-ledger.json"

// Ledger records every prompt file written to an output directory.
type Ledger struct {
	Entries []Entry `json:"entries"`
}

// Entry describes one written prompt.
type Entry struct {
	RunID      string `json:"runId"`
	TemplateID string `json:"templateId"`
	Path       string `json:"path"`
	OutputHash string `json:"outputHash"`
	Project    string `json:"project,omitempty"`
	Timestamp  string `json:"timestamp"`
}

// NewRunID returns an identifier for one CLI invocation.
func NewRunID() string {
	return uuid.NewString()
}

// HashOutput computes a SHA-256 hash of the prompt text.
func HashOutput(content string) string {
	h := sha256.New()
	h.Write([]byte(content))
	return hex.EncodeToString(h.Sum(nil))
}

// Load reads the ledger from dir. A missing ledger is empty, not an error.
func Load(dir string) (*Ledger, error) {
	data, err := os.ReadFile(filepath.Join(dir, FileName))
	if err != nil {
		if os.IsNotExist(err) {
			return &Ledger{}, nil
		}
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	var l Ledger
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("parsing ledger: %w", err)
	}
	return &l, nil
}

// Save writes the ledger to dir.
func Save(dir string, l *Ledger) error {
	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling ledger: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating ledger directory: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, FileName), data, 0o644)
}

// Append adds an entry, stamping it with the current time when unset.
func (l *Ledger) Append(e Entry) {
	if e.Timestamp == "" {
		e.Timestamp = time.Now().UTC().Format(time.RFC3339)
	}
	l.Entries = append(l.Entries, e)
}

// Record loads the ledger in dir, appends e and saves it.
func Record(dir string, e Entry) error {
	l, err := Load(dir)
	if err != nil {
		return err
	}
	l.Append(e)
	return Save(dir, l)
}

// Recent returns up to n entries, newest first. n <= 0 returns all.
// Entries are only ever appended, so insertion order is chronological.
func (l *Ledger) Recent(n int) []Entry {
	out := make([]Entry, 0, len(l.Entries))
	for i := len(l.Entries) - 1; i >= 0; i-- {
		out = append(out, l.Entries[i])
	}
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
