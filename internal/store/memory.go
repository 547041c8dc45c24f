package store

import (
	"context"
	"sync"
	"time"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

type memoryRow struct {
	version   int
	createdAt time.Time
	doc       *resume.Document
}

// Memory is an in-process Store used by tests and local development. Documents
// are deep-copied on the way in and out so callers cannot alias stored state.
type Memory struct {
	mu   sync.Mutex
	rows map[string][]memoryRow
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{rows: make(map[string][]memoryRow)}
}

// Save appends a new version for the user.
func (m *Memory) Save(_ context.Context, userID string, doc *resume.Document) (SaveResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	version := 1
	if rows := m.rows[userID]; len(rows) > 0 {
		version = rows[len(rows)-1].version + 1
	}
	row := memoryRow{
		version:   version,
		createdAt: time.Now().UTC(),
		doc:       doc.Clone(),
	}
	m.rows[userID] = append(m.rows[userID], row)
	return SaveResult{Version: version, CreatedAt: row.createdAt}, nil
}

// Latest returns the highest-version resume for the user.
func (m *Memory) Latest(_ context.Context, userID string) (*resume.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	rows := m.rows[userID]
	if len(rows) == 0 {
		return nil, &ErrNoResume{UserID: userID}
	}
	return rows[len(rows)-1].doc.Clone(), nil
}
