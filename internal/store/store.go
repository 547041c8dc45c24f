// Package store persists immutable, versioned snapshots of a user's resume.
// History is append-only: versions start at 1 and only ever grow.
package store

import (
	"context"
	"time"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

// SaveResult describes the row created by a Save call.
type SaveResult struct {
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the versioned document store. Save appends a new snapshot with
// version max(existing)+1; Latest returns the highest-version snapshot or
// *ErrNoResume when the user has none. Implementations must assign versions
// monotonically even under concurrent writers.
type Store interface {
	Save(ctx context.Context, userID string, doc *resume.Document) (SaveResult, error)
	Latest(ctx context.Context, userID string) (*resume.Document, error)
}
