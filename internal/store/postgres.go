package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KalebGordon/Rivoney/internal/resume"
)

const uniqueViolation = "23505"

// saveAttempts bounds retries when concurrent writers collide on a version.
const saveAttempts = 3

// Postgres is the pgx-backed Store implementation.
type Postgres struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &Postgres{pool: pool}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.pool != nil {
		p.pool.Close()
	}
}

// Migrate creates the resumes table if it does not exist. The unique index on
// (user_id, version) is what makes concurrent max+1 assignment safe.
func (p *Postgres) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resumes (
			id BIGSERIAL PRIMARY KEY,
			user_id TEXT NOT NULL,
			version INTEGER NOT NULL,
			json_resume JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE (user_id, version)
		)`)
	if err != nil {
		return fmt.Errorf("failed to create resumes table: %w", err)
	}
	return nil
}

// Save appends a new version for the user. The version is computed inside the
// insert itself, so two concurrent saves either interleave cleanly or one hits
// the unique index and retries with a fresh max.
func (p *Postgres) Save(ctx context.Context, userID string, doc *resume.Document) (SaveResult, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to marshal resume: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < saveAttempts; attempt++ {
		var result SaveResult
		err := p.pool.QueryRow(ctx, `
			INSERT INTO resumes (user_id, version, json_resume)
			SELECT $1, COALESCE(MAX(version), 0) + 1, $2 FROM resumes WHERE user_id = $1
			RETURNING version, created_at`,
			userID, payload,
		).Scan(&result.Version, &result.CreatedAt)
		if err == nil {
			return result, nil
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			lastErr = err
			continue
		}
		return SaveResult{}, fmt.Errorf("failed to save resume: %w", err)
	}
	return SaveResult{}, fmt.Errorf("failed to save resume after %d attempts: %w", saveAttempts, lastErr)
}

// Latest returns the highest-version resume for the user.
func (p *Postgres) Latest(ctx context.Context, userID string) (*resume.Document, error) {
	var payload []byte
	err := p.pool.QueryRow(ctx, `
		SELECT json_resume FROM resumes
		WHERE user_id = $1
		ORDER BY version DESC
		LIMIT 1`,
		userID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &ErrNoResume{UserID: userID}
		}
		return nil, fmt.Errorf("failed to load resume: %w", err)
	}

	doc, err := resume.Parse(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal stored resume: %w", err)
	}
	return doc, nil
}
