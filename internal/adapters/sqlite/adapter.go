// Package sqlite provides a SQLite-backed implementation of the jump
// repository port, used for local development.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3" // Import the driver anonymously

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

// Adapter implements the jump repository port for SQLite
type Adapter struct {
	db *sql.DB
}

var _ ports.JumpRepository = (*Adapter)(nil)

// NewAdapter creates a connection and runs the schema migration
func NewAdapter(storagePath string) (*Adapter, error) {
	db, err := sql.Open("sqlite3", storagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping sqlite db: %w", err)
	}

	adapter := &Adapter{db: db}

	if err := adapter.migrate(); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return adapter, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) ListJumps(ctx context.Context, ownerID, trackID string) ([]domain.Jump, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, user_id, song_id, "trigger", target, description, created_at
		FROM user_song_jumps
		WHERE user_id = ? AND song_id = ?
		ORDER BY created_at ASC, id ASC
	`, ownerID, trackID)
	if err != nil {
		return nil, fmt.Errorf("failed to list jumps: %w", err)
	}
	defer rows.Close()

	jumps := []domain.Jump{}
	for rows.Next() {
		var jump domain.Jump
		var description sql.NullString
		if err := rows.Scan(
			&jump.ID,
			&jump.OwnerID,
			&jump.TrackID,
			&jump.TriggerMs,
			&jump.TargetMs,
			&description,
			&jump.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan jump: %w", err)
		}
		if description.Valid {
			jump.Description = description.String
		}
		jumps = append(jumps, jump)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate jumps: %w", err)
	}

	return jumps, nil
}

func (a *Adapter) AddJump(ctx context.Context, jump domain.Jump) (domain.Jump, error) {
	if err := jump.Validate(); err != nil {
		return domain.Jump{}, err
	}

	jump.ID = uuid.NewString()
	if _, err := a.db.ExecContext(ctx, `
		INSERT INTO user_song_jumps (id, user_id, song_id, "trigger", target, description)
		VALUES (?, ?, ?, ?, ?, ?)
	`, jump.ID, jump.OwnerID, jump.TrackID, jump.TriggerMs, jump.TargetMs, nullableString(jump.Description)); err != nil {
		return domain.Jump{}, fmt.Errorf("failed to insert jump: %w", err)
	}

	// Read back the row so the caller sees the server-side creation time.
	row := a.db.QueryRowContext(ctx, `
		SELECT created_at FROM user_song_jumps WHERE id = ?
	`, jump.ID)
	if err := row.Scan(&jump.CreatedAt); err != nil {
		return domain.Jump{}, fmt.Errorf("failed to load created jump: %w", err)
	}

	return jump, nil
}

func (a *Adapter) UpdateJump(ctx context.Context, ownerID, id string, triggerMs, targetMs int, description string) error {
	jump := domain.Jump{TriggerMs: triggerMs, TargetMs: targetMs}
	if err := jump.Validate(); err != nil {
		return err
	}

	res, err := a.db.ExecContext(ctx, `
		UPDATE user_song_jumps
		SET "trigger" = ?, target = ?, description = ?
		WHERE id = ? AND user_id = ?
	`, triggerMs, targetMs, nullableString(description), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update jump: %w", err)
	}

	return requireAffected(res)
}

func (a *Adapter) DeleteJump(ctx context.Context, ownerID, id string) error {
	res, err := a.db.ExecContext(ctx, `
		DELETE FROM user_song_jumps
		WHERE id = ? AND user_id = ?
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete jump: %w", err)
	}

	return requireAffected(res)
}

// requireAffected turns a zero-row mutation into domain.ErrNotFound, so a
// non-owned id can never look like a success.
func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullableString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (a *Adapter) migrate() error {
	query := `
	CREATE TABLE IF NOT EXISTS user_song_jumps (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		song_id TEXT NOT NULL,
		"trigger" INTEGER NOT NULL,
		target INTEGER NOT NULL,
		description TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_jumps_owner_track
		ON user_song_jumps (user_id, song_id);
	`
	if _, err := a.db.Exec(query); err != nil {
		return err
	}

	return nil
}
