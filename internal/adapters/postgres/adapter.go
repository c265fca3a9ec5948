// Package postgres implements the jump repository port against the
// production Postgres schema, where columns keep their original camelCase
// names and need quoting.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // Import the driver anonymously

	"github.com/olifog/musejump/backend/internal/core/domain"
	"github.com/olifog/musejump/backend/internal/core/ports"
)

// Adapter implements the jump repository port for Postgres
type Adapter struct {
	db *sql.DB
}

var _ ports.JumpRepository = (*Adapter)(nil)

// NewAdapter connects to the database and verifies the connection. The
// user_song_jumps table is managed by external migrations, so no schema is
// created here.
func NewAdapter(databaseURL string) (*Adapter, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres db: %w", err)
	}

	return &Adapter{db: db}, nil
}

// Close ensures the DB connection is closed gracefully
func (a *Adapter) Close() error {
	return a.db.Close()
}

func (a *Adapter) ListJumps(ctx context.Context, ownerID, trackID string) ([]domain.Jump, error) {
	rows, err := a.db.QueryContext(ctx, `
		SELECT id, "userId", "songId", "trigger", target, description, "createdAt"
		FROM user_song_jumps
		WHERE "userId" = $1 AND "songId" = $2
		ORDER BY "createdAt" ASC, id ASC
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
	row := a.db.QueryRowContext(ctx, `
		INSERT INTO user_song_jumps (id, "userId", "songId", "trigger", target, description)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING "createdAt"
	`, jump.ID, jump.OwnerID, jump.TrackID, jump.TriggerMs, jump.TargetMs, nullableString(jump.Description))
	if err := row.Scan(&jump.CreatedAt); err != nil {
		return domain.Jump{}, fmt.Errorf("failed to insert jump: %w", err)
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
		SET "trigger" = $1, target = $2, description = $3
		WHERE id = $4 AND "userId" = $5
	`, triggerMs, targetMs, nullableString(description), id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to update jump: %w", err)
	}

	return requireAffected(res)
}

func (a *Adapter) DeleteJump(ctx context.Context, ownerID, id string) error {
	res, err := a.db.ExecContext(ctx, `
		DELETE FROM user_song_jumps
		WHERE id = $1 AND "userId" = $2
	`, id, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete jump: %w", err)
	}

	return requireAffected(res)
}

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
