package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jvirtane/barfeud/internal/errors"
	"github.com/jvirtane/barfeud/internal/session"
	"github.com/jvirtane/barfeud/internal/sqlite"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a join code.
var ErrSnapshotNotFound = errors.NewSentinel("snapshot not found")

// SnapshotRepository replicates session snapshots into the game_sessions
// table so viewers can reconnect after a server restart.
type SnapshotRepository struct {
	db     *sqlite.Database
	logger *slog.Logger
}

func NewSnapshotRepository(db *sqlite.Database, logger *slog.Logger) *SnapshotRepository {
	return &SnapshotRepository{
		db:     db,
		logger: logger.With("source", "SnapshotRepository"),
	}
}

var _ session.Store = (*SnapshotRepository)(nil)

// Save upserts the latest snapshot for its join code.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot session.Snapshot) error {
	payload, err := json.Marshal(snapshot)
	if err != nil {
		return errors.Wrap(err, "marshal snapshot", slog.String("code", snapshot.Code))
	}
	stmt := `INSERT INTO game_sessions (code, snapshot, updated_at) VALUES (?, ?, ?)
             ON CONFLICT (code) DO UPDATE SET snapshot = excluded.snapshot, updated_at = excluded.updated_at`
	if _, err = r.db.ReadWrite.ExecContext(ctx, stmt,
		snapshot.Code, string(payload), snapshot.UpdatedAt.UTC().Format(time.RFC3339Nano),
	); err != nil {
		return errors.Wrap(err, "upsert snapshot", slog.String("code", snapshot.Code))
	}
	return nil
}

// Load returns the latest saved snapshot for a join code.
func (r *SnapshotRepository) Load(ctx context.Context, code string) (session.Snapshot, error) {
	var payload string
	stmt := `SELECT snapshot FROM game_sessions WHERE code = ?`
	err := r.db.ReadOnly.GetContext(ctx, &payload, stmt, code)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Snapshot{}, ErrSnapshotNotFound
	}
	if err != nil {
		return session.Snapshot{}, errors.Wrap(err, "get snapshot", slog.String("code", code))
	}
	var snapshot session.Snapshot
	if err = json.Unmarshal([]byte(payload), &snapshot); err != nil {
		return session.Snapshot{}, errors.Wrap(err, "unmarshal snapshot", slog.String("code", code))
	}
	return snapshot, nil
}

// Delete forgets the snapshot for a finished session.
func (r *SnapshotRepository) Delete(ctx context.Context, code string) error {
	stmt := `DELETE FROM game_sessions WHERE code = ?`
	if _, err := r.db.ReadWrite.ExecContext(ctx, stmt, code); err != nil {
		return errors.Wrap(err, "delete snapshot", slog.String("code", code))
	}
	return nil
}

// DeleteStale removes snapshots that have not been updated since the cutoff.
func (r *SnapshotRepository) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	stmt := `DELETE FROM game_sessions WHERE updated_at < ?`
	result, err := r.db.ReadWrite.ExecContext(ctx, stmt, cutoff.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, errors.Wrap(err, "delete stale snapshots")
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "stale snapshot count")
	}
	return n, nil
}

// StartCleanup deletes snapshots older than a day, once per hour, until the
// context is cancelled. Run it in its own goroutine.
func (r *SnapshotRepository) StartCleanup(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Hour):
		}
		n, err := r.DeleteStale(ctx, time.Now().Add(-24*time.Hour))
		if err != nil {
			r.logger.LogAttrs(ctx, slog.LevelError, "failed to clean up stale snapshots", errors.SlogError(err))
		} else if n > 0 {
			r.logger.LogAttrs(ctx, slog.LevelInfo, "cleaned up stale snapshots", slog.Int64("count", n))
		}
	}
}
