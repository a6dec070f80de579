package version

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/database"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Store maintains the ordered sequence of immutable snapshots per page.
type Store struct {
	DB *sql.DB
}

// NewStore creates a new version store.
func NewStore(db *sql.DB) *Store {
	return &Store{DB: db}
}

// Snapshot persists a new version of a page. The next version number is
// max(existing)+1, and the write claims it by compare-and-swapping
// pages.current_version from number-1 to number. A racing writer that
// already claimed the number makes the swap miss, and the caller gets
// ErrConcurrentModification: re-read the page and redo the whole
// operation, never just the write.
func Snapshot(ctx context.Context, db database.DBTX, pageID int, summary string, snap models.PageSnapshot) (*models.Version, error) {
	var next int
	err := db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(number), 0) + 1 FROM versions WHERE page_id = ?", pageID).Scan(&next)
	if err != nil {
		return nil, fmt.Errorf("error computing next version number: %w", err)
	}

	now := time.Now().UTC()
	res, err := db.ExecContext(ctx,
		"UPDATE pages SET current_version = ?, updated_at = ? WHERE id = ? AND current_version = ?",
		next, now, pageID, next-1)
	if err != nil {
		return nil, fmt.Errorf("error claiming version %d: %w", next, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("page %d version %d: %w", pageID, next, models.ErrConcurrentModification)
	}

	snap.Page.CurrentVersion = next
	raw, err := snap.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding snapshot: %w", err)
	}

	res, err = db.ExecContext(ctx,
		"INSERT INTO versions (page_id, number, snapshot, summary, created_at) VALUES (?, ?, ?, ?, ?)",
		pageID, next, string(raw), summary, now)
	if err != nil {
		return nil, fmt.Errorf("error writing version %d: %w", next, err)
	}
	id, _ := res.LastInsertId()

	return &models.Version{
		ID:        int(id),
		PageID:    pageID,
		Number:    next,
		Snapshot:  snap,
		Summary:   summary,
		CreatedAt: now,
	}, nil
}

// Get returns one version by id, snapshot included.
func (s *Store) Get(ctx context.Context, id int) (*models.Version, error) {
	var v models.Version
	var raw string
	err := s.DB.QueryRowContext(ctx,
		"SELECT id, page_id, number, snapshot, summary, is_restore_point, created_at FROM versions WHERE id = ?", id).
		Scan(&v.ID, &v.PageID, &v.Number, &raw, &v.Summary, &v.IsRestorePoint, &v.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("version %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading version %d: %w", id, err)
	}

	v.Snapshot, err = models.DecodeSnapshot([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("error decoding snapshot of version %d: %w", id, err)
	}
	return &v, nil
}

// ListByPage returns a page's versions, newest first.
func (s *Store) ListByPage(ctx context.Context, pageID int) ([]models.Version, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT id, page_id, number, snapshot, summary, is_restore_point, created_at FROM versions WHERE page_id = ? ORDER BY number DESC",
		pageID)
	if err != nil {
		return nil, fmt.Errorf("error listing versions: %w", err)
	}
	defer rows.Close()

	var versions []models.Version
	for rows.Next() {
		var v models.Version
		var raw string
		if err := rows.Scan(&v.ID, &v.PageID, &v.Number, &raw, &v.Summary, &v.IsRestorePoint, &v.CreatedAt); err != nil {
			return nil, err
		}
		v.Snapshot, err = models.DecodeSnapshot([]byte(raw))
		if err != nil {
			return nil, fmt.Errorf("error decoding snapshot of version %d: %w", v.ID, err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// MarkRestorePoint flags one version as the most recently restored one and
// clears the flag from its siblings.
func MarkRestorePoint(ctx context.Context, db database.DBTX, pageID, versionID int) error {
	if _, err := db.ExecContext(ctx, "UPDATE versions SET is_restore_point = 0 WHERE page_id = ?", pageID); err != nil {
		return fmt.Errorf("error clearing restore points: %w", err)
	}
	if _, err := db.ExecContext(ctx, "UPDATE versions SET is_restore_point = 1 WHERE id = ?", versionID); err != nil {
		return fmt.Errorf("error flagging restore point: %w", err)
	}
	return nil
}

// DeleteByPage removes all version rows of a deleted page.
func DeleteByPage(ctx context.Context, db database.DBTX, pageID int) error {
	_, err := db.ExecContext(ctx, "DELETE FROM versions WHERE page_id = ?", pageID)
	if err != nil {
		return fmt.Errorf("error deleting versions: %w", err)
	}
	return nil
}
