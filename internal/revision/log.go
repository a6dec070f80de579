package revision

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/database"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Log provides append and read access to the audit log.
type Log struct {
	DB *sql.DB
}

// NewLog creates a new revision log.
func NewLog(db *sql.DB) *Log {
	return &Log{DB: db}
}

// Append records one mutating action. It runs against db, which may be an
// enclosing transaction; the engine appends a revision as the last step of
// every state-changing operation.
func Append(ctx context.Context, db database.DBTX, rev *models.Revision) error {
	if rev.Payload == nil {
		rev.Payload = json.RawMessage("{}")
	}
	res, err := db.ExecContext(ctx,
		"INSERT INTO revisions (page_id, section_id, action, payload, actor_id, created_at) VALUES (?, ?, ?, ?, ?, ?)",
		rev.PageID, rev.SectionID, rev.Action, string(rev.Payload), rev.ActorID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("error appending revision: %w", err)
	}
	id, _ := res.LastInsertId()
	rev.ID = int(id)
	return nil
}

// Append records one mutating action outside any transaction.
func (l *Log) Append(ctx context.Context, rev *models.Revision) error {
	return Append(ctx, l.DB, rev)
}

// ListByPage returns all revisions recorded for a page, oldest first.
func (l *Log) ListByPage(ctx context.Context, pageID int) ([]models.Revision, error) {
	rows, err := l.DB.QueryContext(ctx,
		"SELECT id, page_id, section_id, action, payload, actor_id, created_at FROM revisions WHERE page_id = ? ORDER BY id ASC",
		pageID)
	if err != nil {
		return nil, fmt.Errorf("error listing revisions: %w", err)
	}
	defer rows.Close()

	var revs []models.Revision
	for rows.Next() {
		var rev models.Revision
		var payload string
		if err := rows.Scan(&rev.ID, &rev.PageID, &rev.SectionID, &rev.Action, &payload, &rev.ActorID, &rev.CreatedAt); err != nil {
			return nil, err
		}
		rev.Payload = json.RawMessage(payload)
		revs = append(revs, rev)
	}
	return revs, rows.Err()
}

// DeleteByPage removes a deleted page's revision rows. Full page deletion
// is cleanup, not history; section-scoped revisions of a live page are
// never touched.
func DeleteByPage(ctx context.Context, db database.DBTX, pageID int) error {
	_, err := db.ExecContext(ctx, "DELETE FROM revisions WHERE page_id = ?", pageID)
	if err != nil {
		return fmt.Errorf("error deleting revisions: %w", err)
	}
	return nil
}
