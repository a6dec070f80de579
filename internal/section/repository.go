package section

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/database"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/revision"
)

// Repository owns the ordered collection of sections belonging to a page.
type Repository struct {
	DB *sql.DB
}

// NewRepository creates a new section repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// Patch is a partial section update. Nil fields are left untouched.
type Patch struct {
	Content  models.Blocks   `json:"content,omitempty"`
	Settings models.Settings `json:"settings,omitempty"`
	Active   *bool           `json:"active,omitempty"`
}

const sectionColumns = "id, page_id, type, position, content, settings, active, version, created_at, updated_at"

func scanSection(scan func(dest ...any) error) (models.Section, error) {
	var (
		sec      models.Section
		content  string
		settings string
	)
	err := scan(&sec.ID, &sec.PageID, &sec.Type, &sec.Position, &content, &settings, &sec.Active, &sec.Version, &sec.CreatedAt, &sec.UpdatedAt)
	if err != nil {
		return models.Section{}, err
	}
	if err := json.Unmarshal([]byte(content), &sec.Content); err != nil {
		return models.Section{}, fmt.Errorf("error decoding section %d content: %w", sec.ID, err)
	}
	if err := json.Unmarshal([]byte(settings), &sec.Settings); err != nil {
		return models.Section{}, fmt.Errorf("error decoding section %d settings: %w", sec.ID, err)
	}
	return sec, nil
}

// ListByPage returns a page's sections ordered by position ascending.
func (r *Repository) ListByPage(ctx context.Context, pageID int) ([]models.Section, error) {
	return ListByPage(ctx, r.DB, pageID)
}

// ListByPage is the transaction-aware variant used by the page service when
// it snapshots the resulting state of an update.
func ListByPage(ctx context.Context, db database.DBTX, pageID int) ([]models.Section, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT "+sectionColumns+" FROM sections WHERE page_id = ? ORDER BY position ASC", pageID)
	if err != nil {
		return nil, fmt.Errorf("error listing sections: %w", err)
	}
	defer rows.Close()

	var sections []models.Section
	for rows.Next() {
		sec, err := scanSection(rows.Scan)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

// Get returns one section by id.
func (r *Repository) Get(ctx context.Context, id int) (*models.Section, error) {
	sec, err := scanSection(r.DB.QueryRowContext(ctx,
		"SELECT "+sectionColumns+" FROM sections WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("section %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading section %d: %w", id, err)
	}
	return &sec, nil
}

// Create appends a section at position max+1 (0 when the page has none)
// and records a create revision scoped to the section.
func (r *Repository) Create(ctx context.Context, sec *models.Section, actorID int) error {
	if !models.KnownSectionType(sec.Type) {
		return fmt.Errorf("%w: unknown section type %q", models.ErrValidation, sec.Type)
	}
	for i, b := range sec.Content {
		if err := b.Validate(); err != nil {
			return fmt.Errorf("block %d: %w", i, err)
		}
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT COUNT(1) FROM pages WHERE id = ?", sec.PageID).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return fmt.Errorf("page %d: %w", sec.PageID, models.ErrNotFound)
	}

	err = tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM sections WHERE page_id = ?", sec.PageID).Scan(&sec.Position)
	if err != nil {
		return fmt.Errorf("error computing section position: %w", err)
	}

	content, err := sec.Content.Encode()
	if err != nil {
		return fmt.Errorf("error encoding content: %w", err)
	}
	settings, err := sec.Settings.Encode()
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	now := time.Now().UTC()
	sec.Active = true
	sec.Version = 1
	sec.CreatedAt = now
	sec.UpdatedAt = now

	res, err := tx.ExecContext(ctx,
		"INSERT INTO sections (page_id, type, position, content, settings, active, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?, 1, 1, ?, ?)",
		sec.PageID, sec.Type, sec.Position, string(content), string(settings), now, now)
	if err != nil {
		return fmt.Errorf("error creating section: %w", err)
	}
	id, _ := res.LastInsertId()
	sec.ID = int(id)

	payload, _ := json.Marshal(map[string]any{"type": sec.Type, "position": sec.Position})
	rev := &models.Revision{PageID: sec.PageID, SectionID: &sec.ID, Action: models.ActionCreate, Payload: payload, ActorID: actorID}
	if err := revision.Append(ctx, tx, rev); err != nil {
		return err
	}

	return tx.Commit()
}

// Update applies a patch, bumps the section's own version counter, and
// records an update revision.
func (r *Repository) Update(ctx context.Context, id int, patch Patch, actorID int) (*models.Section, error) {
	sec, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.Content != nil {
		for i, b := range patch.Content {
			if err := b.Validate(); err != nil {
				return nil, fmt.Errorf("block %d: %w", i, err)
			}
		}
		sec.Content = patch.Content
	}
	if patch.Settings != nil {
		sec.Settings = patch.Settings
	}
	if patch.Active != nil {
		sec.Active = *patch.Active
	}
	sec.Version++
	sec.UpdatedAt = time.Now().UTC()

	content, err := sec.Content.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding content: %w", err)
	}
	settings, err := sec.Settings.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"UPDATE sections SET content = ?, settings = ?, active = ?, version = ?, updated_at = ? WHERE id = ?",
		string(content), string(settings), sec.Active, sec.Version, sec.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("error updating section: %w", err)
	}

	payload, _ := json.Marshal(patch)
	rev := &models.Revision{PageID: sec.PageID, SectionID: &id, Action: models.ActionUpdate, Payload: payload, ActorID: actorID}
	if err := revision.Append(ctx, tx, rev); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sec, nil
}

// Delete removes a section and records a delete revision. Remaining
// positions are not compacted: deletion and reordering are different
// audited actions, compaction is an explicit Reorder call.
func (r *Repository) Delete(ctx context.Context, id int, actorID int) error {
	sec, err := r.Get(ctx, id)
	if err != nil {
		return err
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM sections WHERE id = ?", id); err != nil {
		return fmt.Errorf("error deleting section: %w", err)
	}

	payload, _ := json.Marshal(map[string]any{"type": sec.Type, "position": sec.Position})
	rev := &models.Revision{PageID: sec.PageID, SectionID: &id, Action: models.ActionDelete, Payload: payload, ActorID: actorID}
	if err := revision.Append(ctx, tx, rev); err != nil {
		return err
	}

	return tx.Commit()
}

// Reorder reassigns positions 0..N-1 following orderedIDs. The id list must
// be an exact permutation of the page's current sections: no omissions, no
// foreign ids, no duplicates. A single page-level reorder revision records
// the full new order.
func (r *Repository) Reorder(ctx context.Context, pageID int, orderedIDs []int, actorID int) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx, "SELECT id FROM sections WHERE page_id = ?", pageID)
	if err != nil {
		return fmt.Errorf("error loading section ids: %w", err)
	}
	current := make(map[int]bool)
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		current[id] = true
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if len(orderedIDs) != len(current) {
		return fmt.Errorf("page %d: got %d ids, have %d sections: %w", pageID, len(orderedIDs), len(current), models.ErrInvalidReorder)
	}
	seen := make(map[int]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] {
			return fmt.Errorf("page %d: section %d does not belong to page: %w", pageID, id, models.ErrInvalidReorder)
		}
		if seen[id] {
			return fmt.Errorf("page %d: section %d listed twice: %w", pageID, id, models.ErrInvalidReorder)
		}
		seen[id] = true
	}

	now := time.Now().UTC()
	for pos, id := range orderedIDs {
		if _, err := tx.ExecContext(ctx,
			"UPDATE sections SET position = ?, updated_at = ? WHERE id = ?", pos, now, id); err != nil {
			return fmt.Errorf("error repositioning section %d: %w", id, err)
		}
	}

	payload, _ := json.Marshal(map[string]any{"order": orderedIDs})
	rev := &models.Revision{PageID: pageID, Action: models.ActionReorder, Payload: payload, ActorID: actorID}
	if err := revision.Append(ctx, tx, rev); err != nil {
		return err
	}

	return tx.Commit()
}

// Insert writes a section row as-is, position and version included. The
// page service uses it to rebuild a page's sections from a snapshot.
func Insert(ctx context.Context, db database.DBTX, sec *models.Section) error {
	content, err := sec.Content.Encode()
	if err != nil {
		return fmt.Errorf("error encoding content: %w", err)
	}
	settings, err := sec.Settings.Encode()
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	res, err := db.ExecContext(ctx,
		"INSERT INTO sections (page_id, type, position, content, settings, active, version, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		sec.PageID, sec.Type, sec.Position, string(content), string(settings), sec.Active, sec.Version, sec.CreatedAt, sec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error inserting section: %w", err)
	}
	id, _ := res.LastInsertId()
	sec.ID = int(id)
	return nil
}

// DeleteByPage removes all sections of a deleted page.
func DeleteByPage(ctx context.Context, db database.DBTX, pageID int) error {
	_, err := db.ExecContext(ctx, "DELETE FROM sections WHERE page_id = ?", pageID)
	if err != nil {
		return fmt.Errorf("error deleting sections: %w", err)
	}
	return nil
}
