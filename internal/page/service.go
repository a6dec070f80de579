package page

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
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/version"
)

// Service orchestrates the page lifecycle: every mutation bumps the version
// by exactly one, snapshots the resulting page+sections state, and appends
// to the revision log, all inside one transaction.
type Service struct {
	DB       *sql.DB
	Versions *version.Store
}

// NewService creates a new page service.
func NewService(db *sql.DB) *Service {
	return &Service{DB: db, Versions: version.NewStore(db)}
}

// CreateInput carries the fields required to create a page.
type CreateInput struct {
	TenantID   int             `json:"tenant_id"`
	Slug       string          `json:"slug"`
	Title      string          `json:"title"`
	Settings   models.Settings `json:"settings"`
	TemplateID *int            `json:"template_id"`
}

// Patch is a partial page update. Nil fields are left untouched.
type Patch struct {
	Slug     *string         `json:"slug,omitempty"`
	Title    *string         `json:"title,omitempty"`
	Settings models.Settings `json:"settings,omitempty"`
}

const pageColumns = "id, tenant_id, slug, title, status, current_version, settings, template_id, published_at, unpublished_at, created_at, updated_at"

func scanPage(scan func(dest ...any) error) (models.Page, error) {
	var (
		p        models.Page
		settings string
	)
	err := scan(&p.ID, &p.TenantID, &p.Slug, &p.Title, &p.Status, &p.CurrentVersion, &settings, &p.TemplateID, &p.PublishedAt, &p.UnpublishedAt, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return models.Page{}, err
	}
	if err := json.Unmarshal([]byte(settings), &p.Settings); err != nil {
		return models.Page{}, fmt.Errorf("error decoding page %d settings: %w", p.ID, err)
	}
	return p, nil
}

func load(ctx context.Context, db database.DBTX, id int) (*models.Page, error) {
	p, err := scanPage(db.QueryRowContext(ctx, "SELECT "+pageColumns+" FROM pages WHERE id = ?", id).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading page %d: %w", id, err)
	}
	return &p, nil
}

// Get returns one page by id.
func (s *Service) Get(ctx context.Context, id int) (*models.Page, error) {
	return load(ctx, s.DB, id)
}

// GetBySlug returns a tenant's page by slug.
func (s *Service) GetBySlug(ctx context.Context, tenantID int, slug string) (*models.Page, error) {
	p, err := scanPage(s.DB.QueryRowContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE tenant_id = ? AND slug = ?", tenantID, slug).Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("page %q: %w", slug, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading page %q: %w", slug, err)
	}
	return &p, nil
}

// ListByTenant returns a tenant's pages ordered by slug.
func (s *Service) ListByTenant(ctx context.Context, tenantID int) ([]models.Page, error) {
	rows, err := s.DB.QueryContext(ctx,
		"SELECT "+pageColumns+" FROM pages WHERE tenant_id = ? ORDER BY slug ASC", tenantID)
	if err != nil {
		return nil, fmt.Errorf("error listing pages: %w", err)
	}
	defer rows.Close()

	var pages []models.Page
	for rows.Next() {
		p, err := scanPage(rows.Scan)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

// Create validates the input, creates the page at version 1 in draft
// status, writes the first snapshot, and appends a create revision. The
// page row, the snapshot, and the revision land together or not at all.
func (s *Service) Create(ctx context.Context, in CreateInput, actorID int) (*models.Page, error) {
	if in.TenantID <= 0 {
		return nil, fmt.Errorf("%w: tenant id is required", models.ErrValidation)
	}
	if in.Slug == "" {
		return nil, fmt.Errorf("%w: slug is required", models.ErrValidation)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	err = tx.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM pages WHERE tenant_id = ? AND slug = ?", in.TenantID, in.Slug).Scan(&taken)
	if err != nil {
		return nil, err
	}
	if taken > 0 {
		return nil, fmt.Errorf("slug %q in tenant %d: %w", in.Slug, in.TenantID, models.ErrDuplicateSlug)
	}

	now := time.Now().UTC()
	p := &models.Page{
		TenantID:   in.TenantID,
		Slug:       in.Slug,
		Title:      in.Title,
		Status:     models.StatusDraft,
		Settings:   in.Settings,
		TemplateID: in.TemplateID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if p.Settings == nil {
		p.Settings = models.Settings{}
	}

	settings, err := p.Settings.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}

	// current_version starts at 0 so the first snapshot claims version 1
	// through the same compare-and-swap as every later one.
	res, err := tx.ExecContext(ctx,
		"INSERT INTO pages (tenant_id, slug, title, status, current_version, settings, template_id, created_at, updated_at) VALUES (?, ?, ?, ?, 0, ?, ?, ?, ?)",
		p.TenantID, p.Slug, p.Title, p.Status, string(settings), p.TemplateID, now, now)
	if err != nil {
		return nil, fmt.Errorf("error creating page: %w", err)
	}
	id, _ := res.LastInsertId()
	p.ID = int(id)

	if _, err := version.Snapshot(ctx, tx, p.ID, models.SummaryInitial, models.PageSnapshot{Page: *p}); err != nil {
		return nil, err
	}
	p.CurrentVersion = 1

	payload, _ := json.Marshal(in)
	rev := &models.Revision{PageID: p.ID, Action: models.ActionCreate, Payload: payload, ActorID: actorID}
	if err := revision.Append(ctx, tx, rev); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing page creation: %w", err)
	}
	return p, nil
}

// Update applies a patch, bumps the version by exactly one, snapshots the
// resulting page+sections state, and appends an update revision carrying
// the patch. A racing writer on the same starting version gets
// ErrConcurrentModification.
func (s *Service) Update(ctx context.Context, id int, patch Patch, actorID int) (*models.Page, error) {
	payload, _ := json.Marshal(patch)
	return s.mutate(ctx, id, models.SummaryUpdate, actorID, payload, func(p *models.Page) error {
		if patch.Slug != nil {
			p.Slug = *patch.Slug
		}
		if patch.Title != nil {
			p.Title = *patch.Title
		}
		if patch.Settings != nil {
			p.Settings = patch.Settings
		}
		if p.Slug == "" || p.Title == "" {
			return fmt.Errorf("%w: slug and title are required", models.ErrValidation)
		}
		return nil
	}, nil, nil)
}

// Publish moves the page to published and stamps the publish timestamp.
// Publishing an already-published page is idempotent: it re-stamps and
// still bumps the version. The update revision is followed by an explicit
// publish revision.
func (s *Service) Publish(ctx context.Context, id int, actorID int) (*models.Page, error) {
	return s.transition(ctx, id, models.StatusPublished, actorID)
}

// Unpublish mirrors Publish, moving the page back to draft.
func (s *Service) Unpublish(ctx context.Context, id int, actorID int) (*models.Page, error) {
	return s.transition(ctx, id, models.StatusDraft, actorID)
}

func (s *Service) transition(ctx context.Context, id int, target models.Status, actorID int) (*models.Page, error) {
	var (
		action  models.Action
		summary string
	)
	if target == models.StatusPublished {
		action, summary = models.ActionPublish, models.SummaryPublish
	} else {
		action, summary = models.ActionUnpublish, models.SummaryUnpublish
	}

	now := time.Now().UTC()
	payload, _ := json.Marshal(map[string]any{"status": target})
	return s.mutate(ctx, id, summary, actorID, payload, func(p *models.Page) error {
		p.Status = target
		if target == models.StatusPublished {
			p.PublishedAt = &now
		} else {
			p.UnpublishedAt = &now
		}
		return nil
	}, nil, func(ctx context.Context, tx *sql.Tx) error {
		rev := &models.Revision{PageID: id, Action: action, Payload: payload, ActorID: actorID}
		return revision.Append(ctx, tx, rev)
	})
}

// mutate is the shared write path: load, apply, persist, run the
// pre-snapshot step, list sections, snapshot under the version CAS, append
// the update revision, then run the post step. The pre hook runs before
// sections are listed so the snapshot captures what it writes.
func (s *Service) mutate(ctx context.Context, id int, summary string, actorID int, payload json.RawMessage, apply func(*models.Page) error, pre, post func(context.Context, *sql.Tx) error) (*models.Page, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := load(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	oldSlug := p.Slug

	if err := apply(p); err != nil {
		return nil, err
	}

	if p.Slug != oldSlug {
		var taken int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(1) FROM pages WHERE tenant_id = ? AND slug = ? AND id != ?", p.TenantID, p.Slug, id).Scan(&taken)
		if err != nil {
			return nil, err
		}
		if taken > 0 {
			return nil, fmt.Errorf("slug %q in tenant %d: %w", p.Slug, p.TenantID, models.ErrDuplicateSlug)
		}
	}

	p.UpdatedAt = time.Now().UTC()
	settings, err := p.Settings.Encode()
	if err != nil {
		return nil, fmt.Errorf("error encoding settings: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE pages SET slug = ?, title = ?, status = ?, settings = ?, published_at = ?, unpublished_at = ?, updated_at = ? WHERE id = ?",
		p.Slug, p.Title, p.Status, string(settings), p.PublishedAt, p.UnpublishedAt, p.UpdatedAt, id)
	if err != nil {
		return nil, fmt.Errorf("error updating page: %w", err)
	}

	if pre != nil {
		if err := pre(ctx, tx); err != nil {
			return nil, err
		}
	}

	sections, err := section.ListByPage(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	v, err := version.Snapshot(ctx, tx, id, summary, models.PageSnapshot{Page: *p, Sections: sections})
	if err != nil {
		return nil, err
	}
	p.CurrentVersion = v.Number

	rev := &models.Revision{PageID: id, Action: models.ActionUpdate, Payload: payload, ActorID: actorID}
	if err := revision.Append(ctx, tx, rev); err != nil {
		return nil, err
	}

	if post != nil {
		if err := post(ctx, tx); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("error committing page update: %w", err)
	}
	return p, nil
}

// Delete removes the page and everything attached to it: sections,
// versions, and revisions. Deleting a page is cleanup, not history.
func (s *Service) Delete(ctx context.Context, id int, actorID int) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := load(ctx, tx, id); err != nil {
		return err
	}

	if err := section.DeleteByPage(ctx, tx, id); err != nil {
		return err
	}
	if err := version.DeleteByPage(ctx, tx, id); err != nil {
		return err
	}
	if err := revision.DeleteByPage(ctx, tx, id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pages WHERE id = ?", id); err != nil {
		return fmt.Errorf("error deleting page: %w", err)
	}

	return tx.Commit()
}

// Restore applies an old version's snapshot as the page's current content,
// producing a new version on top; history is never rewound in place.
// Restoring version 3 of a page at version 7 yields version 8 carrying
// version 3's content. The restored version becomes the current restore
// point. Publish state and slug are not regressed: only title, settings,
// and sections come back from the snapshot.
func (s *Service) Restore(ctx context.Context, versionID int, actorID int) (*models.Page, error) {
	v, err := s.Versions.Get(ctx, versionID)
	if err != nil {
		return nil, err
	}

	payload, _ := json.Marshal(map[string]any{"restored_version": v.Number})
	p, err := s.mutate(ctx, v.PageID, fmt.Sprintf(models.SummaryRestoreFmt, v.Number), actorID, payload, func(p *models.Page) error {
		p.Title = v.Snapshot.Page.Title
		p.Settings = v.Snapshot.Page.Settings
		return nil
	}, func(ctx context.Context, tx *sql.Tx) error {
		if err := section.DeleteByPage(ctx, tx, v.PageID); err != nil {
			return err
		}
		for i := range v.Snapshot.Sections {
			sec := v.Snapshot.Sections[i]
			sec.PageID = v.PageID
			if err := section.Insert(ctx, tx, &sec); err != nil {
				return err
			}
		}
		return nil
	}, func(ctx context.Context, tx *sql.Tx) error {
		return version.MarkRestorePoint(ctx, tx, v.PageID, versionID)
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
