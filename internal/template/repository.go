package template

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Repository reads template blueprints. Templates are authored out of band;
// Create exists for provisioning and tests, the engine itself only reads.
type Repository struct {
	DB *sql.DB
}

// NewRepository creates a new template repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// Get returns a template with its section blueprints in position order.
func (r *Repository) Get(ctx context.Context, id int) (*models.Template, error) {
	var (
		t        models.Template
		settings string
	)
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, slug, name, settings FROM templates WHERE id = ?", id).
		Scan(&t.ID, &t.Slug, &t.Name, &settings)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("template %d: %w", id, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading template %d: %w", id, err)
	}
	if err := json.Unmarshal([]byte(settings), &t.Settings); err != nil {
		return nil, fmt.Errorf("error decoding template %d settings: %w", id, err)
	}

	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, template_id, type, content, settings, position FROM template_sections WHERE template_id = ? ORDER BY position ASC", id)
	if err != nil {
		return nil, fmt.Errorf("error loading template sections: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ts          models.TemplateSection
			rawContent  string
			rawSettings string
		)
		if err := rows.Scan(&ts.ID, &ts.TemplateID, &ts.Type, &rawContent, &rawSettings, &ts.Position); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(rawContent), &ts.Content); err != nil {
			return nil, fmt.Errorf("error decoding blueprint %d content: %w", ts.ID, err)
		}
		if err := json.Unmarshal([]byte(rawSettings), &ts.Settings); err != nil {
			return nil, fmt.Errorf("error decoding blueprint %d settings: %w", ts.ID, err)
		}
		t.Sections = append(t.Sections, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// List returns all templates without their section blueprints.
func (r *Repository) List(ctx context.Context) ([]models.Template, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT id, slug, name, settings FROM templates ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	defer rows.Close()

	var templates []models.Template
	for rows.Next() {
		var (
			t        models.Template
			settings string
		)
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &settings); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(settings), &t.Settings); err != nil {
			return nil, fmt.Errorf("error decoding template %d settings: %w", t.ID, err)
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

// Create persists a template and its blueprints in one transaction.
func (r *Repository) Create(ctx context.Context, t *models.Template) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	settings, err := t.Settings.Encode()
	if err != nil {
		return fmt.Errorf("error encoding settings: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO templates (slug, name, settings) VALUES (?, ?, ?)", t.Slug, t.Name, string(settings))
	if err != nil {
		return fmt.Errorf("error creating template: %w", err)
	}
	id, _ := res.LastInsertId()
	t.ID = int(id)

	for i := range t.Sections {
		ts := &t.Sections[i]
		ts.TemplateID = t.ID
		content, err := ts.Content.Encode()
		if err != nil {
			return fmt.Errorf("error encoding blueprint content: %w", err)
		}
		tsSettings, err := ts.Settings.Encode()
		if err != nil {
			return fmt.Errorf("error encoding blueprint settings: %w", err)
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO template_sections (template_id, type, content, settings, position) VALUES (?, ?, ?, ?, ?)",
			t.ID, ts.Type, string(content), string(tsSettings), ts.Position)
		if err != nil {
			return fmt.Errorf("error creating template section: %w", err)
		}
		tsID, _ := res.LastInsertId()
		ts.ID = int(tsID)
	}

	return tx.Commit()
}
