package tenant

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Repository provides access to the tenant storage.
type Repository struct {
	DB *sql.DB
}

// NewRepository creates a new tenant repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// FindBySlug finds a tenant by its slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Tenant, error) {
	var t models.Tenant
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, slug, name FROM tenants WHERE slug = ? AND archived_at IS NULL", slug).
		Scan(&t.ID, &t.Slug, &t.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tenant %q: %w", slug, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("error loading tenant %q: %w", slug, err)
	}
	return &t, nil
}

// List lists all non-archived tenants.
func (r *Repository) List(ctx context.Context) ([]models.Tenant, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, slug, name, archived_at FROM tenants WHERE archived_at IS NULL ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("error listing tenants: %w", err)
	}
	defer rows.Close()

	var tenants []models.Tenant
	for rows.Next() {
		var t models.Tenant
		if err := rows.Scan(&t.ID, &t.Slug, &t.Name, &t.ArchivedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, t)
	}
	return tenants, rows.Err()
}

// Create creates a new tenant.
func (r *Repository) Create(ctx context.Context, slug, name string) (*models.Tenant, error) {
	if slug == "" || name == "" {
		return nil, fmt.Errorf("%w: tenant slug and name are required", models.ErrValidation)
	}

	res, err := r.DB.ExecContext(ctx, "INSERT INTO tenants (slug, name) VALUES (?, ?)", slug, name)
	if err != nil {
		return nil, fmt.Errorf("error creating tenant: %w", err)
	}
	id, _ := res.LastInsertId()
	return &models.Tenant{ID: int(id), Slug: slug, Name: name}, nil
}
