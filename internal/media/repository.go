package media

import (
	"database/sql"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// Repository provides access to the media metadata storage. The files
// themselves live on disk; image blocks reference the served URL.
type Repository struct {
	DB *sql.DB
}

// NewRepository creates a new media repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new media record.
func (r *Repository) Create(m *models.Media) error {
	res, err := r.DB.Exec(
		"INSERT INTO media (filename, unique_filename, mime_type, size) VALUES (?, ?, ?, ?)",
		m.Filename, m.UniqueFilename, m.MimeType, m.Size)
	if err != nil {
		return err
	}
	id, _ := res.LastInsertId()
	m.ID = int(id)
	return nil
}
