package template

import (
	"context"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
)

// Service materializes new pages from template blueprints.
type Service struct {
	Templates *Repository
	Pages     *page.Service
	Sections  *section.Repository
}

// NewService creates a new template service.
func NewService(templates *Repository, pages *page.Service, sections *section.Repository) *Service {
	return &Service{Templates: templates, Pages: pages, Sections: sections}
}

// InstantiateInput carries the caller's page fields and setting overrides.
type InstantiateInput struct {
	TenantID int             `json:"tenant_id"`
	Slug     string          `json:"slug"`
	Title    string          `json:"title"`
	Settings models.Settings `json:"settings"`
}

// Instantiate creates a page from a template: template default settings
// merged with the caller's overrides (overrides win), then one section per
// blueprint in blueprint order. If a section creation fails, the page and
// the sections created so far are left in place and the caller gets a
// PartialTemplateError to inspect: retry the missing sections or delete
// the page.
func (s *Service) Instantiate(ctx context.Context, templateID int, in InstantiateInput, actorID int) (*models.Page, error) {
	tpl, err := s.Templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}

	p, err := s.Pages.Create(ctx, page.CreateInput{
		TenantID:   in.TenantID,
		Slug:       in.Slug,
		Title:      in.Title,
		Settings:   tpl.Settings.Merge(in.Settings),
		TemplateID: &tpl.ID,
	}, actorID)
	if err != nil {
		return nil, err
	}

	for i, blueprint := range tpl.Sections {
		sec := &models.Section{
			PageID:   p.ID,
			Type:     blueprint.Type,
			Content:  blueprint.Content,
			Settings: blueprint.Settings,
		}
		if err := s.Sections.Create(ctx, sec, actorID); err != nil {
			return nil, &models.PartialTemplateError{PageID: p.ID, Created: i, Err: err}
		}
	}

	return p, nil
}
