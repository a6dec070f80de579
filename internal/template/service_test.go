package template_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/template"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/testutil"
)

func newFixture(t *testing.T) (*sql.DB, *template.Service, int, int) {
	t.Helper()
	db := testutil.NewDB(t)
	tenantID := testutil.SeedTenant(t, db, "anrielly", "Anrielly Gomes Cerimonial")
	userID := testutil.SeedUser(t, db, "anrielly")

	svc := template.NewService(template.NewRepository(db), page.NewService(db), section.NewRepository(db))
	return db, svc, tenantID, userID
}

func landingTemplate() *models.Template {
	return &models.Template{
		Slug:     "landing",
		Name:     "Página de destino",
		Settings: models.Settings{"theme": "classico", "layout": "wide"},
		Sections: []models.TemplateSection{
			{
				Type:     models.SectionHero,
				Content:  models.Blocks{{Type: models.BlockHeading, Level: 1, Text: "Seu grande dia"}},
				Position: 0,
			},
			{
				Type:     models.SectionText,
				Content:  models.Blocks{{Type: models.BlockText, Markup: "Cerimônias conduzidas com carinho."}},
				Position: 1,
			},
			{
				Type:     models.SectionContact,
				Position: 2,
			},
		},
	}
}

func TestInstantiate(t *testing.T) {
	db, svc, tenantID, userID := newFixture(t)
	ctx := context.Background()

	tpl := landingTemplate()
	require.NoError(t, svc.Templates.Create(ctx, tpl))

	p, err := svc.Instantiate(ctx, tpl.ID, template.InstantiateInput{
		TenantID: tenantID,
		Slug:     "casamento-na-praia",
		Title:    "Casamento na Praia",
	}, userID)
	require.NoError(t, err)
	require.NotNil(t, p.TemplateID)
	require.Equal(t, tpl.ID, *p.TemplateID)
	require.Equal(t, 1, p.CurrentVersion)

	sections, err := section.NewRepository(db).ListByPage(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	for i, blueprint := range tpl.Sections {
		require.Equal(t, blueprint.Type, sections[i].Type)
		require.Equal(t, i, sections[i].Position)
	}
	require.Equal(t, "Seu grande dia", sections[0].Content[0].Text)
}

func TestInstantiateMergesSettings(t *testing.T) {
	_, svc, tenantID, userID := newFixture(t)
	ctx := context.Background()

	tpl := landingTemplate()
	require.NoError(t, svc.Templates.Create(ctx, tpl))

	p, err := svc.Instantiate(ctx, tpl.ID, template.InstantiateInput{
		TenantID: tenantID,
		Slug:     "bodas",
		Title:    "Bodas",
		Settings: models.Settings{"theme": "moderno"},
	}, userID)
	require.NoError(t, err)

	// Caller overrides win, untouched template defaults survive.
	require.Equal(t, "moderno", p.Settings["theme"])
	require.Equal(t, "wide", p.Settings["layout"])
}

func TestInstantiateTemplateNotFound(t *testing.T) {
	_, svc, tenantID, userID := newFixture(t)

	_, err := svc.Instantiate(context.Background(), 999, template.InstantiateInput{
		TenantID: tenantID,
		Slug:     "x",
		Title:    "X",
	}, userID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestInstantiatePartialFailure(t *testing.T) {
	db, svc, tenantID, userID := newFixture(t)
	ctx := context.Background()

	tpl := landingTemplate()
	tpl.Sections[1].Type = "carousel" // not a known section type
	require.NoError(t, svc.Templates.Create(ctx, tpl))

	_, err := svc.Instantiate(ctx, tpl.ID, template.InstantiateInput{
		TenantID: tenantID,
		Slug:     "quebrada",
		Title:    "Quebrada",
	}, userID)
	require.ErrorIs(t, err, models.ErrPartialTemplate)

	var partial *models.PartialTemplateError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, 1, partial.Created)
	require.ErrorIs(t, partial.Err, models.ErrValidation)

	// The page and the sections created before the failure stay in place.
	p, err := page.NewService(db).Get(ctx, partial.PageID)
	require.NoError(t, err)
	require.Equal(t, "quebrada", p.Slug)

	sections, err := section.NewRepository(db).ListByPage(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, sections, 1)
	require.Equal(t, models.SectionHero, sections[0].Type)
}
