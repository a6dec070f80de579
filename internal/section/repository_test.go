package section_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/revision"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/testutil"
)

func newFixture(t *testing.T) (*sql.DB, *section.Repository, int, int) {
	t.Helper()
	db := testutil.NewDB(t)
	tenantID := testutil.SeedTenant(t, db, "anrielly", "Anrielly Gomes Cerimonial")
	userID := testutil.SeedUser(t, db, "anrielly")

	p, err := page.NewService(db).Create(context.Background(), page.CreateInput{
		TenantID: tenantID,
		Slug:     "home",
		Title:    "Início",
	}, userID)
	require.NoError(t, err)

	return db, section.NewRepository(db), p.ID, userID
}

func textSection(pageID int, markup string) *models.Section {
	return &models.Section{
		PageID:  pageID,
		Type:    models.SectionText,
		Content: models.Blocks{{Type: models.BlockText, Markup: markup}},
	}
}

func TestCreateAssignsPositions(t *testing.T) {
	_, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	for i, markup := range []string{"primeiro", "segundo", "terceiro"} {
		sec := textSection(pageID, markup)
		require.NoError(t, repo.Create(ctx, sec, userID))
		require.Equal(t, i, sec.Position)
		require.Equal(t, 1, sec.Version)
		require.True(t, sec.Active)
	}

	sections, err := repo.ListByPage(ctx, pageID)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	for i, sec := range sections {
		require.Equal(t, i, sec.Position)
	}
}

func TestCreateValidation(t *testing.T) {
	_, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	err := repo.Create(ctx, &models.Section{PageID: pageID, Type: "carousel"}, userID)
	require.ErrorIs(t, err, models.ErrValidation)

	err = repo.Create(ctx, &models.Section{
		PageID:  pageID,
		Type:    models.SectionText,
		Content: models.Blocks{{Type: models.BlockHeading, Level: 0, Text: "sem nível"}},
	}, userID)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestCreatePageMissing(t *testing.T) {
	_, repo, _, userID := newFixture(t)

	err := repo.Create(context.Background(), textSection(999, "órfã"), userID)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateBumpsVersion(t *testing.T) {
	db, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	sec := textSection(pageID, "antes")
	require.NoError(t, repo.Create(ctx, sec, userID))

	inactive := false
	updated, err := repo.Update(ctx, sec.ID, section.Patch{
		Content: models.Blocks{{Type: models.BlockText, Markup: "depois"}},
		Active:  &inactive,
	}, userID)
	require.NoError(t, err)
	require.Equal(t, 2, updated.Version)
	require.False(t, updated.Active)
	require.Equal(t, "depois", updated.Content[0].Markup)

	revs, err := revision.NewLog(db).ListByPage(ctx, pageID)
	require.NoError(t, err)
	last := revs[len(revs)-1]
	require.Equal(t, models.ActionUpdate, last.Action)
	require.NotNil(t, last.SectionID)
	require.Equal(t, sec.ID, *last.SectionID)
}

func TestUpdateRejectsInvalidBlocks(t *testing.T) {
	_, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	sec := textSection(pageID, "válido")
	require.NoError(t, repo.Create(ctx, sec, userID))

	_, err := repo.Update(ctx, sec.ID, section.Patch{
		Content: models.Blocks{{Type: models.BlockImage}},
	}, userID)
	require.ErrorIs(t, err, models.ErrValidation)
}

func TestDeleteLeavesGap(t *testing.T) {
	db, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	var secs []*models.Section
	for _, markup := range []string{"a", "b", "c"} {
		sec := textSection(pageID, markup)
		require.NoError(t, repo.Create(ctx, sec, userID))
		secs = append(secs, sec)
	}

	require.NoError(t, repo.Delete(ctx, secs[1].ID, userID))

	remaining, err := repo.ListByPage(ctx, pageID)
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	// Deletion does not compact positions.
	require.Equal(t, 0, remaining[0].Position)
	require.Equal(t, 2, remaining[1].Position)

	revs, err := revision.NewLog(db).ListByPage(ctx, pageID)
	require.NoError(t, err)
	last := revs[len(revs)-1]
	require.Equal(t, models.ActionDelete, last.Action)
}

func TestReorder(t *testing.T) {
	db, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	var secs []*models.Section
	for _, markup := range []string{"a", "b", "c"} {
		sec := textSection(pageID, markup)
		require.NoError(t, repo.Create(ctx, sec, userID))
		secs = append(secs, sec)
	}

	order := []int{secs[2].ID, secs[0].ID, secs[1].ID}
	require.NoError(t, repo.Reorder(ctx, pageID, order, userID))

	sections, err := repo.ListByPage(ctx, pageID)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	for i, id := range order {
		require.Equal(t, id, sections[i].ID)
		require.Equal(t, i, sections[i].Position)
	}

	revs, err := revision.NewLog(db).ListByPage(ctx, pageID)
	require.NoError(t, err)
	var reorders []models.Revision
	for _, rev := range revs {
		if rev.Action == models.ActionReorder {
			reorders = append(reorders, rev)
		}
	}
	require.Len(t, reorders, 1)

	var payload struct {
		Order []int `json:"order"`
	}
	require.NoError(t, json.Unmarshal(reorders[0].Payload, &payload))
	require.Equal(t, order, payload.Order)
}

func TestReorderRejectsBadIDSets(t *testing.T) {
	_, repo, pageID, userID := newFixture(t)
	ctx := context.Background()

	var secs []*models.Section
	for _, markup := range []string{"a", "b"} {
		sec := textSection(pageID, markup)
		require.NoError(t, repo.Create(ctx, sec, userID))
		secs = append(secs, sec)
	}

	cases := map[string][]int{
		"omission":  {secs[0].ID},
		"foreign":   {secs[0].ID, 999},
		"duplicate": {secs[0].ID, secs[0].ID},
	}
	for name, ids := range cases {
		err := repo.Reorder(ctx, pageID, ids, userID)
		require.ErrorIs(t, err, models.ErrInvalidReorder, name)
	}

	// A rejected reorder leaves positions untouched.
	sections, err := repo.ListByPage(ctx, pageID)
	require.NoError(t, err)
	require.Equal(t, secs[0].ID, sections[0].ID)
	require.Equal(t, secs[1].ID, sections[1].ID)
}
