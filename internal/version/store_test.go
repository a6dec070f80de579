package version_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/testutil"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/version"
)

func newFixture(t *testing.T) (*sql.DB, *page.Service, *models.Page, int) {
	t.Helper()
	db := testutil.NewDB(t)
	tenantID := testutil.SeedTenant(t, db, "anrielly", "Anrielly Gomes Cerimonial")
	userID := testutil.SeedUser(t, db, "anrielly")

	svc := page.NewService(db)
	p, err := svc.Create(context.Background(), page.CreateInput{
		TenantID: tenantID,
		Slug:     "home",
		Title:    "Início",
	}, userID)
	require.NoError(t, err)

	return db, svc, p, userID
}

func TestSnapshotSequence(t *testing.T) {
	_, svc, p, userID := newFixture(t)
	ctx := context.Background()

	for _, title := range []string{"Primeira", "Segunda", "Terceira"} {
		_, err := svc.Update(ctx, p.ID, page.Patch{Title: &title}, userID)
		require.NoError(t, err)
	}

	versions, err := svc.Versions.ListByPage(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 4)
	for i, want := range []int{4, 3, 2, 1} {
		require.Equal(t, want, versions[i].Number)
	}
}

func TestSnapshotConflict(t *testing.T) {
	db, svc, p, _ := newFixture(t)
	ctx := context.Background()

	// Another writer claimed the next version number: current_version moved
	// ahead of max(versions.number), so the compare-and-swap must miss.
	_, err := db.Exec("UPDATE pages SET current_version = current_version + 1 WHERE id = ?", p.ID)
	require.NoError(t, err)

	_, err = version.Snapshot(ctx, db, p.ID, models.SummaryUpdate, models.PageSnapshot{Page: *p})
	require.ErrorIs(t, err, models.ErrConcurrentModification)

	// The losing writer left no version row behind.
	versions, err := svc.Versions.ListByPage(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 1)
}

func TestGetNotFound(t *testing.T) {
	_, svc, _, _ := newFixture(t)

	_, err := svc.Versions.Get(context.Background(), 999)
	require.ErrorIs(t, err, models.ErrNotFound)
}

func TestGetDecodesSnapshot(t *testing.T) {
	_, svc, p, userID := newFixture(t)
	ctx := context.Background()

	title := "Decorada"
	updated, err := svc.Update(ctx, p.ID, page.Patch{Title: &title}, userID)
	require.NoError(t, err)

	versions, err := svc.Versions.ListByPage(ctx, p.ID)
	require.NoError(t, err)

	v, err := svc.Versions.Get(ctx, versions[0].ID)
	require.NoError(t, err)
	require.Equal(t, 2, v.Number)
	require.Equal(t, "Decorada", v.Snapshot.Page.Title)
	require.Equal(t, updated.CurrentVersion, v.Snapshot.Page.CurrentVersion)
}

func TestMarkRestorePointIsExclusive(t *testing.T) {
	db, svc, p, userID := newFixture(t)
	ctx := context.Background()

	title := "Segunda"
	_, err := svc.Update(ctx, p.ID, page.Patch{Title: &title}, userID)
	require.NoError(t, err)

	versions, err := svc.Versions.ListByPage(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	v2, v1 := versions[0], versions[1]

	require.NoError(t, version.MarkRestorePoint(ctx, db, p.ID, v1.ID))
	require.NoError(t, version.MarkRestorePoint(ctx, db, p.ID, v2.ID))

	versions, err = svc.Versions.ListByPage(ctx, p.ID)
	require.NoError(t, err)
	for _, v := range versions {
		require.Equal(t, v.ID == v2.ID, v.IsRestorePoint, "version %d", v.Number)
	}
}
