package page_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
)

func TestRetrySucceedsAfterConflicts(t *testing.T) {
	calls := 0
	err := page.Retry(context.Background(), 3, func(context.Context) error {
		calls++
		if calls < 3 {
			return fmt.Errorf("page 1 version 2: %w", models.ErrConcurrentModification)
		}
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 3, calls)
}

func TestRetryGivesUpAfterAttempts(t *testing.T) {
	calls := 0
	err := page.Retry(context.Background(), 3, func(context.Context) error {
		calls++
		return models.ErrConcurrentModification
	})
	require.ErrorIs(t, err, models.ErrConcurrentModification)
	require.Equal(t, 3, calls)
}

func TestRetryStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	err := page.Retry(context.Background(), 3, func(context.Context) error {
		calls++
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, 1, calls)
}

func TestRetryHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := page.Retry(ctx, 5, func(context.Context) error {
		calls++
		cancel()
		return models.ErrConcurrentModification
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, calls)
}

func TestUpdateWithRetry(t *testing.T) {
	_, svc, tenantID, userID := newFixture(t)
	ctx := context.Background()

	p, err := svc.Create(ctx, page.CreateInput{TenantID: tenantID, Slug: "home", Title: "Início"}, userID)
	require.NoError(t, err)

	p, err = svc.UpdateWithRetry(ctx, p.ID, page.Patch{Title: strptr("Bem-vindos")}, userID)
	require.NoError(t, err)
	require.Equal(t, 2, p.CurrentVersion)
	require.Equal(t, "Bem-vindos", p.Title)
}
