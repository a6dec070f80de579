package page

import (
	"context"
	"errors"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

// DefaultRetryAttempts bounds the optimistic-lock retry loop.
const DefaultRetryAttempts = 3

// Retry runs fn up to attempts times, retrying only on
// ErrConcurrentModification. Each run re-reads its own state, so the losing
// writer redoes the whole operation instead of just the write.
func Retry(ctx context.Context, attempts int, fn func(context.Context) error) error {
	var err error
	for i := 0; i < attempts; i++ {
		if err = fn(ctx); err == nil {
			return nil
		}
		if !errors.Is(err, models.ErrConcurrentModification) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return err
}

// UpdateWithRetry is Update wrapped in the bounded retry loop, for callers
// that prefer not to see raw lock contention.
func (s *Service) UpdateWithRetry(ctx context.Context, id int, patch Patch, actorID int) (*models.Page, error) {
	var p *models.Page
	err := Retry(ctx, DefaultRetryAttempts, func(ctx context.Context) error {
		var err error
		p, err = s.Update(ctx, id, patch, actorID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}
