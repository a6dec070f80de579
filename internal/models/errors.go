package models

import (
	"errors"
	"fmt"
)

// Engine error kinds. Callers match them with errors.Is; the engine never
// retries on its own behalf.
var (
	ErrValidation             = errors.New("validation failed")
	ErrDuplicateSlug          = errors.New("slug already in use")
	ErrNotFound               = errors.New("not found")
	ErrConcurrentModification = errors.New("concurrent modification")
	ErrInvalidReorder         = errors.New("reorder id set mismatch")
	ErrPartialTemplate        = errors.New("template partially applied")
)

// PartialTemplateError reports a template instantiation that stopped partway.
// The page and the sections created before the failure are left in place;
// callers inspect PageID and either retry the missing sections or delete
// the page.
type PartialTemplateError struct {
	PageID  int
	Created int
	Err     error
}

func (e *PartialTemplateError) Error() string {
	return fmt.Sprintf("template partially applied to page %d (%d sections created): %v", e.PageID, e.Created, e.Err)
}

func (e *PartialTemplateError) Unwrap() error { return e.Err }

func (e *PartialTemplateError) Is(target error) bool { return target == ErrPartialTemplate }
