package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// respondError maps engine error kinds to status codes. The engine never
// retries; whether to retry on a conflict is the caller's call.
func respondError(w http.ResponseWriter, err error) {
	var partial *models.PartialTemplateError
	if errors.As(err, &partial) {
		respondJSON(w, http.StatusInternalServerError, map[string]any{
			"error":            partial.Error(),
			"page_id":          partial.PageID,
			"sections_created": partial.Created,
		})
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrValidation), errors.Is(err, models.ErrInvalidReorder):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateSlug), errors.Is(err, models.ErrConcurrentModification):
		status = http.StatusConflict
	}
	if status == http.StatusInternalServerError {
		log.Printf("Internal error: %v", err)
	}
	respondJSON(w, status, map[string]string{"error": err.Error()})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid request body: %v", models.ErrValidation, err)
	}
	return nil
}
