package controller

import (
	"encoding/json"
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
)

// Section provides the section editing handlers.
type Section struct {
	Sections *section.Repository
}

// Register registers the section routes.
func (s *Section) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/pages/{id}/sections", s.list)
	mux.HandleFunc("POST /api/pages/{id}/sections", s.create)
	mux.HandleFunc("POST /api/pages/{id}/sections/reorder", s.reorder)
	mux.HandleFunc("PATCH /api/sections/{id}", s.update)
	mux.HandleFunc("DELETE /api/sections/{id}", s.delete)
}

func (s *Section) list(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	sections, err := s.Sections.ListByPage(r.Context(), pageID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sections)
}

func (s *Section) create(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in struct {
		Type     models.SectionType `json:"type"`
		Content  json.RawMessage    `json:"content"`
		Settings models.Settings    `json:"settings"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	// Content validation happens here at the boundary, keyed by the
	// section type, never at render time.
	blocks, err := models.ParseBlocks(in.Content, in.Type)
	if err != nil {
		respondError(w, err)
		return
	}

	sec := &models.Section{
		PageID:   pageID,
		Type:     in.Type,
		Content:  blocks,
		Settings: in.Settings,
	}
	if err := s.Sections.Create(r.Context(), sec, actorID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, sec)
}

func (s *Section) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in struct {
		Content  json.RawMessage `json:"content"`
		Settings models.Settings `json:"settings"`
		Active   *bool           `json:"active"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	patch := section.Patch{Settings: in.Settings, Active: in.Active}
	if in.Content != nil {
		existing, err := s.Sections.Get(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		blocks, err := models.ParseBlocks(in.Content, existing.Type)
		if err != nil {
			respondError(w, err)
			return
		}
		patch.Content = blocks
	}

	sec, err := s.Sections.Update(r.Context(), id, patch, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sec)
}

func (s *Section) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.Sections.Delete(r.Context(), id, actorID(r)); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Section) reorder(w http.ResponseWriter, r *http.Request) {
	pageID, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in struct {
		Order []int `json:"order"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	if err := s.Sections.Reorder(r.Context(), pageID, in.Order, actorID(r)); err != nil {
		respondError(w, err)
		return
	}

	sections, err := s.Sections.ListByPage(r.Context(), pageID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, sections)
}
