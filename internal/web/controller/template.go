package controller

import (
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/template"
)

// Template provides the template handlers.
type Template struct {
	Templates *template.Repository
	Service   *template.Service
}

// Register registers the template routes.
func (t *Template) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/templates", t.list)
	mux.HandleFunc("GET /api/templates/{id}", t.get)
	mux.HandleFunc("POST /api/templates/{id}/instantiate", t.instantiate)
}

func (t *Template) list(w http.ResponseWriter, r *http.Request) {
	templates, err := t.Templates.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

func (t *Template) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	tpl, err := t.Templates.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tpl)
}

func (t *Template) instantiate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}

	var in template.InstantiateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}

	pg, err := t.Service.Instantiate(r.Context(), id, in, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pg)
}
