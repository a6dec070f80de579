package controller

import (
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/tenant"
)

// Tenant provides tenant handlers.
type Tenant struct {
	TenantRepo *tenant.Repository
}

// Register registers the tenant routes.
func (t *Tenant) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tenants", t.list)
	mux.HandleFunc("POST /api/tenants", t.create)
}

func (t *Tenant) list(w http.ResponseWriter, r *http.Request) {
	tenants, err := t.TenantRepo.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, tenants)
}

func (t *Tenant) create(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Slug string `json:"slug"`
		Name string `json:"name"`
	}
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	created, err := t.TenantRepo.Create(r.Context(), in.Slug, in.Name)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}
