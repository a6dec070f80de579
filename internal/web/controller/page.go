package controller

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"strconv"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/auth"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/pagecache"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/revision"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/tenant"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/version"
)

// Page provides the page editing handlers.
type Page struct {
	Pages      *page.Service
	Versions   *version.Store
	Revisions  *revision.Log
	TenantRepo *tenant.Repository
	Cache      *pagecache.Cache
}

// Register registers the page routes.
func (p *Page) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/tenants/{tenantSlug}/pages", p.list)
	mux.HandleFunc("POST /api/pages", p.create)
	mux.HandleFunc("GET /api/pages/{id}", p.get)
	mux.HandleFunc("PATCH /api/pages/{id}", p.update)
	mux.HandleFunc("DELETE /api/pages/{id}", p.delete)
	mux.HandleFunc("POST /api/pages/{id}/publish", p.publish)
	mux.HandleFunc("POST /api/pages/{id}/unpublish", p.unpublish)
	mux.HandleFunc("GET /api/pages/{id}/versions", p.versions)
	mux.HandleFunc("GET /api/pages/{id}/revisions", p.revisions)
	mux.HandleFunc("GET /api/pages/{id}/diff", p.diff)
	mux.HandleFunc("POST /api/versions/{id}/restore", p.restore)
}

func pathID(r *http.Request) (int, error) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		return 0, fmt.Errorf("%w: invalid id", models.ErrValidation)
	}
	return id, nil
}

func actorID(r *http.Request) int {
	if user := auth.UserFrom(r.Context()); user != nil {
		return user.ID
	}
	return 0
}

func (p *Page) list(w http.ResponseWriter, r *http.Request) {
	t, err := p.TenantRepo.FindBySlug(r.Context(), r.PathValue("tenantSlug"))
	if err != nil {
		respondError(w, err)
		return
	}
	pages, err := p.Pages.ListByTenant(r.Context(), t.ID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pages)
}

func (p *Page) create(w http.ResponseWriter, r *http.Request) {
	var in page.CreateInput
	if err := decodeBody(r, &in); err != nil {
		respondError(w, err)
		return
	}
	created, err := p.Pages.Create(r.Context(), in, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (p *Page) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	pg, err := p.Pages.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pg)
}

func (p *Page) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	var patch page.Patch
	if err := decodeBody(r, &patch); err != nil {
		respondError(w, err)
		return
	}
	pg, err := p.Pages.UpdateWithRetry(r.Context(), id, patch, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pg)
}

func (p *Page) delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	if err := p.Pages.Delete(r.Context(), id, actorID(r)); err != nil {
		respondError(w, err)
		return
	}
	p.Cache.Invalidate(id)
	respondJSON(w, http.StatusNoContent, nil)
}

func (p *Page) publish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	pg, err := p.Pages.Publish(r.Context(), id, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pg)
}

func (p *Page) unpublish(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	pg, err := p.Pages.Unpublish(r.Context(), id, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pg)
}

func (p *Page) versions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	versions, err := p.Versions.ListByPage(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, versions)
}

func (p *Page) revisions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	revs, err := p.Revisions.ListByPage(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, revs)
}

func (p *Page) restore(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondError(w, err)
		return
	}
	pg, err := p.Pages.Restore(r.Context(), id, actorID(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pg)
}

// diff renders the difference between two versions of a page as HTML
// ins/del markup, for display only.
func (p *Page) diff(w http.ResponseWriter, r *http.Request) {
	fromID, err := strconv.Atoi(r.URL.Query().Get("from"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: invalid 'from' version", models.ErrValidation))
		return
	}
	toID, err := strconv.Atoi(r.URL.Query().Get("to"))
	if err != nil {
		respondError(w, fmt.Errorf("%w: invalid 'to' version", models.ErrValidation))
		return
	}

	from, err := p.Versions.Get(r.Context(), fromID)
	if err != nil {
		respondError(w, err)
		return
	}
	to, err := p.Versions.Get(r.Context(), toID)
	if err != nil {
		respondError(w, err)
		return
	}

	fromText, err := json.MarshalIndent(from.Snapshot, "", "  ")
	if err != nil {
		respondError(w, err)
		return
	}
	toText, err := json.MarshalIndent(to.Snapshot, "", "  ")
	if err != nil {
		respondError(w, err)
		return
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(fromText), string(toText), true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var buff bytes.Buffer
	for _, diff := range diffs {
		text := template.HTMLEscapeString(diff.Text)
		switch diff.Type {
		case diffmatchpatch.DiffInsert:
			buff.WriteString("<ins>" + text + "</ins>")
		case diffmatchpatch.DiffDelete:
			buff.WriteString("<del>" + text + "</del>")
		case diffmatchpatch.DiffEqual:
			buff.WriteString("<span>" + text + "</span>")
		}
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"from": from.Number,
		"to":   to.Number,
		"html": buff.String(),
	})
}
