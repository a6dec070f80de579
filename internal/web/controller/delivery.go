package controller

import (
	"errors"
	"html/template"
	"log"
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/models"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/pagecache"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/render"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/tenant"
)

var deliveryTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
</head>
<body>
<main>{{.Content}}</main>
</body>
</html>
`))

// Delivery serves published pages to the public. Rendered HTML is cached
// per page, keyed by the version that produced it, so a page is
// re-rendered exactly when a new version lands.
type Delivery struct {
	Pages      *page.Service
	Sections   *section.Repository
	TenantRepo *tenant.Repository
	Cache      *pagecache.Cache
}

// Register registers the delivery routes.
func (d *Delivery) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /{tenantSlug}/p/{pageSlug}", d.view)
}

func (d *Delivery) view(w http.ResponseWriter, r *http.Request) {
	t, err := d.TenantRepo.FindBySlug(r.Context(), r.PathValue("tenantSlug"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}

	pg, err := d.Pages.GetBySlug(r.Context(), t.ID, r.PathValue("pageSlug"))
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Println(err)
		http.Error(w, "Internal Server Error", 500)
		return
	}
	if pg.Status != models.StatusPublished {
		http.NotFound(w, r)
		return
	}

	content, ok := d.Cache.Get(pg.ID, pg.CurrentVersion)
	if !ok {
		sections, err := d.Sections.ListByPage(r.Context(), pg.ID)
		if err != nil {
			log.Println(err)
			http.Error(w, "Internal Server Error", 500)
			return
		}
		content, err = render.Sections(sections)
		if err != nil {
			log.Printf("Error rendering page %d: %v", pg.ID, err)
			http.Error(w, "Internal Server Error", 500)
			return
		}
		d.Cache.Put(pg.ID, pg.CurrentVersion, content)
	}

	data := struct {
		Title   string
		Content template.HTML
	}{Title: pg.Title, Content: content}

	if err := deliveryTemplate.Execute(w, data); err != nil {
		log.Println(err)
	}
}
