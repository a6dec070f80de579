package web

import (
	"database/sql"
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/auth"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/media"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/page"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/pagecache"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/revision"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/section"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/template"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/tenant"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/version"
)

// Server holds the dependencies for the web server.
type Server struct {
	db           *sql.DB
	uploadDir    string
	authService  *auth.Service
	pageService  *page.Service
	sectionRepo  *section.Repository
	versionStore *version.Store
	revisionLog  *revision.Log
	tenantRepo   *tenant.Repository
	templateRepo *template.Repository
	templateSvc  *template.Service
	mediaRepo    *media.Repository
	cache        *pagecache.Cache
}

// NewServer creates a new server with the given dependencies.
func NewServer(db *sql.DB, uploadDir string) *Server {
	authService := auth.NewService(auth.NewRepository(db))
	pageService := page.NewService(db)
	sectionRepo := section.NewRepository(db)
	templateRepo := template.NewRepository(db)

	return &Server{
		db:           db,
		uploadDir:    uploadDir,
		authService:  authService,
		pageService:  pageService,
		sectionRepo:  sectionRepo,
		versionStore: version.NewStore(db),
		revisionLog:  revision.NewLog(db),
		tenantRepo:   tenant.NewRepository(db),
		templateRepo: templateRepo,
		templateSvc:  template.NewService(templateRepo, pageService, sectionRepo),
		mediaRepo:    media.NewRepository(db),
		cache:        pagecache.New(),
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.routes().ServeHTTP(w, r)
}
