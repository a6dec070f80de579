package web

import (
	"net/http"

	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/web/controller"
	"github.com/LoboMiguelBR/anrielly-cerimonias-elegancia-sub002/internal/web/middleware"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(s.uploadDir))))

	authController := controller.Auth{AuthService: s.authService}
	authController.Register(mux)

	deliveryController := controller.Delivery{Pages: s.pageService, Sections: s.sectionRepo, TenantRepo: s.tenantRepo, Cache: s.cache}
	deliveryController.Register(mux)

	api := http.NewServeMux()

	tenantController := controller.Tenant{TenantRepo: s.tenantRepo}
	tenantController.Register(api)

	pageController := controller.Page{Pages: s.pageService, Versions: s.versionStore, Revisions: s.revisionLog, TenantRepo: s.tenantRepo, Cache: s.cache}
	pageController.Register(api)

	sectionController := controller.Section{Sections: s.sectionRepo}
	sectionController.Register(api)

	templateController := controller.Template{Templates: s.templateRepo, Service: s.templateSvc}
	templateController.Register(api)

	mediaController := controller.Media{MediaRepo: s.mediaRepo, UploadDir: s.uploadDir}
	mediaController.Register(api)

	mux.Handle("/api/", middleware.WithUser(s.authService)(middleware.Auth(s.authService)(api)))

	return mux
}
