package http

import (
	"net/http"
	"time"

	_ "github.com/DRSN-tech/product-admin/docs" // Регистрация swagger-спецификации
	"github.com/DRSN-tech/product-admin/internal/cfg"
	"github.com/DRSN-tech/product-admin/internal/usecase"
	"github.com/DRSN-tech/product-admin/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

type Router struct {
	router *chi.Mux
	logger logger.Logger
}

func NewRouter(router *chi.Mux, logger logger.Logger) *Router {
	return &Router{router: router, logger: logger}
}

func (r *Router) Init(catalogUC usecase.CatalogUC, httpCfg *cfg.HTTPConfig) {
	r.router.Use(middleware.RequestID)
	r.router.Use(middleware.Recoverer)
	r.router.Use(r.requestLogger)

	r.router.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.router.Route("/api", func(api chi.Router) {
		handler := NewCatalogHandler(catalogUC, httpCfg, r.logger)
		registerCatalogRoutes(api, handler)
	})
}

func registerCatalogRoutes(router chi.Router, h *CatalogHandler) {
	router.Get("/categories", h.listCategories)
	router.Post("/upload", h.uploadImages)

	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", h.getProducts)
		pr.Post("/", h.createProduct)
		pr.Put("/", h.updateProduct)
	})
}

// requestLogger пишет в лог метод, путь, статус и длительность запроса.
func (r *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, req)

		r.logger.Debugf("%s %s %d %s request_id=%s",
			req.Method, req.URL.Path, ww.Status(), time.Since(start), middleware.GetReqID(req.Context()))
	})
}
