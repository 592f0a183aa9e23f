package http

import (
	"net/http"

	_ "github.com/DRSN-tech/pricing-api/docs" // регистрация swagger-спецификации
	"github.com/DRSN-tech/pricing-api/internal/usecase"
	"github.com/DRSN-tech/pricing-api/pkg/logger"
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

// Init регистрирует middleware и маршруты. Swagger UI подключается только при withSwagger.
func (r *Router) Init(prUC usecase.ProductUC, withSwagger bool) {
	r.router.Use(
		RequestID,
		RequestLogger(r.logger),
		middleware.Recoverer,
	)

	r.router.Get("/healthz", healthz)

	if withSwagger {
		r.router.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	r.router.Route("/api", func(api chi.Router) {
		prHandler := NewProductHandler(prUC, r.logger)
		registerProductRoutes(api, prHandler)
	})
}

func registerProductRoutes(router chi.Router, prHandler *ProductHandler) {
	router.Route("/products", func(pr chi.Router) {
		pr.Get("/", prHandler.listProducts)
		pr.Get("/{id}", prHandler.getPriceHistory)
		pr.Post("/{id}/apply-discount", prHandler.applyDiscount)
		pr.Put("/{id}/update-price", prHandler.updatePrice)
	})
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
