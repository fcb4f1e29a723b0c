package gateway

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes returns the http.Handler with all routes and middleware configured
func (g *Gateway) Routes() http.Handler {
	r := chi.NewRouter()

	// Order: request id -> recoverer -> logging -> CORS -> handler
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(g.loggingMiddleware)
	r.Use(g.corsMiddleware)

	r.Get("/health", g.healthHandler)
	r.Get("/v1/health", g.healthHandler)
	r.Get("/v1/status", g.statusHandler)

	r.Route("/v1/wallet", func(r chi.Router) {
		r.Get("/", g.sessionHandler)
		r.Post("/connect", g.connectHandler)
		r.Post("/disconnect", g.disconnectHandler)
		r.Get("/events", g.walletEventsHandler)
	})

	r.Route("/v1/assets", func(r chi.Router) {
		r.Get("/", g.listAssetsHandler)
		r.Post("/", g.createAssetHandler)
		r.Get("/summary", g.assetSummaryHandler)
		r.Get("/{id}", g.getAssetHandler)
		r.Post("/{id}/status", g.updateStatusHandler)
		r.Post("/{id}/transfer", g.transferHandler)
	})

	r.Route("/v1/users", func(r chi.Router) {
		r.Get("/", g.listUsersHandler)
		r.Post("/", g.authorizeUserHandler)
		r.Delete("/{address}", g.revokeUserHandler)
	})

	return r
}
