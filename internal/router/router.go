// Package router wires the HTML surface, the JSON API and the operational
// endpoints onto a single chi mux.
package router

import (
	"net/http"

	"stockroom/internal/auth"
	"stockroom/internal/config"
	"stockroom/internal/handler"
	"stockroom/internal/middleware"
	"stockroom/internal/web"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// New creates the HTTP router with all routes and middleware configured.
func New(
	webHandler *web.Handler,
	productAPI *handler.ProductAPI,
	authManager *auth.Manager,
	cfg *config.Config,
	logger zerolog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logging(logger))

	// Health check endpoint (no authentication required)
	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// JSON API, bearer-token only. Anonymous requests are forbidden, never
	// redirected to the login page.
	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.CORS)
		api.Use(auth.RequireToken(authManager, logger))
		productAPI.RegisterRoutes(api)
	})

	// Local media files are only served by the application itself in debug
	// mode; production puts them behind S3 or a front proxy.
	if cfg.Server.Debug && !cfg.Media.S3Enabled {
		fileServer := http.StripPrefix("/media/", http.FileServer(http.Dir(cfg.Media.Dir)))
		r.Get("/media/*", func(w http.ResponseWriter, req *http.Request) {
			fileServer.ServeHTTP(w, req)
		})
	}

	webHandler.RegisterRoutes(r, auth.RequireSession(authManager, logger))

	return r
}
