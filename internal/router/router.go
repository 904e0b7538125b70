// Package router sets up all HTTP routes and middleware chains for
// TheArchives. Catalog pages, the JSON search API and the submission form
// each get the middleware stack they need.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"thearchives/internal/catalog"
	"thearchives/internal/handlers"
	"thearchives/internal/middleware"
	"thearchives/web"
)

// maxSubmitBody caps the submission form body.
const maxSubmitBody = 64 << 10

// Deps carries everything the router wires into routes.
type Deps struct {
	Store         *catalog.Store
	Public        *handlers.Public
	Submit        *handlers.Submit
	SubmitLimiter *middleware.RateLimiter
	CORSOrigins   []string
	SecureCookies bool
	// TrustProxy rewrites RemoteAddr from proxy headers. Without it the
	// socket peer is the client, for logging and rate limiting alike.
	TrustProxy bool

	// Metrics, when non-nil, is mounted at /metrics on this router.
	Metrics http.Handler
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(d Deps) (chi.Router, error) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	if d.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", handlers.Health(d.Store))
	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics)
	}
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(static))))

	// JSON API, readable cross-origin.
	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.CORS(d.CORSOrigins))
		r.Get("/search", d.Public.APISearch)
	})

	// Catalog pages.
	r.Get("/", d.Public.Home)
	r.Get("/destinations", d.Public.Destinations)
	r.Get("/destination/{id}", d.Public.Destination)
	r.Get("/district/{id}", d.Public.District)
	r.Get("/gallery", d.Public.Gallery)
	r.Get("/gallery/{id}", d.Public.LocationGallery)
	r.Get("/about", d.Public.About)
	r.Get("/search", d.Public.Search)

	r.Route("/hidden-gems", func(r chi.Router) {
		r.Get("/", d.Public.HiddenGems)

		// Submission form: CSRF protected, POST rate limited per client.
		r.Group(func(r chi.Router) {
			r.Use(chimw.RequestSize(maxSubmitBody))
			r.Use(middleware.NewCSRF(d.SecureCookies))
			r.Get("/submit", d.Submit.Form)
			r.With(d.SubmitLimiter.Middleware).Post("/submit", d.Submit.Create)
		})

		r.Get("/{id}", d.Public.LocationGems)
		r.Get("/{id}/{productSlug}", d.Public.Product)
	})

	r.NotFound(d.Public.NotFound)

	return r, nil
}
