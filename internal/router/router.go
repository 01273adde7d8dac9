package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	mw "github.com/hanzawa-dev/gobbs/internal/middleware"
	"github.com/hanzawa-dev/gobbs/internal/middleware/metrics"
	"github.com/hanzawa-dev/gobbs/internal/setup"
)

// New creates and configures the router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(metrics.Middleware)

	// Pages are server-rendered, scripts and styles come from /static only
	csp := "default-src 'self'; frame-ancestors 'none'"
	r.Use(mw.SecurityHeadersWithCSP(deps.Config.Public.SecureCookies, csp))

	r.Use(deps.Sessions.Middleware)

	h := deps.Handler
	r.Get("/", h.Index)
	r.Post("/post", h.SubmitPost)
	r.Post("/good", h.Good)
	r.Post("/bad", h.Bad)
	r.Get("/bbs/history", h.History)

	r.Handle("/metrics", promhttp.Handler())
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	return r
}
