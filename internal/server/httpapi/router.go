package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/moodjournal/internal/logging"
	"github.com/dmitrijs2005/moodjournal/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	Handler        *Handler
	Verifier       TokenVerifier
	Logger         logging.Logger
	Metrics        *metrics.Metrics
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter wires middleware and routes. /reflect and /entries sit behind
// RequireAuth; /save-entry checks its token in the handler.
func NewRouter(c RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(Observe(c.Logger, c.Metrics))
	r.Use(chimiddleware.Recoverer)
	r.Use(CORS(c.AllowedOrigins))

	h := c.Handler

	r.Get("/healthz", h.Health)
	if c.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(c.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Post("/signup", h.Signup)
	r.Post("/login", h.Login)
	r.Post("/register", h.Register)
	r.Post("/save-entry", h.SaveEntry)

	r.Group(func(r chi.Router) {
		r.Use(RequireAuth(c.Verifier, c.Logger))
		r.Post("/reflect", h.Reflect)
		r.Get("/entries", h.ListEntries)
	})

	return r
}
