package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"pharmstore/m/internal/logging"
	"pharmstore/m/internal/metrics"
	"pharmstore/m/internal/repository"
	"pharmstore/m/internal/validation"
)

const (
	defaultLimit        = 100
	defaultMaxPageLimit = 1000
)

// Options tune the HTTP surface. The zero value is usable.
type Options struct {
	// MaxPageLimit bounds the limit query parameter; <= 0 means 1000.
	MaxPageLimit   int
	AllowedOrigins []string
	// Metrics, when set, instruments requests and serves /metrics.
	Metrics *metrics.Metrics
}

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store    *repository.Store
	validate *validation.Validator
	log      zerolog.Logger
	opts     Options
}

// New constructs a Handler.
func New(store *repository.Store, logger zerolog.Logger, opts Options) *Handler {
	if opts.MaxPageLimit <= 0 {
		opts.MaxPageLimit = defaultMaxPageLimit
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}
	return &Handler{store: store, validate: validation.New(), log: logger, opts: opts}
}

// Router wires up the HTTP API.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(logging.Middleware(h.log))
	if h.opts.Metrics != nil {
		r.Use(h.opts.Metrics.Middleware)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: h.opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))

	r.Get("/health", h.health)
	if h.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", h.opts.Metrics.Handler())
	}

	s := h.store
	r.Route("/drugs", func(r chi.Router) {
		mountCRUD(r, h, s.Drugs, validation.DrugPayload.Create)
		r.Get("/{id}/supplies", listChildren(h, s.PurchasesOfDrug))
	})
	r.Route("/pharmacies", func(r chi.Router) {
		mountCRUD(r, h, s.Pharmacies, validation.PharmacyPayload.Create)
		r.Get("/{id}/orders", listChildren(h, s.RequestsOfPharmacy))
	})
	for _, prefix := range []string{"/orders", "/requests"} {
		r.Route(prefix, func(r chi.Router) {
			mountCRUD(r, h, s.Requests, validation.RequestPayload.Create)
			r.Get("/{id}/supplies", listChildren(h, s.PurchasesOfRequest))
		})
	}
	for _, prefix := range []string{"/supplies", "/purchases"} {
		r.Route(prefix, func(r chi.Router) {
			mountCRUD(r, h, s.Purchases, validation.PurchasePayload.Create)
		})
	}

	return r
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := h.store.Ping(ctx); err != nil {
		h.log.Error().Err(err).Msg("store ping failed")
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
