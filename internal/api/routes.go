package api

import (
	"log/slog"
	"net/http"

	"github.com/alexanderramin/menus/internal/contract"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RouterOption customizes NewRouter.
type RouterOption func(*routerOptions)

type routerOptions struct {
	logger   *slog.Logger
	registry *prometheus.Registry
}

// WithLogger sets the logger for access and error logs.
func WithLogger(logger *slog.Logger) RouterOption {
	return func(o *routerOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMetrics records request metrics into reg and serves it on /metrics.
func WithMetrics(reg *prometheus.Registry) RouterOption {
	return func(o *routerOptions) {
		o.registry = reg
	}
}

// RegisterRoutes sets up the menu API routes on router.
func RegisterRoutes(router *mux.Router, h *MenuHandler) {
	api := router.PathPrefix("/api/menus").Subrouter()
	api.HandleFunc("", h.ListTree).Methods(http.MethodGet)
	api.HandleFunc("", h.Create).Methods(http.MethodPost)
	api.HandleFunc("/check", h.Check).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.Get).Methods(http.MethodGet)
	api.HandleFunc("/{id}", h.Update).Methods(http.MethodPut)
	api.HandleFunc("/{id}", h.Delete).Methods(http.MethodDelete)
	api.HandleFunc("/{id}/move", h.Move).Methods(http.MethodPatch)
	api.HandleFunc("/{id}/reorder", h.Reorder).Methods(http.MethodPatch)
}

// NewRouter builds the full HTTP handler: menu routes, health check,
// optional metrics endpoint, and access logging.
func NewRouter(h *MenuHandler, opts ...RouterOption) *mux.Router {
	o := routerOptions{logger: h.logger}
	for _, opt := range opts {
		opt(&o)
	}

	router := mux.NewRouter()
	RegisterRoutes(router, h)
	router.HandleFunc("/healthz", healthz).Methods(http.MethodGet)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, contract.ErrorResponse{Error: "not_found", Message: "no route for " + r.URL.Path})
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, contract.ErrorResponse{Error: "method_not_allowed", Message: r.Method + " not allowed on " + r.URL.Path})
	})

	var metrics *requestMetrics
	if o.registry != nil {
		metrics = newRequestMetrics(o.registry)
		router.Handle("/metrics", promhttp.HandlerFor(o.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	router.Use(recoverMiddleware(o.logger), accessLogMiddleware(o.logger, metrics))
	return router
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
