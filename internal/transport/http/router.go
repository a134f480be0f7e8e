package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	request "prover/pkg/platform/middleware/request"
)

// Registrar mounts a bounded context's routes.
type Registrar interface {
	Register(r chi.Router)
}

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Logger         *slog.Logger
	Gatherer       prometheus.Gatherer
	Metrics        *request.Metrics
	MaxBodyBytes   int64
	RequestTimeout time.Duration
	Health         Registrar
	Handlers       []Registrar
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.RequestTime)
	r.Use(request.Logger(cfg.Logger))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(api chi.Router) {
		if cfg.MaxBodyBytes > 0 {
			api.Use(request.BodyLimit(cfg.MaxBodyBytes))
		}
		if cfg.RequestTimeout > 0 {
			api.Use(request.Timeout(cfg.RequestTimeout))
		}
		api.Use(request.ContentTypeJSON)
		if cfg.Metrics != nil {
			api.Use(request.LatencyMiddleware(cfg.Metrics))
		}
		for _, h := range cfg.Handlers {
			h.Register(api)
		}
	})

	return r
}
