// Package health serves liveness, readiness and status checks.
package health

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"prover/pkg/platform/httputil"
)

// Version is set at build time via ldflags.
var Version = "dev"

// CheckFunc checks the health of a dependency, returning nil when healthy.
type CheckFunc func(ctx context.Context) error

// CheckTimeout bounds each readiness check.
var CheckTimeout = 2 * time.Second

// Handler provides health check endpoints.
type Handler struct {
	startTime   time.Time
	environment string
	storage     string

	mu     sync.RWMutex
	checks map[string]CheckFunc
}

type Option func(*Handler)

// WithStorage names the active storage backend on the status endpoint.
func WithStorage(backend string) Option {
	return func(h *Handler) {
		h.storage = backend
	}
}

func New(environment string, opts ...Option) *Handler {
	h := &Handler{
		startTime:   time.Now(),
		environment: environment,
		storage:     "memory",
		checks:      make(map[string]CheckFunc),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RegisterCheck adds a named readiness check. A second registration under the same name replaces the first.
func (h *Handler) RegisterCheck(name string, check CheckFunc) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checks[name] = check
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.HandleStatus)
	r.Get("/health/live", h.HandleLiveness)
	r.Get("/health/ready", h.HandleReadiness)
}

type LivenessResponse struct {
	Status string `json:"status"`
}

func (h *Handler) HandleLiveness(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, LivenessResponse{Status: "alive"})
}

type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// HandleReadiness runs the registered checks concurrently and answers 503 if any fails.
func (h *Handler) HandleReadiness(w http.ResponseWriter, r *http.Request) {
	results := h.runChecks(r.Context())

	response := ReadinessResponse{Status: "ready", Checks: make(map[string]string, len(results))}
	status := http.StatusOK
	for name, err := range results {
		if err != nil {
			response.Checks[name] = "down: " + err.Error()
			response.Status = "not_ready"
			status = http.StatusServiceUnavailable
			continue
		}
		response.Checks[name] = "up"
	}

	httputil.WriteJSON(w, status, response)
}

func (h *Handler) runChecks(ctx context.Context) map[string]error {
	h.mu.RLock()
	names := make([]string, 0, len(h.checks))
	checks := make([]CheckFunc, 0, len(h.checks))
	for name, check := range h.checks {
		names = append(names, name)
		checks = append(checks, check)
	}
	h.mu.RUnlock()

	errs := make([]error, len(checks))
	var g errgroup.Group
	for i, check := range checks {
		g.Go(func() error {
			checkCtx, cancel := context.WithTimeout(ctx, CheckTimeout)
			defer cancel()
			errs[i] = check(checkCtx)
			return nil
		})
	}
	_ = g.Wait()

	results := make(map[string]error, len(names))
	for i, name := range names {
		results[name] = errs[i]
	}
	return results
}

type StatusResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Environment   string `json:"environment"`
	Storage       string `json:"storage"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	Timestamp     string `json:"timestamp"`
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, StatusResponse{
		Status:        "healthy",
		Version:       Version,
		Environment:   h.environment,
		Storage:       h.storage,
		UptimeSeconds: int64(time.Since(h.startTime).Seconds()),
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	})
}
