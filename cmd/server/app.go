package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	householdhandler "govinda/internal/household/handler"
	householdmetrics "govinda/internal/household/metrics"
	householdservice "govinda/internal/household/service"
	personhandler "govinda/internal/person/handler"
	personmetrics "govinda/internal/person/metrics"
	personservice "govinda/internal/person/service"
	"govinda/internal/platform/config"
	"govinda/internal/platform/metrics"
	"govinda/internal/platform/middleware"
	"govinda/pkg/platform/audit/publishers/compliance"
	"govinda/pkg/platform/audit/worker"
	"govinda/pkg/platform/httputil"
	"govinda/pkg/platform/middleware/auth"
	"govinda/pkg/platform/middleware/metadata"
	"govinda/pkg/platform/middleware/requesttime"
)

// app is the assembled service graph. Every collector it creates is
// registered on reg, which also backs /metrics.
type app struct {
	cfg        config.Server
	logger     *slog.Logger
	registry   *prometheus.Registry
	metrics    *metrics.Metrics
	persons    *personhandler.Handler
	households *householdhandler.Handler
	relay      *worker.Relay
	checks     map[string]func(context.Context) error
}

func newApp(cfg config.Server, log *slog.Logger, i *infra, reg *prometheus.Registry) *app {
	publisher := compliance.New(i.events,
		compliance.WithLogger(log),
		compliance.WithMetrics(compliance.NewMetrics(reg)),
	)

	personSvc := personservice.NewPersonService(i.persons,
		personservice.WithLogger(log),
		personservice.WithMetrics(personmetrics.New(reg)),
		personservice.WithAuditPublisher(publisher),
		personservice.WithTx(i.tx),
	)
	householdSvc := householdservice.NewHouseholdService(i.households, i.lookup,
		householdservice.WithLogger(log),
		householdservice.WithMetrics(householdmetrics.New(reg)),
		householdservice.WithAuditPublisher(publisher),
		householdservice.WithTx(i.tx),
	)

	a := &app{
		cfg:        cfg,
		logger:     log,
		registry:   reg,
		metrics:    metrics.New(reg),
		persons:    personhandler.New(personSvc, log),
		households: householdhandler.New(householdSvc, log),
		checks:     i.checks,
	}
	if i.producer != nil && i.outbox != nil {
		a.relay = worker.New(i.outbox, i.producer,
			worker.WithLogger(log),
			worker.WithMetrics(worker.NewMetrics(reg)),
			worker.WithInterval(cfg.Kafka.PollInterval),
			worker.WithBatchSize(cfg.Kafka.BatchSize),
		)
	}
	return a
}

func (a *app) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(a.logger, a.metrics))
	r.Use(middleware.Logger(a.logger))
	r.Use(middleware.Latency(a.metrics))

	r.Get("/health", a.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(a.registry, promhttp.HandlerOpts{Registry: a.registry}))

	r.Route("/api/v1/masterdata", func(r chi.Router) {
		r.Use(middleware.Timeout(a.cfg.RequestTimeout))
		r.Use(middleware.ContentTypeJSON)
		r.Use(requesttime.Middleware)
		r.Use(metadata.RequestMetadata)
		r.Use(auth.RequireTenant(a.logger))
		r.Use(auth.RequireUser(a.logger))
		a.persons.Register(r)
		a.households.Register(r)
	})

	return cors.New(cors.Options{
		AllowedOrigins: a.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept-Language", middleware.HeaderRequestID, auth.HeaderTenantID, auth.HeaderUserID},
		ExposedHeaders: []string{"Location", middleware.HeaderRequestID},
	}).Handler(r)
}

type healthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// handleHealth pings every configured backend. Any failure makes the
// instance report 503.
func (a *app) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	resp := healthResponse{Status: "ok"}
	if len(a.checks) > 0 {
		resp.Components = make(map[string]string, len(a.checks))
	}
	status := http.StatusOK
	for name, check := range a.checks {
		if err := check(ctx); err != nil {
			a.logger.WarnContext(ctx, "health check failed", "component", name, "error", err)
			resp.Components[name] = "down"
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Components[name] = "up"
	}
	httputil.WriteJSON(w, status, resp)
}
