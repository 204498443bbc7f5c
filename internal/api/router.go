// Package api assembles the HTTP surface: the operations endpoint, health
// probes, and the metrics exposition, behind the middleware chain.
package api

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/gatherline/server/internal/api/handlers"
	"github.com/gatherline/server/internal/api/middleware"
	"github.com/gatherline/server/internal/bus"
	"github.com/gatherline/server/internal/config"
	"github.com/gatherline/server/internal/domain/accounts"
	"github.com/gatherline/server/internal/domain/events"
	"github.com/gatherline/server/internal/domain/locations"
	"github.com/gatherline/server/internal/domain/participations"
	"github.com/gatherline/server/internal/domain/relations"
	"github.com/gatherline/server/internal/live"
	"github.com/gatherline/server/internal/metrics"
	"github.com/gatherline/server/internal/storage/memory"
)

// App bundles the assembled handler with the long-lived pieces the serve
// command manages: the store (for metrics collection) and the bus (closed on
// shutdown).
type App struct {
	Handler http.Handler
	Bus     *bus.Bus
	Store   *memory.Store
}

func NewApp(cfg config.Config, logger zerolog.Logger) (*App, error) {
	family, err := live.ParseFamily(cfg.Subscriptions.Family)
	if err != nil {
		return nil, err
	}

	store := memory.NewStore()
	if err := store.SeedFromFile(cfg.Seed.Path); err != nil {
		return nil, fmt.Errorf("seed store: %w", err)
	}

	b := bus.New()

	// Under the counter family nothing listens on entity topics, so the
	// dispatchers publish into a no-op. Locations never publish.
	var pub bus.Publisher = metrics.InstrumentedPublisher{Next: b}
	if family == live.FamilyCounter {
		pub = bus.NopPublisher{}
	}

	accountsSvc := accounts.NewService(store.Accounts(), pub, logger)
	eventsSvc := events.NewService(store.Events(), pub, logger)
	locationsSvc := locations.NewService(store.Locations(), logger)
	participationsSvc := participations.NewService(store.Participations(), pub, logger)

	resolver := relations.NewResolver(store.Accounts(), store.Events(), store.Locations(), store.Participations())
	mux := live.NewMultiplexer(b, family, cfg.Subscriptions.CounterInterval, logger)

	ops := handlers.NewOperationsHandler(
		accountsSvc, eventsSvc, locationsSvc, participationsSvc,
		resolver, mux, cfg.Environment, logger,
	)

	root := http.NewServeMux()
	root.Handle("/healthz", handlers.Healthz())
	root.Handle("/readyz", handlers.Readyz())
	root.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
	root.Handle("/api/v1/operations", methodMux(map[string]http.Handler{
		http.MethodGet:  ops,
		http.MethodPost: ops,
	}))

	var handler http.Handler = root
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RateLimit(cfg.RateLimit)(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)

	return &App{Handler: handler, Bus: b, Store: store}, nil
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowHeader(routes))
		w.WriteHeader(http.StatusMethodNotAllowed)
	})
}

func allowHeader(routes map[string]http.Handler) string {
	allow := ""
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if _, ok := routes[method]; ok {
			if allow != "" {
				allow += ", "
			}
			allow += method
		}
	}
	return allow
}
