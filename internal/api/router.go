package api

import (
	"cvrp-annealing-service/internal/api/handlers"
	"cvrp-annealing-service/internal/metrics"
	"cvrp-annealing-service/internal/ports"
	"cvrp-annealing-service/internal/services"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterDeps struct {
	Store    ports.DemandStore
	Runs     *services.RunManager
	Defaults handlers.RunDefaults
	Limiter  *handlers.StepLimiter
}

// NewRouter wires HTTP handlers with their dependencies and returns an http.Handler.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(deps RouterDeps) http.Handler {
	metrics.RegisterDefault()

	mux := http.NewServeMux()

	demandHandler := &handlers.DemandHandler{Store: deps.Store}
	runHandler := &handlers.RunHandler{
		Runs:     deps.Runs,
		Defaults: deps.Defaults,
		Limiter:  deps.Limiter,
	}

	mux.HandleFunc("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.HandleFunc("GET /demands", demandHandler.List)
	mux.HandleFunc("POST /demands", demandHandler.Create)
	mux.HandleFunc("DELETE /demands", demandHandler.Clear)

	mux.HandleFunc("POST /runs", runHandler.Start)
	mux.HandleFunc("GET /runs/{id}", runHandler.Get)
	mux.HandleFunc("DELETE /runs/{id}", runHandler.Delete)
	mux.HandleFunc("POST /runs/{id}/steps", runHandler.Step)
	mux.HandleFunc("GET /runs/{id}/stream", runHandler.Stream)

	return requestIDMiddleware(loggingMiddleware(mux))
}
