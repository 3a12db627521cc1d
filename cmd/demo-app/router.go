package main

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// setupRoutes configures all HTTP routes and middleware for the server.
func (a *app) setupRoutes() *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(requestIDMiddleware)
	if a.config.LogRequests {
		router.Use(a.loggingMiddleware)
	}
	if a.config.EnableCORS {
		router.Use(corsMiddleware)
	}
	if a.limiter != nil {
		router.Use(a.rateLimitMiddleware)
	}

	router.HandleFunc("/", a.rootHandler).Methods(http.MethodGet)
	router.HandleFunc("/healthz", healthHandler).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(a.metrics.registry, promhttp.HandlerOpts{
		ErrorLog: zap.NewStdLog(a.logger),
	})).Methods(http.MethodGet)

	if a.config.EnableCORS {
		router.Methods(http.MethodOptions).HandlerFunc(preflightHandler)
	}

	return router
}
