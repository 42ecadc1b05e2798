package main

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kbsolver/cdclsat/internal/metrics"
	"github.com/kbsolver/cdclsat/internal/sat"
)

// serveMetrics starts a background HTTP server exposing ctx's Stats as
// Prometheus metrics on addr, returning a stop function. Only ever called
// from this command: internal/sat never opens a listener of its own.
func serveMetrics(ctx *sat.Context, addr string) func() {
	reg := prometheus.NewRegistry()
	reg.MustRegister(metrics.NewCollector(ctx))

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithField("addr", addr).Debugf("metrics server stopped: %s", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
		defer cancel()
		srv.Shutdown(ctx)
	}
}
