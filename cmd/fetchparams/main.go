package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/MarkLTZ/bitcoin/app/fetchparams"
	"github.com/MarkLTZ/bitcoin/infrastructure/logger"
	"github.com/MarkLTZ/bitcoin/infrastructure/metrics"
	"github.com/MarkLTZ/bitcoin/infrastructure/os/signal"
	"github.com/MarkLTZ/bitcoin/util/panics"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsShutdownTimeout = 5 * time.Second

func main() {
	defer panics.HandlePanic(log, nil)

	cfg, err := parseConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing command-line arguments: %s\n", err)
		os.Exit(1)
	}
	defer logger.BackendLog.Close()

	registry := prometheus.NewRegistry()
	fetcherMetrics := metrics.NewMetrics(registry)
	if cfg.MetricsListen != "" {
		stopMetrics := serveMetrics(cfg.MetricsListen, registry)
		defer stopMetrics()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()
	interrupt := signal.InterruptListener()
	spawn(func() {
		select {
		case <-interrupt:
			cancel()
		case <-ctx.Done():
		}
	})

	params := cfg.NetParams()
	log.Infof("Making sure the %s zk-SNARK parameters are in %s", params.Name, cfg.ParamsDir)
	fetcher := fetchparams.New(&http.Client{}, fetcherMetrics)
	err = fetcher.EnsureParams(ctx, params, cfg.ParamsDir)
	if err != nil {
		log.Errorf("Error fetching the parameters: %+v", err)
		logger.BackendLog.Close()
		os.Exit(1)
	}
	log.Infof("All parameters are in place")
}

// serveMetrics serves the registry on address until the returned function is called.
func serveMetrics(address string, registry *prometheus.Registry) func() {
	metricsServer := &http.Server{
		Addr:    address,
		Handler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	}
	spawn(func() {
		log.Infof("Serving metrics on %s", address)
		err := metricsServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("Metrics server stopped: %s", err)
		}
	})
	return func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		err := metricsServer.Shutdown(shutdownCtx)
		if err != nil {
			log.Warnf("Error shutting down the metrics server: %s", err)
		}
	}
}
