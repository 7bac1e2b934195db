package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/karhulabs/demtiff/geotiff"
)

const appName = "dem-service"

var (
	httpAPIServer     *http.Server
	httpMetricsServer *http.Server

	requestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "demtiff_http_requests_total",
		Help: "Number of HTTP requests handled, by endpoint and status.",
	}, []string{"endpoint", "status"})

	rasterLoadSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "demtiff_raster_load_seconds",
		Help:    "Time spent loading and decoding a raster source.",
		Buckets: []float64{0.01, 0.1, 0.3, 0.6, 1, 3, 6, 9},
	})
)

// Config holds all configuration for the application, loaded from environment variables.
type Config struct {
	LogLevel          string        `env:"LOG_LEVEL" envDefault:"INFO"`
	HTTPPort          int           `env:"HTTP_PORT" envDefault:"8080"`
	MetricsPort       int           `env:"METRICS_PORT" envDefault:"8888"`
	Source            string        `env:"TIFF_SOURCE,required"`
	CacheMaxSize      int64         `env:"CACHE_MAX_SIZE" envDefault:"16"`
	CacheItemsToPrune uint32        `env:"CACHE_ITEMS_TO_PRUNE" envDefault:"4"`
	CacheTTL          time.Duration `env:"CACHE_TTL" envDefault:"10m"`
}

func main() {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("failed to parse config: %+v\n", err)
		os.Exit(1)
	}

	logger := createLogger(cfg, appName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	g, ctx := errgroup.WithContext(ctx)

	store := geotiff.NewStore(cfg.CacheMaxSize, cfg.CacheItemsToPrune, cfg.CacheTTL)

	// Warm the configured source so a broken one fails the process at startup.
	logger.Info("loading raster source", "source", cfg.Source)
	start := time.Now()
	tiff, err := store.Load(cfg.Source)
	if err != nil {
		logger.Error("failed to load raster source, shutting down", "error", err)
		os.Exit(1)
	}
	rasterLoadSeconds.Observe(time.Since(start).Seconds())
	logger.Info("raster loaded", "width", tiff.Width(), "length", tiff.Length(), "duration", time.Since(start))

	g.Go(func() error {
		return startMetricsServer(logger, cfg)
	})
	g.Go(func() error {
		return startAPIServer(logger, cfg, store)
	})

	select {
	case <-interrupt:
		slog.Warn("received termination signal, starting graceful shutdown")
		cancel()
	case <-ctx.Done():
		slog.Warn("context cancelled, starting graceful shutdown")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if httpMetricsServer != nil {
		if err := httpMetricsServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP metrics server shutdown error", "error", err)
		}
	}
	if httpAPIServer != nil {
		if err := httpAPIServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("HTTP API server shutdown error", "error", err)
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server group returned an error", "error", err)
		os.Exit(2)
	}
}

func startMetricsServer(logger *slog.Logger, cfg Config) error {
	addr := fmt.Sprintf(":%d", cfg.MetricsPort)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	prometheus.MustRegister(requestsTotal, rasterLoadSeconds)

	httpMetricsServer = &http.Server{Addr: addr, Handler: mux}
	logger.Info("HTTP metrics server listening", "address", addr)

	if err := httpMetricsServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("HTTP metrics server failed: %w", err)
	}
	return nil
}

func startAPIServer(logger *slog.Logger, cfg Config, store *geotiff.Store) error {
	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	mux := http.NewServeMux()

	mux.HandleFunc("/value/", getValueHandler(store, cfg.Source))
	mux.HandleFunc("/info", getInfoHandler(store, cfg.Source))
	mux.HandleFunc("/geokeys", getGeoKeysHandler(store, cfg.Source))

	httpAPIServer = &http.Server{Addr: addr, Handler: mux}
	logger.Info("HTTP API server listening", "address", addr)

	if err := httpAPIServer.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("HTTP API server failed: %w", err)
	}
	return nil
}

func getValueHandler(store *geotiff.Store, source string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pathParts := strings.Split(strings.TrimPrefix(r.URL.Path, "/value/"), "/")
		if len(pathParts) != 2 {
			countAndError(w, "value", "Invalid URL format", http.StatusBadRequest)
			return
		}
		x, err := strconv.Atoi(pathParts[0])
		if err != nil {
			countAndError(w, "value", "Invalid column index", http.StatusBadRequest)
			return
		}
		y, err := strconv.Atoi(pathParts[1])
		if err != nil {
			countAndError(w, "value", "Invalid row index", http.StatusBadRequest)
			return
		}

		tiff, err := store.Load(source)
		if err != nil {
			countAndError(w, "value", fmt.Sprintf("Could not load raster: %v", err), http.StatusInternalServerError)
			return
		}
		value, err := tiff.ValueAt(x, y)
		if err != nil {
			countAndError(w, "value", fmt.Sprintf("Could not retrieve value: %v", err), http.StatusNotFound)
			return
		}

		requestsTotal.WithLabelValues("value", "200").Inc()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{"x": x, "y": y, "value": value})
	}
}

func getInfoHandler(store *geotiff.Store, source string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tiff, err := store.Load(source)
		if err != nil {
			countAndError(w, "info", fmt.Sprintf("Could not load raster: %v", err), http.StatusInternalServerError)
			return
		}
		requestsTotal.WithLabelValues("info", "200").Inc()
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, tiff.String())
	}
}

func getGeoKeysHandler(store *geotiff.Store, source string) http.HandlerFunc {
	type keyResponse struct {
		Key   string `json:"key"`
		Value uint16 `json:"value"`
	}
	return func(w http.ResponseWriter, r *http.Request) {
		tiff, err := store.Load(source)
		if err != nil {
			countAndError(w, "geokeys", fmt.Sprintf("Could not load raster: %v", err), http.StatusInternalServerError)
			return
		}
		dir, err := tiff.Directory().GeoKeys()
		if err != nil {
			countAndError(w, "geokeys", fmt.Sprintf("Could not decode geo keys: %v", err), http.StatusNotFound)
			return
		}
		keys := make([]keyResponse, len(dir.Keys))
		for i, k := range dir.Keys {
			keys[i] = keyResponse{Key: k.ID.String(), Value: k.Value}
		}
		requestsTotal.WithLabelValues("geokeys", "200").Inc()
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(keys)
	}
}

func countAndError(w http.ResponseWriter, endpoint, msg string, status int) {
	requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
	http.Error(w, msg, status)
}

func createLogger(cfg Config, appName string) *slog.Logger {
	var programLevel slog.Level
	switch strings.ToUpper(cfg.LogLevel) {
	case "DEBUG":
		programLevel = slog.LevelDebug
	case "INFO":
		programLevel = slog.LevelInfo
	case "WARN":
		programLevel = slog.LevelWarn
	case "ERROR":
		programLevel = slog.LevelError
	default:
		programLevel = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     programLevel,
		AddSource: programLevel <= slog.LevelDebug,
	}).WithAttrs([]slog.Attr{slog.String("app", appName)})
	return slog.New(handler)
}
