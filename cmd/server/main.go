package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/mmynk/tutorbook/internal/auth"
	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/config"
	"github.com/mmynk/tutorbook/internal/middleware"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/internal/service"
	"github.com/mmynk/tutorbook/internal/storage"
	"github.com/mmynk/tutorbook/internal/storage/memstore"
	"github.com/mmynk/tutorbook/internal/storage/mongostore"
	"github.com/mmynk/tutorbook/internal/storage/rediscache"
	"github.com/mmynk/tutorbook/internal/storage/sqlite"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
	"github.com/mmynk/tutorbook/pkg/logging"
)

func main() {
	configFile := flag.String("config", "", "optional config file (yaml, toml or json)")
	dotEnv := flag.String("env", ".env", "optional .env file")
	flag.Parse()

	cfg, err := config.Load(*configFile, *dotEnv)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	logger := logging.Configure(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if cfg.UsesDevSecret() {
		slog.Warn("Using the development JWT secret; set TUTORBOOK_JWT_SECRET in production")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Store initialized", "backend", cfg.StoreBackend)

	cache, err := openCache(ctx, cfg)
	if err != nil {
		slog.Error("Failed to initialize cache", "backend", cfg.CacheBackend, "error", err)
		os.Exit(1)
	}
	repoOpts := []repository.Option{repository.WithPolicy(cfg.SyncPolicy)}
	if cache != nil {
		defer cache.Close()
		repoOpts = append(repoOpts, repository.WithCache(cache))
	}
	slog.Info("Cache initialized", "backend", cfg.CacheBackend, "policy", cfg.SyncPolicy)

	repo := repository.New(store, repoOpts...)
	prices := service.NewPriceBook(calculator.New(nil, calculator.WithFlatRate(cfg.FlatRate)), repo)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// Metrics sees every call; logging runs after auth so it knows the caller.
	interceptors := connect.WithInterceptors(
		middleware.MetricsInterceptor(),
		middleware.RequireAuth(jwtManager, service.PublicProcedures...),
		middleware.LoggingInterceptor(),
	)

	salaries := service.NewSalaryService(repo, prices)

	mux := http.NewServeMux()

	// Register Connect services
	mux.Handle(apiconnect.NewAuthServiceHandler(
		service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, store, logger),
		interceptors,
	))
	mux.Handle(apiconnect.NewTutorServiceHandler(service.NewTutorService(repo), interceptors))
	mux.Handle(apiconnect.NewLessonServiceHandler(service.NewLessonService(repo, prices), interceptors))
	mux.Handle(apiconnect.NewTemplateServiceHandler(service.NewTemplateService(repo, calculator.NewExpander()), interceptors))
	mux.Handle(apiconnect.NewPricingServiceHandler(service.NewPricingService(repo, prices), interceptors))
	mux.Handle(apiconnect.NewSalaryServiceHandler(salaries, interceptors))

	mux.Handle(service.ExportPath, middleware.RequireAuthHTTP(jwtManager, service.NewExportHandler(salaries, store)))
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	staticDir, err := filepath.Abs(cfg.StaticPath)
	if err != nil {
		slog.Error("Failed to resolve static path", "error", err)
		os.Exit(1)
	}
	slog.Info("Serving static files", "path", staticDir)
	mux.Handle("/", staticHandler(staticDir))

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	handler := h2c.NewHandler(loggingMiddleware(corsMiddleware(mux)), &http2.Server{})

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Shutdown failed", "error", err)
		}
	}()

	slog.Info("Connect server starting", "address", addr, "url", fmt.Sprintf("http://localhost%s", addr))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped")
}

func openStore(ctx context.Context, cfg *config.Config) (storage.Store, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		return memstore.New(), nil
	default:
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return mongostore.New(connectCtx, cfg.MongoURI, cfg.MongoDatabase)
	}
}

// openCache returns nil when caching is disabled.
func openCache(ctx context.Context, cfg *config.Config) (storage.Cache, error) {
	switch cfg.CacheBackend {
	case config.CacheNone:
		return nil, nil
	case config.CacheRedis:
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		return rediscache.New(connectCtx, cfg.CacheRedisAddr)
	default:
		return sqlite.New(cfg.CacheSQLitePath)
	}
}

// staticHandler serves the web client and falls back to index.html for
// unknown paths.
func staticHandler(staticDir string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Unknown procedures must not get the HTML page.
		if apiconnect.IsProcedure(r.URL.Path) {
			http.NotFound(w, r)
			return
		}

		urlPath := r.URL.Path
		if urlPath == "/" {
			urlPath = "/index.html"
		}

		filePath := filepath.Join(staticDir, filepath.Clean(urlPath))
		if _, err := os.Stat(filePath); os.IsNotExist(err) {
			http.ServeFile(w, r, filepath.Join(staticDir, "index.html"))
			return
		}

		http.ServeFile(w, r, filePath)
	})
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms, Content-Disposition")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
