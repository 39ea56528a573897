package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrconsole/internal/domain/absence"
	"hrconsole/internal/domain/attendance"
	"hrconsole/internal/domain/audit"
	"hrconsole/internal/domain/core"
	"hrconsole/internal/domain/event"
	"hrconsole/internal/domain/leave"
	"hrconsole/internal/domain/notifications"
	"hrconsole/internal/domain/refresh"
	"hrconsole/internal/platform/config"
	"hrconsole/internal/platform/db"
	"hrconsole/internal/platform/metrics"
	"hrconsole/internal/transport/http/api"
	absencehandler "hrconsole/internal/transport/http/handlers/absence"
	attendancehandler "hrconsole/internal/transport/http/handlers/attendance"
	audithandler "hrconsole/internal/transport/http/handlers/audit"
	authhandler "hrconsole/internal/transport/http/handlers/auth"
	corehandler "hrconsole/internal/transport/http/handlers/core"
	eventhandler "hrconsole/internal/transport/http/handlers/event"
	leavehandler "hrconsole/internal/transport/http/handlers/leave"
	notificationshandler "hrconsole/internal/transport/http/handlers/notifications"
	"hrconsole/internal/transport/http/middleware"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Bus     *refresh.Bus
	Metrics *metrics.Collector
	Router  http.Handler
}

// Deps are the collaborators the router is built from.
type Deps struct {
	DB      db.Queryer
	Tx      core.Transactor
	Ready   func(ctx context.Context) error
	Bus     *refresh.Bus
	Metrics *metrics.Collector
}

// New connects to the database, applies migrations when configured and
// wires every service onto one router.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		version, err := db.Migrate("up", cfg.MigrationsDir, cfg.DatabaseURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations failed: %w", err)
		}
		slog.Info("migrations applied", "version", version)
	}

	if err := db.Seed(ctx, pool, cfg); err != nil {
		pool.Close()
		return nil, fmt.Errorf("seed failed: %w", err)
	}

	app := &App{
		Config:  cfg,
		DB:      pool,
		Bus:     refresh.NewBus(),
		Metrics: metrics.New(),
	}
	app.Router = NewRouter(cfg, Deps{
		DB:      pool,
		Tx:      db.NewTxManager(pool),
		Ready:   pool.Ping,
		Bus:     app.Bus,
		Metrics: app.Metrics,
	})
	return app, nil
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              a.Config.Addr,
		Handler:           a.Router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("hr console listening", "addr", a.Config.Addr, "env", a.Config.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	slog.Info("hr console stopped")
	return nil
}

// NewRouter builds the HTTP surface. Everything under /api/v1 requires an actor.
func NewRouter(cfg config.Config, deps Deps) http.Handler {
	bus := deps.Bus
	if bus == nil {
		bus = refresh.NewBus()
	}

	auditSvc := audit.New(deps.DB)
	coreStore := core.NewStore(deps.DB)
	leaveStore := leave.NewStore(deps.DB)
	attendanceStore := attendance.NewStore(deps.DB)
	eventStore := event.NewStore(deps.DB)

	coreSvc := core.NewService(coreStore, auditSvc, bus)
	coreSvc.Tx = deps.Tx
	leaveSvc := leave.NewService(leaveStore, auditSvc, bus)
	absenceSvc := absence.NewService(absence.NewStore(deps.DB), auditSvc, bus)
	eventSvc := event.NewService(eventStore, auditSvc, bus)
	attendanceSvc := attendance.NewService(attendanceStore, auditSvc, bus)
	notificationsSvc := notifications.New(notifications.StoreSources{
		CoreStore:       coreStore,
		LeaveStore:      leaveStore,
		AttendanceStore: attendanceStore,
		EventStore:      eventStore,
	}, deps.Metrics)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(deps.Metrics))
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.IsProduction()))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if deps.Ready != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := deps.Ready(ctx); err != nil {
				slog.Warn("readiness check failed", "err", err)
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			snapshot := deps.Metrics.Snapshot()
			snapshot["streamSubscribers"] = bus.Subscribers()
			api.Success(w, snapshot, middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.RequireActor)
		r.Use(middleware.MutationRateLimit(cfg.RateLimitPerMin, time.Minute))

		authhandler.NewHandler(coreSvc).RegisterRoutes(r)
		corehandler.NewHandler(coreSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, coreSvc).RegisterRoutes(r)
		absencehandler.NewHandler(absenceSvc, coreSvc).RegisterRoutes(r)
		eventhandler.NewHandler(eventSvc, coreSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc, coreSvc).RegisterRoutes(r)
		notificationshandler.NewHandler(notificationsSvc, bus).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	if cfg.FrontendDir != "" {
		router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})
	}
	return router
}

// NewLogger returns the JSON slog logger used for the process.
func NewLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}

type spaHandler struct {
	staticPath string
	indexPath  string
}

func (h spaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	path := filepath.Join(h.staticPath, r.URL.Path)
	_, err := os.Stat(path)
	if err == nil {
		http.FileServer(http.Dir(h.staticPath)).ServeHTTP(w, r)
		return
	}

	if os.IsNotExist(err) {
		http.ServeFile(w, r, filepath.Join(h.staticPath, h.indexPath))
		return
	}

	http.NotFound(w, r)
}
