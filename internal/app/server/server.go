package server

import (
	"context"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"workpulse/internal/domain/achievements"
	"workpulse/internal/domain/attendance"
	"workpulse/internal/domain/audit"
	"workpulse/internal/domain/auth"
	"workpulse/internal/domain/core"
	"workpulse/internal/domain/leaderboard"
	"workpulse/internal/domain/notifications"
	"workpulse/internal/domain/rewards"
	"workpulse/internal/domain/worklogs"
	"workpulse/internal/platform/config"
	cryptoutil "workpulse/internal/platform/crypto"
	"workpulse/internal/platform/db"
	"workpulse/internal/platform/email"
	"workpulse/internal/platform/jobs"
	"workpulse/internal/platform/metrics"
	"workpulse/internal/transport/http/api"
	achievementshandler "workpulse/internal/transport/http/handlers/achievements"
	attendancehandler "workpulse/internal/transport/http/handlers/attendance"
	audithandler "workpulse/internal/transport/http/handlers/audit"
	authhandler "workpulse/internal/transport/http/handlers/auth"
	corehandler "workpulse/internal/transport/http/handlers/core"
	leaderboardhandler "workpulse/internal/transport/http/handlers/leaderboard"
	notificationshandler "workpulse/internal/transport/http/handlers/notifications"
	rewardshandler "workpulse/internal/transport/http/handlers/rewards"
	worklogshandler "workpulse/internal/transport/http/handlers/worklogs"
	"workpulse/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	DB      *pgxpool.Pool
	Router  http.Handler
	Jobs    *jobs.Service
	Metrics *metrics.Collector
}

// New wires the full application: stores, services, handlers, routes.
// It runs migrations and seeding when the config asks for them.
func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, err
		}
	}

	crypto, err := cryptoutil.New(cfg.DataEncryptionKey)
	if err != nil {
		pool.Close()
		return nil, err
	}

	collector := metrics.New()
	mailer := email.New(cfg)

	coreSvc := core.NewService(core.NewStore(pool))
	authSvc := auth.NewService(auth.NewStore(pool))
	auditSvc := audit.New(pool)
	notifSvc := notifications.New(notifications.NewStore(pool), mailer)
	notifSvc.DefaultFrom = cfg.EmailFrom

	attendanceSvc := attendance.NewService(attendance.NewStore(pool))
	worklogsSvc := worklogs.NewService(worklogs.NewStore(pool))
	rewardsSvc := rewards.NewService(rewards.NewStore(pool))
	achievementsSvc := achievements.NewService(achievements.NewStore(pool), attendanceSvc, worklogsSvc, rewardsSvc)
	leaderboardSvc := leaderboard.NewService(
		leaderboard.NewStore(pool),
		coreSvc,
		attendanceSvc,
		rewardsSvc.Store(),
		achievementsSvc,
	)

	jobsSvc := jobs.New(pool, cfg, leaderboardSvc)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.SecureHeaders(cfg.Environment == "production"))
	router.Use(middleware.BodyLimit(cfg.MaxBodyBytes))
	router.Use(middleware.Auth(cfg.JWTSecret))
	router.Use(middleware.RateLimit(cfg.RateLimitPerMinute, time.Minute))
	if cfg.MetricsEnabled {
		router.Use(recordMetrics(collector))
	}

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if cfg.MetricsEnabled {
		router.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, collector.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authHandler := authhandler.NewHandler(authSvc, cfg.JWTSecret)
		r.Post("/auth/login", authHandler.HandleLogin)
		r.Post("/auth/refresh", authHandler.HandleRefresh)
		r.Post("/auth/logout", authHandler.HandleLogout)
		r.Get("/auth/me", authHandler.HandleMe)

		corehandler.NewHandler(coreSvc).RegisterRoutes(r, coreSvc)
		attendancehandler.NewHandler(attendanceSvc, rewardsSvc, achievementsSvc, coreSvc, notifSvc, collector).RegisterRoutes(r, coreSvc)
		worklogshandler.NewHandler(worklogsSvc, rewardsSvc, achievementsSvc, coreSvc, notifSvc, collector).RegisterRoutes(r, coreSvc)
		rewardshandler.NewHandler(rewardsSvc, coreSvc, notifSvc, auditSvc, crypto, cfg.CertificateDir).RegisterRoutes(r, coreSvc)
		achievementshandler.NewHandler(achievementsSvc, coreSvc, auditSvc).RegisterRoutes(r, coreSvc)
		leaderboardhandler.NewHandler(leaderboardSvc, coreSvc, jobsSvc, collector, auditSvc).RegisterRoutes(r, coreSvc)
		notificationshandler.NewHandler(notifSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r, coreSvc)
	})

	router.Mount("/", spaHandler{staticPath: cfg.FrontendDir, indexPath: "index.html"})

	return &App{
		Config:  cfg,
		DB:      pool,
		Router:  router,
		Jobs:    jobsSvc,
		Metrics: collector,
	}, nil
}

func (a *App) Close() {
	a.DB.Close()
}

func Run() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config invalid: %v", err)
	}

	ctx := context.Background()
	app, err := New(ctx, cfg)
	if err != nil {
		log.Fatalf("startup failed: %v", err)
	}
	defer app.Close()

	app.Jobs.Start(ctx)

	log.Printf("workpulse server listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, app.Router); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func recordMetrics(collector *metrics.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			recorder := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(recorder, r)
			collector.Record(recorder.status, time.Since(start))
		})
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (s *statusWriter) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
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
