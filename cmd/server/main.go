package main

import (
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"healthflow/internal/config"
	"healthflow/internal/hospital"
	"healthflow/internal/platform/telegram"
	"healthflow/internal/report"
	"healthflow/internal/triage"
)

func main() {
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// 1. Infrastructure
	var db *sql.DB
	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err == nil {
			err = db.Ping()
		}
		if err == nil {
			break
		}
		logger.Info("waiting for database", "attempt", i+1)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		logger.Warn("could not connect to database, audit persistence disabled", "error", err)
		db = nil
	} else {
		logger.Info("connected to database")
		runMigrations(cfg.DatabaseURL, logger)
	}

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Warn("invalid redis url, snapshot store disabled", "error", err)
		} else {
			rdb = redis.NewClient(opts)
		}
	}

	// 2. Triage pipeline
	catalog, err := loadCatalog(cfg.CatalogPath)
	if err != nil {
		logger.Error("failed to load symptom catalog", "error", err)
		os.Exit(1)
	}

	classifier := triage.UnavailableClassifier()
	if cfg.ClassifierURL != "" {
		classifier = triage.NewHTTPClassifier(cfg.ClassifierURL, 5*time.Second)
		logger.Info("classifier fallback enabled", "url", cfg.ClassifierURL)
	} else {
		logger.Info("classifier fallback disabled, rules only")
	}

	composer := triage.NewComposer(triage.NewSafetyOverride(), triage.NewMatcher(catalog), classifier, logger)

	// 3. Hospital recommendation
	dir, err := hospital.LoadDirectory(cfg.CoordinatesPath)
	if err != nil {
		logger.Error("failed to load hospital coordinates", "error", err)
		os.Exit(1)
	}

	feed := hospital.NewFeedClient(cfg.FeedURL, 10*time.Second)
	cache := hospital.NewCache(cfg.FeedTTL)
	ranker := hospital.NewRanker(hospital.NewResolver())
	var store *hospital.Store
	if rdb != nil {
		store = hospital.NewStore(rdb)
	}
	hospitalSvc := hospital.NewService(feed, cache, dir, ranker, store, logger)

	// 4. Services
	var reportSvc triage.ReportService
	if cfg.TelegramToken != "" {
		if cfg.OnCallChatID == 0 {
			logger.Warn("ON_CALL_CHAT_ID is not set, emergency alerts will not be delivered")
		}
		tgClient := telegram.NewClient(cfg.TelegramToken)
		reportSvc = report.NewService(tgClient, cfg.OnCallChatID, logger)
	}

	var repo triage.Repository
	if db != nil {
		repo = triage.NewRepository(db)
	}

	triageSvc := triage.NewService(composer, repo, hospitalSvc, reportSvc, cfg.DefaultLat, cfg.DefaultLng, logger)

	triageHandler := triage.NewHandler(triageSvc)
	hospitalHandler := hospital.NewHandler(hospitalSvc)

	// 5. Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS for frontend
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization")
			if r.Method == "OPTIONS" {
				return
			}
			next.ServeHTTP(w, r)
		})
	})

	r.Route("/api", func(r chi.Router) {
		triage.RegisterRoutes(r, triageHandler)
		hospital.RegisterRoutes(r, hospitalHandler)
	})

	logger.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadCatalog(path string) (*triage.Catalog, error) {
	if path == "" {
		return triage.DefaultCatalog()
	}
	return triage.LoadCatalog(path)
}

func runMigrations(databaseURL string, logger *slog.Logger) {
	m, err := migrate.New("file://migrations", databaseURL)
	if err != nil {
		logger.Warn("migration init failed", "error", err)
		return
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Warn("migration up failed", "error", err)
		return
	}
	logger.Info("migrations applied")
}
