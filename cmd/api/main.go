package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/phazegen/hgtscan/internal/application"
	appai "github.com/phazegen/hgtscan/internal/application/ai"
	appanalyses "github.com/phazegen/hgtscan/internal/application/analyses"
	"github.com/phazegen/hgtscan/internal/catalog"
	"github.com/phazegen/hgtscan/internal/config"
	"github.com/phazegen/hgtscan/internal/engine"
	domainanalysis "github.com/phazegen/hgtscan/internal/domain/analysis"
	domainai "github.com/phazegen/hgtscan/internal/domain/ai"
	"github.com/phazegen/hgtscan/internal/domain/analyst"
	"github.com/phazegen/hgtscan/internal/domain/analysiserrors"
	mysqlp "github.com/phazegen/hgtscan/internal/infra/db/mysql"
	postgresp "github.com/phazegen/hgtscan/internal/infra/db/postgres"
	"github.com/phazegen/hgtscan/internal/infra/executor/abricate"
	"github.com/phazegen/hgtscan/internal/infra/httpserver"
	aiopenai "github.com/phazegen/hgtscan/internal/infra/ai/openai"
	minioStore "github.com/phazegen/hgtscan/internal/infra/storage"
	"github.com/phazegen/hgtscan/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config load error: %v", err)
	}

	ctx := context.Background()

	// load signature catalog
	var cat *catalog.Catalog
	if cfg.Catalog.Path != "" {
		cat, err = catalog.Load(cfg.Catalog.Path)
		if err != nil {
			log.Fatalf("catalog load error: %v", err)
		}
	} else {
		cat = catalog.Default()
	}

	// connect database
	var (
		db        *sql.DB
		repo      domainanalysis.Repository
		errRepo   analysiserrors.Repository
		interpRepo analyst.Repository
	)
	switch cfg.Database.Driver {
	case "postgres":
		db, err = postgresp.Connect(ctx, cfg.PostgresDSN())
		if err != nil {
			log.Fatalf("postgres connect error: %v", err)
		}
		repo = postgresp.NewAnalysisRepository(db)
		errRepo = postgresp.NewAnalysisErrorRepository(db)
		interpRepo = postgresp.NewInterpretationRepository(db)
	default:
		db, err = mysqlp.Connect(ctx, cfg.MySQLDSN())
		if err != nil {
			log.Fatalf("mysql connect error: %v", err)
		}
		repo = mysqlp.NewAnalysisRepository(db)
		errRepo = mysqlp.NewAnalysisErrorRepository(db)
		interpRepo = mysqlp.NewInterpretationRepository(db)
	}
	defer db.Close()

	// init minio report archive
	var reports domainanalysis.ReportStore
	if cfg.Minio.Enabled {
		store, err := minioStore.New(ctx,
			cfg.Minio.Endpoint,
			cfg.Minio.Region,
			cfg.Minio.BucketName,
			cfg.Minio.AccessKey,
			cfg.Minio.SecretKey,
			cfg.Minio.UseSSL,
		)
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		reports = store
	}

	// init annotator
	var annotator domainanalysis.Annotator
	if cfg.Annotator.Enabled {
		annotator = abricate.NewRunner(cat, cfg.Annotator.MinIdentity, cfg.Annotator.MinCoverage)
	}

	// init service
	svc := &appanalyses.Service{
		Repo:      repo,
		Errors:    errRepo,
		Engine:    engine.New(cat),
		Reports:   reports,
		Annotator: annotator,
		Databases: cfg.Annotator.Databases,
		Clock:     application.SystemClock{},
	}

	var aiSvc *appai.Service
	if cfg.OpenAI.APIKey != "" {
		var client domainai.Client = aiopenai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
		aiSvc = appai.NewService(client, repo, interpRepo)
	}

	// init router
	limiter := middleware.NewRateLimiter(60, 1)
	mux := chi.NewRouter()
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-API-Key"},
		MaxAge:         300,
	}))
	mux.Use(middleware.LoggingMiddleware)
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(limiter.Middleware)
	mux.Use(middleware.APIKeyAuth(cfg.Server.APIKeys))
	mux.Get("/healthz", middleware.HealthHandler(map[string]middleware.HealthChecker{
		"database": &middleware.DatabaseHealthChecker{DB: db},
	}))
	mux.Mount("/", httpserver.NewRouter(svc, aiSvc))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.Printf("server listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Println("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
