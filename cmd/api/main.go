package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	gopenai "github.com/sashabaranov/go-openai"

	"github.com/bryanwahyu/scamshield/internal/application"
	appai "github.com/bryanwahyu/scamshield/internal/application/ai"
	appauth "github.com/bryanwahyu/scamshield/internal/application/auth"
	appreports "github.com/bryanwahyu/scamshield/internal/application/reports"
	appscans "github.com/bryanwahyu/scamshield/internal/application/scans"
	"github.com/bryanwahyu/scamshield/internal/config"
	"github.com/bryanwahyu/scamshield/internal/domain/ai"
	"github.com/bryanwahyu/scamshield/internal/domain/reports"
	"github.com/bryanwahyu/scamshield/internal/domain/scanerrors"
	"github.com/bryanwahyu/scamshield/internal/domain/scans"
	"github.com/bryanwahyu/scamshield/internal/infra/ai/openai"
	"github.com/bryanwahyu/scamshield/internal/infra/db/memory"
	mysqlp "github.com/bryanwahyu/scamshield/internal/infra/db/mysql"
	"github.com/bryanwahyu/scamshield/internal/infra/db/postgres"
	"github.com/bryanwahyu/scamshield/internal/infra/httpserver"
	"github.com/bryanwahyu/scamshield/internal/infra/session"
	minioStore "github.com/bryanwahyu/scamshield/internal/infra/storage"
	"github.com/bryanwahyu/scamshield/internal/logging"
	"github.com/bryanwahyu/scamshield/internal/middleware"
)

type repositories struct {
	scans   scans.Repository
	errors  scanerrors.Repository
	reports reports.Repository
	db      *sql.DB
}

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	cfg, err := config.Load(path)
	if err != nil {
		slog.Error("config load error", "err", err)
		os.Exit(1)
	}
	logger := logging.Setup(cfg.Log.Level, cfg.Log.Format)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repos, err := openRepositories(ctx, cfg)
	if err != nil {
		return err
	}
	checkers := map[string]middleware.HealthChecker{}
	if repos.db != nil {
		defer repos.db.Close()
		checkers["database"] = &middleware.DatabaseHealthChecker{DB: repos.db}
	}

	policy, err := cfg.Policy()
	if err != nil {
		return err
	}

	// init minio (opsional, untuk bukti laporan)
	var evidence reports.EvidenceStore
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
			return fmt.Errorf("minio init: %w", err)
		}
		store.PresignTTL = cfg.Minio.PresignTTL
		evidence = store
		checkers["evidence"] = store
	}

	issuer, err := session.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TTL)
	if err != nil {
		return err
	}

	scansSvc := &appscans.Service{
		Repo:      repos.scans,
		Errors:    repos.errors,
		Predictor: newPredictor(cfg, policy),
		Policy:    policy,
		Clock:     application.SystemClock{},
		Logger:    logger,
	}
	reportsSvc := &appreports.Service{
		Repo:     repos.reports,
		Evidence: evidence,
		Clock:    application.SystemClock{},
	}

	limiter := middleware.NewRateLimiter(ctx, cfg.Server.RateLimit.Capacity, cfg.Server.RateLimit.RefillRate)

	mux := chi.NewRouter()
	mux.Mount("/", httpserver.NewRouter(httpserver.Deps{
		Scans:       scansSvc,
		Reports:     reportsSvc,
		Auth:        appauth.NewService(issuer),
		Checkers:    checkers,
		Limiter:     limiter,
		CORSOrigins: cfg.Server.CORSOrigins,
		Logger:      logger,
	}))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr, "database", cfg.Database.Driver,
			"model", scansSvc.Predictor != nil, "evidence", evidence != nil)
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
	logger.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(ctx2)
}

func openRepositories(ctx context.Context, cfg *config.Config) (repositories, error) {
	d := cfg.Database
	switch d.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, mysqlp.DSN(d.Host, d.Port, d.User, d.Password, d.Name))
		if err != nil {
			return repositories{}, fmt.Errorf("mysql connect: %w", err)
		}
		if err := mysqlp.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("mysql schema: %w", err)
		}
		return repositories{
			scans:   mysqlp.NewScanRepository(db),
			errors:  mysqlp.NewScanErrorRepository(db),
			reports: mysqlp.NewReportRepository(db),
			db:      db,
		}, nil
	case "postgres":
		db, err := postgres.Connect(ctx, postgres.DSN(d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode))
		if err != nil {
			return repositories{}, fmt.Errorf("postgres connect: %w", err)
		}
		if err := postgres.EnsureSchema(ctx, db); err != nil {
			db.Close()
			return repositories{}, fmt.Errorf("postgres schema: %w", err)
		}
		return repositories{
			scans:   postgres.NewScanRepository(db),
			errors:  postgres.NewScanErrorRepository(db),
			reports: postgres.NewReportRepository(db),
			db:      db,
		}, nil
	default:
		return repositories{
			scans:   memory.NewScanRepository(),
			errors:  memory.NewScanErrorRepository(),
			reports: memory.NewReportRepository(),
		}, nil
	}
}

// newPredictor returns nil when no API key is configured; scans then use the heuristic only.
func newPredictor(cfg *config.Config, policy scans.Policy) ai.Predictor {
	if cfg.OpenAI.APIKey == "" {
		return nil
	}
	labels := make([]string, len(policy.Groups))
	for i, g := range policy.Groups {
		labels[i] = g.Label
	}

	var client *openai.Client
	if cfg.OpenAI.BaseURL != "" {
		oc := gopenai.DefaultConfig(cfg.OpenAI.APIKey)
		oc.BaseURL = cfg.OpenAI.BaseURL
		client = openai.NewClientWithConfig(oc, cfg.OpenAI.Model, labels)
	} else {
		client = openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, labels)
	}
	return appai.NewService(client, cfg.OpenAI.Timeout)
}
