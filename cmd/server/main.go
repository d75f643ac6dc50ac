// @title                       ISMS API
// @version                     1.0.0
// @description                 Staff monitoring backend: accounts, reports, audit logs, tasks and desktop-agent activity.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/nnsolutions/isms/internal/api"
	"github.com/nnsolutions/isms/internal/api/handler"
	"github.com/nnsolutions/isms/internal/api/middleware"
	"github.com/nnsolutions/isms/internal/core/domain"
	"github.com/nnsolutions/isms/internal/core/service"
	"github.com/nnsolutions/isms/internal/infrastructure/config"
	mongodb "github.com/nnsolutions/isms/internal/infrastructure/db/mongo"
	redisdb "github.com/nnsolutions/isms/internal/infrastructure/db/redis"
	"github.com/nnsolutions/isms/internal/infrastructure/export"
	"github.com/nnsolutions/isms/internal/infrastructure/queue"
	"github.com/nnsolutions/isms/internal/infrastructure/storage"
	"github.com/nnsolutions/isms/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	log := logger.Init(logger.Options{
		Level:   os.Getenv("LOG_LEVEL"),
		Pretty:  os.Getenv("ENV") != "production",
		Service: "isms-api",
	})
	cfg := config.LoadServer(log)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("Server stopped")
	}
	log.Info().Msg("Server stopped gracefully")
}

func run(cfg *config.Server, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting ISMS API")

	// --- Storage ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(dctx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	admins := mongodb.NewAdminRepository(db)
	users := mongodb.NewUserRepository(db)
	logs := mongodb.NewLogRepository(db)
	reports := mongodb.NewReportRepository(db)
	tasks := mongodb.NewTaskRepository(db)
	activities := mongodb.NewActivityRepository(db)

	if err := mongodb.EnsureIndexes(ctx, admins, users, logs, reports, tasks); err != nil {
		return fmt.Errorf("ensure indexes: %w", err)
	}

	// --- Services ---
	locker := redisdb.NewLocker(rdb)
	authService := service.NewAuthService(admins, users, logs, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	if _, err := authService.SeedSuperAdmin(ctx, cfg.SuperAdminPassword); err != nil {
		return fmt.Errorf("seed superadmin: %w", err)
	}

	activityService := service.NewActivityService(
		activities,
		logs,
		storage.NewScreenshotDir(cfg.ScreenshotDir),
		redisdb.NewDedupChecker(rdb),
		logger.Component("activity"),
	)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, logger.Component("dispatcher"))
	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateWindow)

	e := api.NewRouter(api.Services{
		Auth:          authService,
		Admins:        service.NewAccountService(domain.KindAdmin, admins, logs, locker, logger.Component("accounts")),
		Users:         service.NewAccountService(domain.KindUser, users, logs, locker, logger.Component("accounts")),
		Reports:       service.NewReportService(reports, logs, export.NewXLSX(), logger.Component("reports")),
		Logs:          service.NewLogService(logs),
		Tasks:         service.NewTaskService(tasks),
		Mentors:       service.NewMentorService(admins, logs),
		Notifications: service.NewNotificationService(redisdb.NewInbox(rdb)),
		Activity:      dispatcher,
	}, api.Options{
		JWTSecret:    cfg.JWTSecret,
		LoginLimiter: loginLimiter,
		Readiness: map[string]handler.DependencyCheck{
			"mongodb": func(ctx context.Context) error { return mongoClient.Ping(ctx, nil) },
			"redis":   redisdb.Readiness(rdb),
		},
		Registerer: prometheus.DefaultRegisterer,
		Log:        logger.Component("http"),
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)
	dispatcher.Start(gctx)
	loginLimiter.Cleanup(gctx, cfg.LoginRateWindow)

	g.Go(func() error {
		log.Info().Str("addr", ":"+cfg.Port).Msg("Server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down server")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(sctx)
	})

	return g.Wait()
}
