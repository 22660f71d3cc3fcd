package main

import (
	"bitwise74/medflow-api/app"
	"bitwise74/medflow-api/aws"
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/db"
	"bitwise74/medflow-api/internal"
	"bitwise74/medflow-api/internal/observability"
	"bitwise74/medflow-api/internal/service"
	"bitwise74/medflow-api/pkg/logger"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

// Set at build time with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	configPath := pflag.StringP("config", "c", "", "path to the config file")
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(err)
	}

	log, err := logger.Setup(cfg.App.LogLevel, cfg.App.Env)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	flush, err := observability.InitSentry(cfg.Sentry.DSN, cfg.App.Env, version)
	if err != nil {
		zap.L().Warn("Sentry disabled", zap.Error(err))
	} else {
		defer flush()
	}

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	conn, err := db.New(cfg)
	if err != nil {
		zap.L().Fatal("Failed to connect to the database", zap.Error(err))
	}

	providers, err := newProviders(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to set up external services", zap.Error(err))
	}

	d := internal.NewDeps(cfg, conn, *providers)

	if err := d.Categories.EnsureDefault(ctx); err != nil {
		zap.L().Fatal("Failed to create the default category", zap.Error(err))
	}

	jobs := cron.New()
	if err := service.ScheduleTokenCleanup(jobs, cfg.Verification.CleanupSchedule, d.UserStore); err != nil {
		zap.L().Fatal("Failed to schedule token cleanup", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Host.Port),
		Handler:           app.NewRouter(d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		zap.L().Info("Server starting", zap.String("addr", srv.Addr), zap.String("version", version))

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zap.L().Fatal("Server stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zap.L().Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zap.L().Error("Forced shutdown", zap.Error(err))
	}
}

// newProviders connects to the external systems enabled in the config.
// Firebase is optional, without it push and session exchange are off.
func newProviders(ctx context.Context, cfg *config.Config) (*internal.Providers, error) {
	p := &internal.Providers{
		Mailer:   service.NewSMTPMailer(cfg),
		Push:     service.NoopSender{},
		Identity: service.NoopIdentity{},
	}

	fb, err := service.NewFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if fb != nil {
		sender, err := service.NewFCMSender(ctx, fb)
		if err != nil {
			return nil, err
		}

		identity, err := service.NewFirebaseIdentity(ctx, fb)
		if err != nil {
			return nil, err
		}

		p.Push = sender
		p.Identity = identity
	} else {
		zap.L().Warn("Firebase is not configured, push notifications and sessions are disabled")
	}

	switch cfg.Storage.Type {
	case "s3":
		s3, err := aws.NewS3(ctx, cfg)
		if err != nil {
			return nil, err
		}
		p.Images = s3
	default:
		local, err := service.NewLocalImages(cfg.Storage.LocalPath, cfg.Storage.PublicURL)
		if err != nil {
			return nil, err
		}
		p.Images = local
	}

	return p, nil
}
