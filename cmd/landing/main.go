package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/remotescouts/landing/internal/app"
	"github.com/remotescouts/landing/internal/emailjs"
	"github.com/remotescouts/landing/internal/lead"
	"github.com/remotescouts/landing/internal/observability"
	"github.com/remotescouts/landing/internal/platform/cache"
	"github.com/remotescouts/landing/internal/shared"
	"github.com/remotescouts/landing/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("landing exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "landing_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		return err
	}

	metrics := observability.NewMetrics()
	catalog := lead.DefaultCatalog()

	mailer := emailjs.NewClient(emailjs.Config{
		BaseURL:    cfg.EmailJSBaseURL,
		PublicKey:  cfg.EmailJSPublicKey,
		PrivateKey: cfg.EmailJSPrivateKey,
		Timeout:    cfg.EmailJSTimeout,
		Rate:       cfg.EmailJSRate,
		Burst:      cfg.EmailJSBurst,
	})
	leadService := lead.NewService(
		catalog,
		lead.NewPayloadBuilder(catalog, cfg.LeadRecipients, cfg.Location()),
		mailer,
		lead.ServiceConfig{ServiceID: cfg.EmailJSServiceID, TemplateID: cfg.EmailJSTemplateID},
		logger,
		lead.WithRecorder(metrics),
	)
	leadHandler := lead.NewHandler(lead.HandlerConfig{
		Logger:      logger,
		Catalog:     catalog,
		Store:       lead.NewStore(catalog, logger),
		Service:     leadService,
		Templates:   templates,
		CSRFManager: csrfManager,
		SubmitLimit: cfg.SubmitRateLimit,
	})

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		LeadHandler:    leadHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
