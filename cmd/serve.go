package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/phauna/phaunabot/internal/bot"
	"github.com/phauna/phaunabot/internal/calendar"
	"github.com/phauna/phaunabot/internal/config"
	"github.com/phauna/phaunabot/internal/google"
	"github.com/phauna/phaunabot/internal/instrumentation"
	"github.com/phauna/phaunabot/internal/logging"
	"github.com/phauna/phaunabot/internal/server"
	"github.com/phauna/phaunabot/internal/telegram"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		debugMode   bool
		httpAddr    string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the Telegram bot",
		Long: `Run the Telegram bot: long-poll for chat messages, dispatch the
calendar commands, and serve the Google OAuth consent flow over HTTP.

Configuration comes from environment variables:
  TELEGRAM_TOKEN               Bot token issued by BotFather (required)
  ACCEPTED_TELEGRAM_CHAT_IDS   Comma-separated chat ID allow-list (required)
  GOOGLE_CLIENT_ID             Google OAuth client ID
  GOOGLE_CLIENT_SECRET         Google OAuth client secret
  PHAUNABOT_BASE_URL           Public base URL for the OAuth redirect
  PHAUNABOT_UTC_OFFSET_HOURS   Offset applied to user-entered times
  PHAUNABOT_TIMEZONE           IANA zone attached to created events
  PHAUNABOT_CALENDAR_ID        Calendar to read and write

Until the consent flow at /auth/google/start has been completed once,
calendar commands answer with a failure message; everything else works.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("http-addr") {
				cfg.HTTPAddr = httpAddr
			}
			if cmd.Flags().Changed("metrics-addr") {
				cfg.MetricsAddr = metricsAddr
			}

			return runServe(cfg, debugMode)
		},
	}

	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":3002", "Auth/health HTTP server address. Can also use PHAUNABOT_HTTP_ADDR env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use PHAUNABOT_METRICS_ADDR env var.")

	return cmd
}

func runServe(cfg config.Config, debugMode bool) error {
	logger := logging.Init(debugMode)

	ctx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig(version))
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down instrumentation", logging.Err(err))
		}
	}()

	oauth := google.NewOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.RedirectURL())
	if !oauth.HasToken() {
		logger.Warn("no Google OAuth token stored; visit the consent flow to enable calendar commands",
			"url", cfg.BaseURL+"/auth/google/start")
	}

	cal := calendar.NewClient(oauth, cfg.CalendarID, cfg.TimeZone)

	tg, err := telegram.NewClient(cfg.TelegramToken, logger)
	if err != nil {
		return err
	}
	logger.Info("connected to Telegram", "username", tg.Username())

	dispatcher := bot.NewDispatcher(bot.Config{
		Replier:        tg,
		Calendar:       cal,
		AllowedChatIDs: cfg.AllowedChatIDs,
		UTCOffsetHours: cfg.UTCOffsetHours,
		Logger:         logger,
		Metrics:        provider.Metrics(),
	})

	health := server.NewHealthChecker()
	authServer := server.NewAuthServer(oauth, health, logger)

	serverErr := make(chan error, 2)
	go func() {
		if err := authServer.Start(cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- fmt.Errorf("auth server: %w", err)
		}
	}()

	var metricsServer *server.MetricsServer
	if provider.Enabled() {
		metricsServer = server.NewMetricsServer(cfg.MetricsAddr, logger)
		go func() {
			if err := metricsServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serverErr <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	health.SetReady(true)

	pollDone := make(chan struct{})
	go func() {
		defer close(pollDone)
		tg.Poll(ctx, dispatcher.HandleMessage)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-serverErr:
		cancel()
		<-pollDone
		shutdownServers(authServer, metricsServer, logger)
		return err
	}

	<-pollDone
	shutdownServers(authServer, metricsServer, logger)
	return nil
}

func shutdownServers(authServer *server.AuthServer, metricsServer *server.MetricsServer, logger *slog.Logger) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := authServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("failed to shut down auth server", logging.Err(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shut down metrics server", logging.Err(err))
		}
	}
}
