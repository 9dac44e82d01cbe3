package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/goodtune/brightboard/internal/api"
	"github.com/goodtune/brightboard/internal/audio"
	"github.com/goodtune/brightboard/internal/config"
	"github.com/goodtune/brightboard/internal/focus"
	"github.com/goodtune/brightboard/internal/games"
	"github.com/goodtune/brightboard/internal/metrics"
	"github.com/goodtune/brightboard/internal/schedule"
	"github.com/goodtune/brightboard/internal/session"
	"github.com/goodtune/brightboard/internal/systemd"
	"github.com/goodtune/brightboard/web"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start BrightBoard server",
	Long:  `Start the BrightBoard API server, the session guardian poller and the metrics endpoint.`,
	RunE:  runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logger
	logger := setupLogger(cfg.Logging)
	log.Logger = logger

	logger.Info().
		Str("version", version).
		Str("config", configPath).
		Msg("Starting BrightBoard")

	// Check for systemd socket activation
	sdListeners, err := systemd.GetListeners()
	if err != nil {
		return fmt.Errorf("failed to get systemd listeners: %w", err)
	}
	if sdListeners.Activated {
		logger.Info().Msg("Running with systemd socket activation")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize storage and persisted state
	c, err := openCore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close storage")
		}
	}()

	logger.Info().
		Str("type", cfg.Storage.Type).
		Int("cache_size", cfg.Storage.CacheSize).
		Msg("Storage initialized")

	// Session guardian poller and PIN pad
	poller := session.NewPoller(c.guardian, config.ParseDuration(cfg.Session.PollInterval, session.DefaultPollInterval), logger)
	poller.Start()

	scheduler := schedule.Timers{}
	pad := session.NewPinPad(
		c.guardian,
		scheduler,
		config.ParseDuration(cfg.Session.PINConfirmDelay, session.DefaultConfirmDelay),
		logger,
	)

	// Sound cues are synthesized by the UI; the server only traces them.
	cues := audio.NewPlayer(audio.LogSynth{Logger: logger}, func() bool {
		return c.settings.Get().SoundEnabled
	}, logger)

	var ui http.Handler
	if cfg.Server.UIDir != "" {
		ui = web.NewHandler(os.DirFS(cfg.Server.UIDir))
		logger.Info().Str("dir", cfg.Server.UIDir).Msg("Serving UI shell")
	}

	// Initialize API Server
	apiAddr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.APIPort)
	apiServer, err := api.NewServer(api.Config{
		ListenAddr:     apiAddr,
		MaxActivePlays: cfg.Games.MaxActivePlays,
		AdvanceDelay:   config.ParseDuration(cfg.Games.AdvanceDelay, 0),
	}, api.Deps{
		Games:     games.NewRegistry(),
		Ledger:    c.ledger,
		Settings:  c.settings,
		Guardian:  c.guardian,
		PinPad:    pad,
		Navigator: focus.NewNavigator(logger),
		Cues:      cues,
		Scheduler: scheduler,
		UI:        ui,
	}, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize API Server: %w", err)
	}

	// Use systemd socket-activated listener if available
	if sdListeners.Activated && sdListeners.API != nil {
		apiServer.SetListener(sdListeners.API)
	}

	if err := apiServer.Start(); err != nil {
		return fmt.Errorf("failed to start API Server: %w", err)
	}

	// Initialize Metrics Server
	metricsAddr := fmt.Sprintf("%s:%d", cfg.Server.BindAddress, cfg.Server.MetricsPort)
	metricsServer := metrics.NewServer(metricsAddr, logger)

	if sdListeners.Activated && sdListeners.Metrics != nil {
		metricsServer.SetListener(sdListeners.Metrics)
	}

	if err := metricsServer.Start(); err != nil {
		return fmt.Errorf("failed to start Metrics Server: %w", err)
	}

	logger.Info().Msg("BrightBoard startup complete")
	logger.Info().Msgf("API: http://%s", apiAddr)
	logger.Info().Msgf("Metrics: http://%s/metrics", metricsAddr)

	// Notify systemd that we're ready to serve requests
	if err := systemd.NotifyReady(); err != nil {
		logger.Warn().Err(err).Msg("Failed to send systemd ready notification")
	} else {
		logger.Debug().Msg("Sent systemd ready notification")
	}
	go systemd.RunWatchdog(ctx, logger)

	// Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan
	logger.Info().Msg("Shutdown signal received, gracefully stopping...")

	// Notify systemd that we're stopping
	if err := systemd.NotifyStopping(); err != nil {
		logger.Warn().Err(err).Msg("Failed to send systemd stopping notification")
	}

	poller.Stop()
	pad.Close()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := apiServer.Stop(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Error stopping API Server")
	}

	if err := metricsServer.Stop(); err != nil {
		logger.Error().Err(err).Msg("Error stopping Metrics Server")
	}

	logger.Info().Msg("BrightBoard stopped")

	return nil
}
