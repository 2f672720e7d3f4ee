package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/k0nxt3d/pycleaner/internal/api"
	"github.com/k0nxt3d/pycleaner/internal/browser"
	"github.com/k0nxt3d/pycleaner/internal/cleaner"
	"github.com/k0nxt3d/pycleaner/internal/logging"
	"github.com/k0nxt3d/pycleaner/internal/scanner"
	"github.com/k0nxt3d/pycleaner/internal/version"
)

// NewServeCommand creates the serve subcommand.
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the local web interface",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runServe(configPath)
		},
	}
}

func runServe(configPath string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, logCloser := logging.New(logging.Config{
		Level:          cfg.Logging.Level,
		Format:         cfg.Logging.Format,
		FilePath:       cfg.Logging.FilePath,
		FileMaxSizeMB:  cfg.Logging.FileMaxSizeMB,
		FileMaxFiles:   cfg.Logging.FileMaxFiles,
		FileMaxAgeDays: cfg.Logging.FileMaxAgeDays,
	})
	if logCloser != nil {
		defer logCloser.Close() //nolint:errcheck
	}
	slog.SetDefault(logger)

	scannerService := scanner.NewService(logger, cfg.Scanner.MaxResults)
	cleanerService := cleaner.NewService(logger)

	router := api.NewRouter(api.RouterDeps{
		Scanner:    scannerService,
		Cleaner:    cleanerService,
		Logger:     logger,
		MaxResults: cfg.Scanner.MaxResults,
	})

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.ListenAddr()
	srv := &http.Server{
		Addr:        addr,
		Handler:     router.Handler(),
		ReadTimeout: 15 * time.Second,
		// No write timeout: scanning a large root can legitimately take minutes.
		IdleTimeout: 60 * time.Second,
	}

	logger.Info("starting pycleaner",
		slog.String("version", version.Version),
		slog.String("commit", version.Commit),
	)

	go func() {
		logger.Info("server starting", slog.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	url := "http://" + addr
	fmt.Printf("[+] PyCleaner v%s\n", version.Version)
	fmt.Printf("[+] Listening on %s\n", url)
	fmt.Println("[+] Press CTRL+C to stop.")

	if cfg.Server.OpenBrowser {
		go browser.Open(logger, url)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
