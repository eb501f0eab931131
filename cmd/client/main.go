package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/client/tui"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/config"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/logger"
	"github.com/JhonnyASoares/Crud-ionic-laravel/internal/validation"
)

func main() {
	cfg := config.LoadConfig()

	// The UI owns the terminal, so logs go to a file.
	appLogger, closer, err := logger.NewFile(cfg, cfg.ClientLogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open log file %s: %v\n", cfg.ClientLogFile, err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	api := client.NewAPIClient(cfg.ClientAPIURL, cfg.ClientTimeout, appLogger)

	appLogger.Info("🚀 [Client] Starting user client...", "api", cfg.ClientAPIURL)

	validator, err := loadValidator(ctx, api, cfg, appLogger)
	if err != nil {
		appLogger.Error("❌ Failed to load validation rules", "error", err)
		fmt.Fprintf(os.Stderr, "cannot load validation rules: %v\n", err)
		os.Exit(1)
	}

	if err := tui.Run(ctx, api, validator, appLogger); err != nil {
		appLogger.Error("❌ Client stopped with error", "error", err)
		fmt.Fprintf(os.Stderr, "client error: %v\n", err)
		os.Exit(1)
	}
	appLogger.Info("👋 [Client] User client stopped")
}

// loadValidator prefers the server's rule document so both sides agree, and
// falls back to the embedded copy when the server cannot provide it.
func loadValidator(ctx context.Context, api *client.APIClient, cfg *config.Config, log *slog.Logger) (*validation.Validator, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	res, err := api.Schema(fetchCtx)
	switch {
	case err != nil:
		log.Warn("⚠️ [Client] Could not fetch rules, using embedded copy", "error", err)
		return validation.NewDefault(cfg.ValidationLocale)
	case !res.OK:
		log.Warn("⚠️ [Client] Server refused rules, using embedded copy", "message", res.Error)
		return validation.NewDefault(cfg.ValidationLocale)
	}
	return validation.New(&res.Value, cfg.ValidationLocale)
}
