package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/trackbot/internal/adapters/driven/codec"
	"github.com/custodia-labs/trackbot/internal/adapters/driven/config/file"
	"github.com/custodia-labs/trackbot/internal/adapters/driven/messenger/telegram"
	"github.com/custodia-labs/trackbot/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/trackbot/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/trackbot/internal/adapters/driven/tracker/youtrack"
	"github.com/custodia-labs/trackbot/internal/adapters/driving/oauth"
	"github.com/custodia-labs/trackbot/internal/adapters/driving/poller"
	"github.com/custodia-labs/trackbot/internal/core/domain"
	"github.com/custodia-labs/trackbot/internal/core/ports/driven"
	"github.com/custodia-labs/trackbot/internal/core/services"
	"github.com/custodia-labs/trackbot/internal/logger"
	"github.com/custodia-labs/trackbot/internal/render"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bot",
	Long: `Run the bot until interrupted.

Serve long-polls Telegram for updates, dispatches each one through the
conversation engine, and hosts the local OAuth callback server used by
/login.

Examples:
  # Run with the default config file (./trackbot.toml)
  trackbot serve

  # Run with an explicit config and verbose logging
  trackbot serve --config /etc/trackbot.toml --verbose`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := file.Load(configPath)
	if err != nil {
		return err
	}

	sessions, closeSessions, err := buildSessionStore(cfg)
	if err != nil {
		return err
	}
	defer closeSessions()

	creds := memory.NewCredentialStore()

	tokenCodec, err := buildCodec(cfg)
	if err != nil {
		return err
	}

	renderer, err := render.New(cfg.Tracker.URL, cfg.TemplateDir)
	if err != nil {
		return fmt.Errorf("loading templates: %w", err)
	}
	defer renderer.Close()
	if cfg.TemplateDir != "" {
		if err := renderer.Watch(); err != nil {
			logger.Warn("watching template dir %s: %v", cfg.TemplateDir, err)
		}
	}

	messenger := telegram.NewClient(cfg.Telegram.Token, cfg.Telegram.APIBaseURL)
	tracker := youtrack.NewClient(cfg.Tracker.URL)

	locks := services.NewUserLocks()
	auth, err := services.NewAuthService(cfg.Auth, creds, locks)
	if err != nil {
		return fmt.Errorf("configuring auth: %w", err)
	}

	executor := services.NewExecutor(messenger, tracker, creds, tokenCodec, renderer, auth, cfg.Tracker.BacklogQuery)
	normalizer := services.NewNormalizer(tokenCodec, cfg.Tracker.PageSize)
	engine := services.NewEngine(cfg.Tracker.StreamField, cfg.Tracker.TypeField)
	dispatcher := services.NewDispatchService(
		normalizer, engine, executor,
		sessions, tracker, creds, locks,
		cfg.Tracker.StreamField, cfg.Tracker.TypeField,
	)

	callback := oauth.NewCallbackServer(cfg.Auth.CallbackAddr, auth)
	if err := callback.Start(); err != nil {
		return fmt.Errorf("starting oauth callback server: %w", err)
	}
	defer func() {
		if err := callback.Stop(); err != nil {
			logger.Warn("stopping oauth callback server: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "trackbot serving (callback on %s), press Ctrl+C to stop\n", callback.Addr())

	err = poller.New(messenger, dispatcher).Run(ctx)
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(cmd.OutOrStdout(), "shutting down")
		return nil
	}
	return err
}

// buildSessionStore picks the session backend from the configuration.
// The returned closer is a no-op for the in-memory backend.
func buildSessionStore(cfg *domain.Config) (driven.SessionStore, func(), error) {
	switch cfg.Storage.Backend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(cfg.Storage.DataDir)
		if err != nil {
			return nil, nil, fmt.Errorf("opening session database: %w", err)
		}
		logger.Info("sessions persisted at %s", store.Path())
		return store, func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing session database: %v", err)
			}
		}, nil
	default:
		return memory.NewSessionStore(), func() {}, nil
	}
}

func buildCodec(cfg *domain.Config) (driven.TokenCodec, error) {
	switch cfg.Codec.Strategy {
	case domain.CodecHandle:
		return codec.NewHandleCodec(cfg.Codec.HandleCapacity)
	default:
		return codec.NewCompactCodec(), nil
	}
}
