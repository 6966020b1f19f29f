package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"pointpair/internal/alerting"
	"pointpair/internal/config"
	"pointpair/internal/logging"
	"pointpair/internal/scheduler"
	"pointpair/internal/service"
	"pointpair/internal/storage"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logging.Component(logger, "app")}
}

func (a *App) newNotifier() alerting.Notifier {
	if a.Config.Alerting.Enabled {
		cfg := a.Config.Alerting.Webhook
		return alerting.NewWebhookNotifier(cfg.URL, cfg.RequestTimeout, a.Logger)
	}
	return nil
}

func (a *App) openStore(ctx context.Context) (*storage.Store, func(), error) {
	if a.Config.Database.DSN == "" {
		return nil, nil, nil
	}

	pool, err := storage.NewPool(ctx, a.Config.Database)
	if err != nil {
		return nil, nil, err
	}

	store := storage.NewStore(pool)
	closer := func() {
		store.Close()
	}
	return store, closer, nil
}

// Run executes the long-running inbox watcher.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, closeStore, err := a.openStore(ctx)
	if err != nil {
		return err
	}
	if store == nil {
		a.Logger.Warn().Msg("database.dsn not configured; persistence disabled")
	}
	if closeStore != nil {
		defer closeStore()
	}

	sched := scheduler.New(scheduler.Options{
		Interval:     a.Config.Watch.Interval,
		StartupDelay: a.Config.Watch.StartupDelay,
	}, a.Logger)

	notifier := a.newNotifier()

	var configStore storage.ConfigStore
	if store != nil {
		configStore = store
	}

	watcher := service.NewWatcher(a.Config.Watch.Inbox, sched, configStore, notifier, a.Logger)

	a.Logger.Info().Str("inbox", a.Config.Watch.Inbox).Msg("starting inbox watcher")
	err = watcher.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		a.Logger.Error().Err(err).Msg("watcher terminated with error")
		return err
	}

	a.Logger.Info().Msg("inbox watcher stopped")
	return nil
}

// DiscoverOptions configure a one-shot discovery run.
type DiscoverOptions struct {
	Path     string
	Building string
	Save     bool
	JSON     bool
}

// ShowOptions configure the show command.
type ShowOptions struct {
	Building string
}
