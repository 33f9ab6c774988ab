package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/cache"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/gravatar"
	"github.com/jon4hz/quotevault/internal/notify"
	"github.com/jon4hz/quotevault/internal/notify/email"
	"github.com/jon4hz/quotevault/internal/notify/ntfy"
	"github.com/jon4hz/quotevault/internal/notify/webpush"
	"github.com/jon4hz/quotevault/internal/remote"
	"github.com/jon4hz/quotevault/internal/repository"
	"github.com/jon4hz/quotevault/internal/scheduler"
)

var (
	// ErrQuoteNotFound is returned when a quote to deliver does not exist locally.
	ErrQuoteNotFound = errors.New("quote not found")
	// ErrNoQuoteOfDay is returned when neither the backend nor the local cache has a quote.
	ErrNoQuoteOfDay = errors.New("no quote of the day available")
	// ErrNoNotifiers is returned when a delivery is requested but no channel is enabled.
	ErrNoNotifiers = errors.New("no notification channel enabled")
	// ErrUnknownNotifier is returned when a requested channel is not enabled.
	ErrUnknownNotifier = errors.New("unknown notification channel")
	// ErrInvalidLink is returned for deep links that cannot be parsed.
	ErrInvalidLink = errors.New("invalid deep link")
)

// Engine ties the repositories to the periodic sync jobs and the delivery channels.
type Engine struct {
	cfg       *config.Config
	db        database.DB
	remote    remote.Store
	scheduler *scheduler.Scheduler
	qod       *cache.QuoteOfDayCache

	quotes      *repository.QuoteRepository
	favorites   *repository.FavoriteRepository
	collections *repository.CollectionRepository
	settings    *repository.SettingsRepository
	auth        *repository.AuthRepository

	notifiers []notify.Notifier
	webpush   *webpush.Client
}

// New creates a new Engine instance on top of the local cache db and the backend store.
func New(cfg *config.Config, db database.DB, store remote.Store) (*Engine, error) {
	sched, err := scheduler.New(cfg.Location())
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	resolver, err := gravatar.New(cfg.Gravatar)
	if err != nil {
		return nil, fmt.Errorf("failed to create gravatar resolver: %w", err)
	}

	cacheCfg := cfg.Cache
	if cacheCfg == nil {
		cacheCfg = &config.CacheConfig{Type: config.CacheTypeMemory}
	}
	qod := cache.NewQuoteOfDayCache(cacheCfg)

	var notifiers []notify.Notifier

	if cfg.Ntfy != nil && cfg.Ntfy.Enabled {
		notifiers = append(notifiers, ntfy.NewClient(cfg.Ntfy))
	}

	if cfg.Email != nil && cfg.Email.Enabled {
		notifiers = append(notifiers, email.New(cfg.Email))
	}

	var webpushClient *webpush.Client
	if cfg.WebPush != nil && cfg.WebPush.Enabled {
		webpushClient = webpush.NewClient(cfg.WebPush, db)
		notifiers = append(notifiers, webpushClient)
	}

	if len(notifiers) == 0 {
		log.Debug("no notification channel configured, daily quotes will not be delivered")
	}

	e := &Engine{
		cfg:         cfg,
		db:          db,
		remote:      store,
		scheduler:   sched,
		qod:         qod,
		quotes:      repository.NewQuoteRepository(db, store, qod, cfg.Location()),
		favorites:   repository.NewFavoriteRepository(db, store),
		collections: repository.NewCollectionRepository(db, store),
		settings:    repository.NewSettingsRepository(db, store),
		auth:        repository.NewAuthRepository(store, resolver),
		notifiers:   notifiers,
		webpush:     webpushClient,
	}

	if err := e.setupJobs(); err != nil {
		return nil, fmt.Errorf("failed to setup jobs: %w", err)
	}

	return e, nil
}

func (e *Engine) Quotes() *repository.QuoteRepository { return e.quotes }

func (e *Engine) Favorites() *repository.FavoriteRepository { return e.favorites }

func (e *Engine) Collections() *repository.CollectionRepository { return e.collections }

func (e *Engine) Settings() *repository.SettingsRepository { return e.settings }

func (e *Engine) Auth() *repository.AuthRepository { return e.auth }

// WebPush returns the web push client, or nil when web push is disabled.
func (e *Engine) WebPush() *webpush.Client { return e.webpush }

// GetScheduler returns the scheduler instance for API access.
func (e *Engine) GetScheduler() *scheduler.Scheduler {
	return e.scheduler
}

// Run starts the engine and all its background jobs.
func (e *Engine) Run(ctx context.Context) error {
	e.scheduler.Start()

	// Wait for context cancellation
	<-ctx.Done()
	return nil
}

// Close stops the engine and cleans up resources.
func (e *Engine) Close() error {
	return e.scheduler.Stop()
}

// Refresh pulls categories, then quotes. A failed category pull does not stop the quote pull.
func (e *Engine) Refresh(ctx context.Context) error {
	var errs []error
	if err := e.quotes.RefreshCategories(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to refresh categories: %w", err))
	}
	if err := e.quotes.RefreshQuotes(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to refresh quotes: %w", err))
	}
	return errors.Join(errs...)
}

// Sync pulls favorites, collections and settings of the signed in user.
func (e *Engine) Sync(ctx context.Context) error {
	if e.remote.CurrentUser() == nil {
		return repository.ErrNotLoggedIn
	}

	var errs []error
	if err := e.favorites.SyncFavorites(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to sync favorites: %w", err))
	}
	if err := e.collections.SyncCollections(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to sync collections: %w", err))
	}
	if err := e.settings.SyncSettings(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to sync settings: %w", err))
	}
	return errors.Join(errs...)
}

// Status is a snapshot of the background state.
type Status struct {
	LoggedIn  bool                `json:"loggedIn"`
	Notifiers []string            `json:"notifiers"`
	Jobs      []scheduler.JobInfo `json:"jobs"`
	Cache     []*cache.Stats      `json:"cache"`
}

// Status returns the job list, cache statistics and enabled channels.
func (e *Engine) Status() Status {
	names := make([]string, 0, len(e.notifiers))
	for _, n := range e.notifiers {
		names = append(names, n.Name())
	}
	return Status{
		LoggedIn:  e.remote.CurrentUser() != nil,
		Notifiers: names,
		Jobs:      e.scheduler.Jobs(),
		Cache:     e.qod.GetStats(),
	}
}
