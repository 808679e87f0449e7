package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/five82/settingsync/internal/api"
	"github.com/five82/settingsync/internal/auth"
	"github.com/five82/settingsync/internal/config"
	"github.com/five82/settingsync/internal/logging"
	"github.com/five82/settingsync/internal/prefs"
	"github.com/five82/settingsync/internal/state"
	"github.com/five82/settingsync/internal/syncer"
	"github.com/five82/settingsync/internal/ui"
)

// Options configure the settingsync application.
type Options struct {
	ConfigPath string
	Offline    bool        // never talk to the server
	Verbose    bool        // debug logging
	LogToFile  bool        // send logs to the configured log file instead of stderr
	Logger     *zap.Logger // overrides the logger built from the options above
}

// Session is a fully wired synchronizer plus its collaborators.
type Session struct {
	Config config.Config
	Logger *zap.Logger
	Token  *auth.Token
	Auth   auth.Signal
	Client *api.Client
	Store  *state.Store
	Query  *state.Query
	Sync   *syncer.Synchronizer
}

// Open loads configuration and wires storage, auth, the API client, the
// fetch query and the synchronizer.
func Open(ctx context.Context, opts Options) (*Session, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	logger := opts.Logger
	if logger == nil {
		logPath := ""
		if opts.LogToFile {
			logPath = cfg.LogPath
		}
		logger, err = logging.New(logPath, opts.Verbose)
		if err != nil {
			return nil, err
		}
	}

	token := auth.NewToken(cfg.Token)
	if cfg.Token == "" {
		token, err = auth.LoadToken(cfg.TokenFile)
		if err != nil {
			return nil, fmt.Errorf("load token: %w", err)
		}
	}
	var signal auth.Signal = token
	if opts.Offline {
		signal = auth.Static(false)
	}

	client, err := api.NewClient(cfg.APIURL, token)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}

	store := &state.Store{}
	query := state.NewQuery(store, client.FetchSettings, signal.Authenticated, logger.Named("query"))

	sync, err := syncer.New(ctx, syncer.Options{
		Storage: prefs.File{Path: cfg.SettingsPath},
		Saver:   client,
		Auth:    signal,
		Remote:  query,
		Delay:   cfg.Debounce,
		Logger:  logger,
	})
	if err != nil {
		return nil, fmt.Errorf("init synchronizer: %w", err)
	}

	logger.Debug("session opened",
		zap.String("api_url", cfg.APIURL),
		zap.String("settings_path", cfg.SettingsPath),
		zap.Bool("authenticated", signal.Authenticated()),
	)

	return &Session{
		Config: cfg,
		Logger: logger,
		Token:  token,
		Auth:   signal,
		Client: client,
		Store:  store,
		Query:  query,
		Sync:   sync,
	}, nil
}

// Close tears down the synchronizer and flushes the logger.
func (s *Session) Close() {
	if s == nil {
		return
	}
	s.Sync.Close()
	_ = s.Logger.Sync()
}

// Run boots the settings drawer until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	opts.LogToFile = true

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess, err := Open(ctx, opts)
	if err != nil {
		return err
	}
	defer sess.Close()

	// Start background refresh; the first pass runs immediately.
	StartPoller(ctx, sess.Query, sess.Config.RefreshEvery, sess.Logger)

	return ui.Run(ui.Options{
		Context: ctx,
		Sync:    sess.Sync,
		LogPath: sess.Config.LogPath,
	})
}
