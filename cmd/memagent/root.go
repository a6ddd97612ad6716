package main

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/illing1230/ai-memory-agent-sub000/api"
	"github.com/illing1230/ai-memory-agent-sub000/cache"
	"github.com/illing1230/ai-memory-agent-sub000/config"
	"github.com/illing1230/ai-memory-agent-sub000/state"
)

// app wires the SDK pieces for the CLI commands.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	session *state.SessionStore
	layout  *state.LayoutStore
	cache   *cache.Cache
	client  *api.Client
}

func newApp(verbose bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, fmt.Errorf("build logger: %w", err)
		}
	}

	session, err := state.OpenSession(filepath.Join(cfg.State.Dir, "session.json"))
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	layout, err := state.OpenLayout(filepath.Join(cfg.State.Dir, "layout.json"))
	if err != nil {
		return nil, fmt.Errorf("open layout store: %w", err)
	}

	qc, err := cache.New(cfg.API.CacheTTL(), cache.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("create query cache: %w", err)
	}

	client := api.NewClient(cfg.API.BaseURL, session,
		api.WithHTTPClient(&http.Client{Timeout: cfg.API.Timeout()}),
		api.WithCache(qc),
		api.WithLogger(logger),
	)

	return &app{
		cfg:     cfg,
		logger:  logger,
		session: session,
		layout:  layout,
		cache:   qc,
		client:  client,
	}, nil
}

// requireLogin fails fast on commands that need a session.
func (a *app) requireLogin() error {
	if !a.session.IsAuthenticated() {
		return fmt.Errorf("not logged in (run: memagent login)")
	}
	if a.session.TokenExpired() {
		return fmt.Errorf("session expired (run: memagent login)")
	}
	return nil
}

func newRootCmd() (*cobra.Command, error) {
	var verbose bool
	var a *app

	root := &cobra.Command{
		Use:           "memagent",
		Short:         "Client for the memory agent collaboration backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			a, err = newApp(verbose)
			return err
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLoginCmd(&a),
		newLogoutCmd(&a),
		newWhoamiCmd(&a),
		newRoomsCmd(&a),
		newChatCmd(&a),
		newMemoriesCmd(&a),
		newDocsCmd(&a),
		newSharesCmd(&a),
		newAgentsCmd(&a),
		newAdminCmd(&a),
		newPrefetchCmd(&a),
		newUICmd(&a),
	)
	return root, nil
}
