package cmd

import (
	"github.com/crewdeck/crewdeck/internal/api"
	"github.com/crewdeck/crewdeck/internal/config"
	"github.com/crewdeck/crewdeck/internal/errors"
	"github.com/crewdeck/crewdeck/internal/log"
	"github.com/crewdeck/crewdeck/internal/session"
)

// app bundles the wired config, session manager, and API client shared
// by all commands
type app struct {
	cfg     *config.Config
	session *session.Manager
	client  *api.Client
	logger  *log.Logger
}

// newApp loads configuration, wires the session manager into the API
// client, and hydrates any persisted session.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logCfg := log.DefaultConfig()
	logCfg.Level = log.ParseLevel(cfg.LogLevel)
	logger := log.New(logCfg)
	log.SetDefaultLogger(logger)

	store, err := session.DefaultStore()
	if err != nil {
		return nil, err
	}

	manager := session.NewManager(store, logger)
	client := api.NewClient(cfg.APIURL, manager).WithLogger(logger)
	manager.AttachClient(client)

	if err := manager.Hydrate(); err != nil {
		// A persisted token that no longer decodes is dropped, same as
		// an invalid cookie would be.
		logger.WithError(err).Warn("discarded invalid persisted session")
	}

	return &app{
		cfg:     cfg,
		session: manager,
		client:  client,
		logger:  logger,
	}, nil
}

// requireSession fails commands that need an authenticated user
func (a *app) requireSession() error {
	if !a.session.LoggedIn() {
		return errors.NewNotLoggedInError()
	}
	return nil
}
