package app

import (
	"fmt"
	"os"

	"github.com/notepid/flockr/internal/channel"
	"github.com/notepid/flockr/internal/clock"
	"github.com/notepid/flockr/internal/config"
	"github.com/notepid/flockr/internal/db"
	"github.com/notepid/flockr/internal/user"
)

type App struct {
	ConfigPath string
	Config     *config.Config
	DBPath     string
	DB         *db.DB

	Users    *user.Repo
	Sessions *user.Sessions
	Channels *channel.Repo
}

func New(configPath string) (*App, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}

	if err := os.MkdirAll(cfg.Paths.Data, 0755); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	database, err := db.Open(cfg.Paths.Database)
	if err != nil {
		return nil, nil, err
	}

	users := user.NewRepo(database.DB)
	a := &App{
		ConfigPath: configPath,
		Config:     cfg,
		DBPath:     cfg.Paths.Database,
		DB:         database,
		Users:      users,
		Sessions:   user.NewSessions(database.DB, clock.Real(), cfg.Sessions.TTL),
		Channels:   channel.NewRepo(database.DB, users),
	}

	cleanup := func() {
		_ = database.Close()
	}

	return a, cleanup, nil
}
