package app

import (
	"log/slog"

	"github.com/heartmarshall/animals-site/internal/adapter/provider/ninjas"
	"github.com/heartmarshall/animals-site/internal/config"
)

// App holds the components shared by the generate and serve commands.
type App struct {
	Config    config.Config
	Logger    *slog.Logger
	Provider  *ninjas.Provider
	Generator *Generator
}

// New wires the API provider and the page generator from cfg.
func New(cfg config.Config, logger *slog.Logger) *App {
	provider := ninjas.NewProvider(cfg.API, logger)
	return &App{
		Config:    cfg,
		Logger:    logger,
		Provider:  provider,
		Generator: NewGenerator(provider, cfg.Site, logger),
	}
}
