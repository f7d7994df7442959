package cmd

import (
	"context"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	database "alpenworks.io/resort-services/internal/db"
	"alpenworks.io/resort-services/internal/store"
)

type ResortCtlApp struct {
	ConfigPath string
}

// ctlConfig reads the subset of the shared service config the CLI
// needs to locate the lift collection.
type ctlConfig struct {
	Database string `toml:"database"`
	Seed     string `toml:"seed"`
	Listen   string `toml:"listen_address"`
}

func (app *ResortCtlApp) loadConfig() (ctlConfig, error) {
	var cfg ctlConfig
	if _, err := toml.DecodeFile(app.ConfigPath, &cfg); err != nil {
		return ctlConfig{}, fmt.Errorf("config %s: %w", app.ConfigPath, err)
	}
	return cfg, nil
}

// OpenStore resolves the configured lift source: Postgres when a
// connection string is set, a seed file when one is named, otherwise
// the embedded collection.
func (app *ResortCtlApp) OpenStore(ctx context.Context) (store.Store, func(), error) {
	cfg, err := app.loadConfig()
	if err != nil {
		return nil, nil, err
	}

	switch {
	case cfg.Database != "":
		db, err := database.NewDatabaseConnection(ctx, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return store.NewPostgresStore(db), func() { db.Close() }, nil

	case cfg.Seed != "":
		seed, err := store.LoadSeedStore(cfg.Seed)
		if err != nil {
			return nil, nil, err
		}
		return seed, func() {}, nil

	default:
		seed, err := store.NewEmbeddedSeedStore()
		if err != nil {
			return nil, nil, err
		}
		return seed, func() {}, nil
	}
}

func Execute() error {
	app := &ResortCtlApp{}
	rootCmd := NewRootCmd(app)
	return rootCmd.Execute()
}

func NewRootCmd(app *ResortCtlApp) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "resort-ctl",
		Short:         "CLI tool used to inspect resort lift state",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	cmd.PersistentFlags().StringVar(
		&app.ConfigPath,
		"toml",
		"config/resort.dev.toml",
		"Path to configuration file",
	)

	cmd.AddCommand(NewLiftsCmd(app))
	cmd.AddCommand(NewDetailCmd(app))
	cmd.AddCommand(NewStatusCmd(app))
	cmd.AddCommand(NewHealthCmd(app))

	return cmd
}
