package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/dshills/quickdoc/internal/app"
	"github.com/dshills/quickdoc/internal/config"
	"github.com/dshills/quickdoc/internal/renderer/backend"
)

// viewer holds the root command's flags.
type viewer struct {
	configPath string
	logFile    string
	logLevel   string
	noHover    bool
	noWatch    bool
}

func (v *viewer) bindFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&v.configPath, "config", "c", config.DefaultPath(), "path to the TOML config file")
	f.StringVar(&v.logFile, "log-file", "", "write logs to this file")
	f.StringVar(&v.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	f.BoolVar(&v.noHover, "no-hover", false, "start with hover documentation off")
	f.BoolVar(&v.noWatch, "no-watch", false, "do not reload the config file when it changes")
}

// settings merges the config file with flags.
func (v *viewer) settings(fs afero.Fs, cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(fs, v.configPath)
	if err != nil {
		return cfg, err
	}
	if cmd.Flags().Changed("log-file") {
		cfg.Log.File = v.logFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = v.logLevel
	}
	if v.noHover {
		cfg.Hover.Enabled = false
	}
	return cfg, cfg.Validate()
}

// Run opens args in the terminal viewer.
func (v *viewer) Run(ctx context.Context, fs afero.Fs, cmd *cobra.Command, args []string) error {
	cfg, err := v.settings(fs, cmd)
	if err != nil {
		return err
	}

	logger, closer, err := app.NewLogger(fs, cfg.Log.File, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer closer.Close()

	paths, err := app.ExpandArgs(fs, args)
	if err != nil {
		return err
	}

	term, err := backend.NewTerminal()
	if err != nil {
		return errors.Errorf("creating terminal: %w", err)
	}

	delay := cfg.HoverDelay(os.LookupEnv)
	viewerApp := app.New(term, cfg, delay, app.WithFs(fs), app.WithLogger(logger))

	opened := 0
	for _, p := range paths {
		if _, err := viewerApp.Open(p); err != nil {
			logger.Warn().Err(err).Msg("skipping file")
			continue
		}
		opened++
	}
	if opened == 0 {
		return errors.Errorf("%w: %v", app.ErrNoDocuments, paths)
	}

	if !v.noWatch && v.configPath != "" {
		w, err := watchConfig(fs, v.configPath, viewerApp, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("config reload disabled")
		} else {
			defer w.Close()
		}
	}

	return viewerApp.Run(ctx)
}

// watchConfig reloads hover.enabled from the config file while running.
func watchConfig(fs afero.Fs, path string, a *app.Application, logger zerolog.Logger) (*config.Watcher, error) {
	return config.NewWatcher(fs, path,
		func(cfg config.Config) {
			a.Post(func() { a.ApplyConfig(cfg) })
		},
		config.WithWatcherLogger(logger.With().Str("component", "config").Logger()),
	)
}
