package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/mitsides06/TubeMap/config"
	"github.com/mitsides06/TubeMap/logging"
	"github.com/mitsides06/TubeMap/tube"
)

type rootOptions struct {
	configPath string
	mapPath    string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:          "tubemap",
		Short:        "Shortest travel times across a metro network",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("map") {
				cfg.Map.Path = opts.mapPath
			}
			if flags.Changed("log-level") {
				cfg.Log.Level = opts.logLevel
			}
			if flags.Changed("log-format") {
				cfg.Log.Format = opts.logFormat
			}

			opts.cfg = cfg
			opts.logger = logging.Setup(logging.Config{
				Level:  cfg.Log.Level,
				Format: cfg.Log.Format,
				Output: cmd.ErrOrStderr(),
			})
			return nil
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&opts.configPath, "config", "", "path to a YAML config file")
	pf.StringVar(&opts.mapPath, "map", "", "path to the network JSON file (overrides config)")
	pf.StringVar(&opts.logLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&opts.logFormat, "log-format", "", "text or json")

	cmd.AddCommand(
		newServeCmd(opts),
		newPathCmd(opts),
		newGraphCmd(opts),
		newStationsCmd(opts),
	)
	return cmd
}

func (o *rootOptions) loadMap() (*tube.TubeMap, error) {
	path := o.cfg.Map.Path
	o.logger.Info("map.loading", "path", path)

	m, err := tube.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load map: %w", err)
	}

	if m.IsEmpty() {
		o.logger.Warn("map.empty", "path", path)
		return m, nil
	}
	o.logger.Info("map.loaded",
		"path", path,
		"stations", len(m.Stations),
		"lines", len(m.Lines),
		"connections", len(m.Connections))
	return m, nil
}
