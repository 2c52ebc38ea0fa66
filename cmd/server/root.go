package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stocktrade-simulator/internal/config"
)

const defaultConfigPath = "config.yaml"

type rootOptions struct {
	configPath string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stocktrade",
		Short:         "Simulated stock trading backend",
		Long:          "stocktrade serves the trading API, runs the price simulator, and manages the stock catalog.",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", defaultConfigPath, "path to the YAML config file")

	cmd.AddCommand(
		newServeCmd(opts),
		newSeedCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the config file. A missing default file means env-only configuration.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	path := o.configPath
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			path = ""
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stocktrade %s (commit %s, built %s)\n", Version, Commit, BuildTime)
		},
	}
}
