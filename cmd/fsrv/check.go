package main

import (
	"fmt"

	"github.com/fsrv-dev/fsrv/slogc"
	"github.com/spf13/cobra"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <config-file>",
		Short: "check configuration file",
		Args:  cobra.ExactArgs(1),
	}

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(args[0])
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger, err := slogc.New(cfg.LogLevel, cfg.LogFormat)
		if err != nil {
			return fmt.Errorf("configure logger: %w", err)
		}

		if _, err := newServer(cfg.Server, logger); err != nil {
			return err
		}
		return nil
	}

	return cmd
}
