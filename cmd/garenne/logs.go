package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/garenne/internal/config"
	"github.com/five82/garenne/internal/logging"
)

func newLogsCommand(flags *rootFlags) *cobra.Command {
	var (
		lines int
		level string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Afficher la fin du journal de garenne",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Reading the log must not append a startup line to it.
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			entries, err := logging.Tail(cfg.LogPath, lines, logging.ParseLevel(level))
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintf(out, "Journal vide (%s)\n", cfg.LogPath)
				return nil
			}
			for _, e := range entries {
				fmt.Fprintln(out, e.Format())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "nombre de lignes")
	cmd.Flags().StringVar(&level, "level", "debug", "niveau minimal (debug, info, warn, error)")
	return cmd
}
