package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cm-academy/cm-academy-api/internal/repository"
)

func pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured store is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Store.ConnectTimeout)
			defer cancel()

			store, err := repository.Open(ctx, cfg.Store)
			if err != nil {
				return err
			}
			defer store.Close(context.Background())

			if err := store.Ping(ctx); err != nil {
				return fmt.Errorf("%s store unreachable: %w", cfg.Store.Driver, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Pinged your deployment. %s store is reachable.\n", cfg.Store.Driver)
			return nil
		},
	}
}
