package commands

import (
	"fmt"

	"go-catalog-ws/internal/seed"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Replace the whole catalog with the fixture products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		svc, logger, err := newProductService()
		if err != nil {
			return err
		}

		n, err := seed.NewSeeder(svc, logger).Run(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Seed executed: %d products\n", n)
		return nil
	},
}
