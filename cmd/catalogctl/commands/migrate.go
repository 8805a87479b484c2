package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the products and product_images tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := openDB(loadConfig()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema is up to date")
		return nil
	},
}
