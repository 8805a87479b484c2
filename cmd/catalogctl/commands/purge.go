package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var purgeYes bool

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete every product and image",
	RunE: func(cmd *cobra.Command, args []string) error {
		if !purgeYes {
			return errors.New("refusing to purge without --yes")
		}
		ctx := cmd.Context()
		svc, _, err := newProductService()
		if err != nil {
			return err
		}
		if err := svc.PurgeAll(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Catalog purged")
		return nil
	},
}

func init() {
	purgeCmd.Flags().BoolVar(&purgeYes, "yes", false, "Confirm deleting the whole catalog")
}
