package commands

import (
	"errors"
	"fmt"
	"time"

	"go-catalog-ws/pkg/jwt"

	"github.com/spf13/cobra"
)

var (
	tokenName       string
	tokenPrivileges []string
	tokenTTL        time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token <subject>",
	Short: "Issue a signed API token (uses JWT_SECRET)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(tokenPrivileges) == 0 {
			return errors.New("at least one --privilege is required")
		}
		name := tokenName
		if name == "" {
			name = args[0]
		}
		token, err := jwt.GenerateToken(args[0], name, tokenPrivileges, tokenTTL)
		if err != nil {
			return fmt.Errorf("sign token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "Display name stored in the token")
	tokenCmd.Flags().StringSliceVarP(&tokenPrivileges, "privilege", "p", nil,
		"Privilege to grant (repeatable): product:create, product:update, product:delete, catalog:seed, catalog:admin")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "Token lifetime")
}
