package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user>",
	Short: "Mint a bearer token for the reference service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		role, _ := cmd.Flags().GetString("role")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		switch role {
		case server.RoleAdmin, server.RoleViewer:
		default:
			return fmt.Errorf("unknown role %q (want %s or %s)", role, server.RoleAdmin, server.RoleViewer)
		}

		cfg := loadConfig(cmd)
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		tok, err := server.NewTokenManager(cfg.Server.JWTSecret).Issue(args[0], role, ttl)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Println(tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("role", server.RoleAdmin, "Role claim: admin or viewer")
	tokenCmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
}
