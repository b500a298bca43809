package main

import (
	"context"
	"log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the admin account if it does not exist",
	Long: `Create the user "admin" with role admin and the password from
ADMIN_DEFAULT_PASSWORD. Does nothing when the account already exists.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runBootstrapAdmin(); err != nil {
			log.Fatal(err)
		}
	},
}

var pruneTokensCmd = &cobra.Command{
	Use:   "prune-tokens",
	Short: "Delete expired access tokens",
	Run: func(cmd *cobra.Command, args []string) {
		if err := runPruneTokens(); err != nil {
			log.Fatal(err)
		}
	},
}

func runBootstrapAdmin() error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	created, err := env.authService().EnsureAdmin(context.Background(), env.cfg.AdminDefaultPassword)
	if err != nil {
		return err
	}
	if !created {
		env.logger.Info("Admin account already exists")
	}
	return nil
}

func runPruneTokens() error {
	env, err := setup()
	if err != nil {
		return err
	}
	defer env.close()

	pruned, err := env.authService().PruneExpiredTokens(context.Background())
	if err != nil {
		return err
	}
	env.logger.Info("Pruned expired tokens", zap.Int64("count", pruned))
	return nil
}
