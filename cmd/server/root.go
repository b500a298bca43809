package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "farmstead",
	Short: "Farmstead - farm management back end",
	Long: `Farmstead keeps track of farmers, their tasks, inventory and its
buy/sell transactions, assets, lands and crops.

Run 'farmstead serve' to start the API server, 'farmstead bootstrap-admin' to
create the initial admin account, or 'farmstead import-items' to load inventory.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bootstrapAdminCmd)
	rootCmd.AddCommand(importItemsCmd)
	rootCmd.AddCommand(pruneTokensCmd)
}
