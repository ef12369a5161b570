package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "crypto-dashboard",
	Short: "Crypto backtesting and signal scoring service",
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
}

func Execute() error {
	return rootCmd.Execute()
}
