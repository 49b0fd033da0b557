package cmd

import (
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Interact with the trust configuration",
	Long:  `Utilities for validating the vouch trust file`,
}

func init() {
	rootCmd.AddCommand(configCmd)
}
