/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "plategate",
	Short: "Backend for the plategate license-plate recognition system",
	Long: `plategate serves the management API for a license-plate recognition
deployment: admin authentication, the registry of known plates, gate access
history, detection counts, and the periodic CSV snapshot of the plate table.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
