// Package cmd provides the command-line interface for Framewheel.
package cmd

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "framewheel",
	Short: "Framewheel drives a fixed-rate frame loop with named one-shot " +
		"effects.",
	Long: `Framewheel drives a fixed-rate frame loop. A per-frame task and ` +
		`the actions of scheduled events can enqueue named effects that ` +
		`rerun every frame until their countdown expires.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	// A missing .env file is fine; flags win over the environment.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
