package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of Framewheel",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Println("framewheel " + version)
	},
}
