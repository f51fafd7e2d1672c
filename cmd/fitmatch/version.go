package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Set by build scripts via -ldflags.
var (
	version   = "0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show fitmatch version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fitmatch v%s\n", version)
		fmt.Printf("Git Commit: %s\n", gitCommit)
		fmt.Printf("Build Date: %s\n", buildDate)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
