package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	versionString = "dev"
	commitString  = "none"
)

// SetVersionInfo records build-time version metadata for the version
// command.
func SetVersionInfo(version, commit string) {
	versionString = version
	commitString = commit
}

// Version returns the version command.
func Version() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "infraenvctl %s (%s)\n", versionString, commitString)
		},
	}
}
