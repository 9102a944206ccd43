package commands

import (
	"github.com/spf13/cobra"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/handlers"
)

// Ignition returns the ignition command group.
func Ignition() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ignition",
		Short: "Read or override the discovery ignition document",
	}

	cmd.AddCommand(ignitionGet())
	cmd.AddCommand(ignitionPatch())

	return cmd
}

func ignitionGet() *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Print the current discovery ignition document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.GetIgnition(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, cmd.OutOrStdout())
		},
	}

	flags.bind(cmd)
	return cmd
}

func ignitionPatch() *cobra.Command {
	var (
		flags        serviceFlags
		ignitionFile string
	)

	cmd := &cobra.Command{
		Use:   "patch",
		Short: "Override the discovery ignition document from a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.PatchIgnition(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, ignitionFile)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&ignitionFile, "file", "", "Path to the ignition override document (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}
