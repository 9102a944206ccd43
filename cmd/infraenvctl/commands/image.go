package commands

import (
	"github.com/spf13/cobra"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/handlers"
)

// Image returns the image command.
func Image() *cobra.Command {
	var (
		flags   serviceFlags
		isoPath string
	)

	cmd := &cobra.Command{
		Use:   "image",
		Short: "Download the discovery image of a registered infra-env",
		Long: `Image downloads the infra-env's discovery ISO to the configured download
path (or --iso-path when given). For static-IP configurations the static
network configuration is generated and pushed before the download.

Example:
  infraenvctl image -c infraenv.yaml --iso-path /tmp/discovery.iso`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.DownloadImage(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, isoPath)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&isoPath, "iso-path", "", "Destination path for the ISO (overrides the configured path)")

	return cmd
}
