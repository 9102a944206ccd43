package commands

import (
	"github.com/spf13/cobra"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/handlers"
)

// Deregister returns the deregister command.
func Deregister() *cobra.Command {
	var (
		flags     serviceFlags
		keepHosts bool
	)

	cmd := &cobra.Command{
		Use:   "deregister",
		Short: "Deregister the infra-env and its hosts",
		Long: `Deregister removes the infra-env from the assisted service. Unless
--keep-hosts is given, every host registered under it is deregistered first,
sequentially; a host failure aborts the cleanup and leaves it incomplete.

Example:
  infraenvctl deregister -c infraenv.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Deregister(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, !keepHosts)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&keepHosts, "keep-hosts", false, "Skip host deregistration")

	return cmd
}
