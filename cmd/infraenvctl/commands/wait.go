package commands

import (
	"github.com/spf13/cobra"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/handlers"
)

// Wait returns the wait command.
func Wait() *cobra.Command {
	var (
		flags             serviceFlags
		nodesCount        int
		allowInsufficient bool
	)

	cmd := &cobra.Command{
		Use:   "wait",
		Short: "Wait until the expected hosts are discovered",
		Long: `Wait blocks until the expected number of hosts report the known-unbound
status (optionally also insufficient-unbound), or fails after the
registration timeout.

Example:
  infraenvctl wait -c infraenv.yaml --nodes 3 --allow-insufficient`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.WaitDiscovered(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, nodesCount, allowInsufficient)
		},
	}

	flags.bind(cmd)
	cmd.Flags().IntVar(&nodesCount, "nodes", 0, "Expected host count (defaults to nodes_count from the configuration)")
	cmd.Flags().BoolVar(&allowInsufficient, "allow-insufficient", false, "Also accept hosts in insufficient-unbound")

	return cmd
}
