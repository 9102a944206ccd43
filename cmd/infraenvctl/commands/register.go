package commands

import (
	"github.com/spf13/cobra"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/handlers"
)

// Register returns the register command.
func Register() *cobra.Command {
	var (
		flags          serviceFlags
		generateSSHKey bool
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new infra-env from a configuration file",
		Long: `Register creates a new infra-env resource on the assisted service from the
given configuration file and stores the assigned resource id back into the
file so later commands can address it.

When the configuration carries no SSH public key, --generate-ssh-key creates
a discovery key pair and writes the private key next to the ISO download
path.

Example:
  infraenvctl register -c infraenv.yaml --generate-ssh-key`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Register(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, generateSSHKey)
		},
	}

	flags.bind(cmd)
	cmd.Flags().BoolVar(&generateSSHKey, "generate-ssh-key", false, "Generate a discovery SSH key pair when none is configured")

	return cmd
}
