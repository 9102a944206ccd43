// Package commands defines the CLI command structure and flag bindings.
//
// This package contains cobra command definitions that handle argument
// parsing, flag binding, and validation. Command execution is delegated to
// handler functions in the handlers package.
package commands

import "github.com/spf13/cobra"

// serviceFlags are the connection flags shared by every command that talks
// to the assisted service.
type serviceFlags struct {
	configPath string
	serviceURL string
	authToken  string
}

func (f *serviceFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.configPath, "config", "c", "", "Path to infra-env configuration file (required)")
	cmd.Flags().StringVarP(&f.serviceURL, "service-url", "u", "http://localhost:8090", "Base URL of the assisted service")
	cmd.Flags().StringVar(&f.authToken, "token", "", "Bearer token for the service (optional)")
	_ = cmd.MarkFlagRequired("config")
}

// Root returns the root command for the infraenvctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "infraenvctl",
		Short: "Drive assisted-service infra-envs for e2e test environments",
	}

	cmd.AddCommand(Register())
	cmd.AddCommand(Image())
	cmd.AddCommand(Wait())
	cmd.AddCommand(Host())
	cmd.AddCommand(Ignition())
	cmd.AddCommand(Deregister())
	cmd.AddCommand(Version())

	return cmd
}
