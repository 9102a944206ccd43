package commands

import (
	"github.com/spf13/cobra"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/handlers"
)

// Host returns the host command group.
func Host() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "host",
		Short: "Operate on hosts registered under the infra-env",
	}

	cmd.AddCommand(hostUpdate())
	cmd.AddCommand(hostInstallerArgs())
	cmd.AddCommand(hostBind())
	cmd.AddCommand(hostUnbind())
	cmd.AddCommand(hostDelete())

	return cmd
}

func hostUpdate() *cobra.Command {
	var (
		flags    serviceFlags
		hostRole string
		hostName string
	)

	cmd := &cobra.Command{
		Use:   "update <host-id>",
		Short: "Update role and/or name of one host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.UpdateHost(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, args[0], hostRole, hostName)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&hostRole, "role", "", "Host role (master/worker); omitted when empty")
	cmd.Flags().StringVar(&hostName, "name", "", "Requested hostname; omitted when empty")

	return cmd
}

func hostInstallerArgs() *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "installer-args <host-id>",
		Short: "Push the configured installer arguments to one host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.UpdateHostInstallerArgs(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, args[0])
		},
	}

	flags.bind(cmd)
	return cmd
}

func hostBind() *cobra.Command {
	var (
		flags     serviceFlags
		clusterID string
	)

	cmd := &cobra.Command{
		Use:   "bind <host-id>",
		Short: "Bind one host to a cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.BindHost(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, args[0], clusterID)
		},
	}

	flags.bind(cmd)
	cmd.Flags().StringVar(&clusterID, "cluster-id", "", "Target cluster id (required)")
	_ = cmd.MarkFlagRequired("cluster-id")

	return cmd
}

func hostUnbind() *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "unbind <host-id>",
		Short: "Release one host from its cluster",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.UnbindHost(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, args[0])
		},
	}

	flags.bind(cmd)
	return cmd
}

func hostDelete() *cobra.Command {
	var flags serviceFlags

	cmd := &cobra.Command{
		Use:   "delete <host-id>",
		Short: "Deregister one host from the infra-env",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return handlers.DeleteHost(cmd.Context(), flags.configPath, flags.serviceURL, flags.authToken, args[0])
		},
	}

	flags.bind(cmd)
	return cmd
}
