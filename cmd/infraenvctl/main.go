// Package main is the entry point for the infraenvctl CLI.
//
// infraenvctl drives the assisted installation service's infra-env resource
// for end-to-end test environments: registering discovery environments,
// downloading boot images, waiting for host discovery, and cleaning up.
//
// For detailed usage information, run:
//
//	infraenvctl --help
package main

import (
	"fmt"
	"os"

	"github.com/omer-vishlitzky/assisted-test-infra/cmd/infraenvctl/commands"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
)

func main() {
	commands.SetVersionInfo(version, commit)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
