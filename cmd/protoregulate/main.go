// Command protoregulate normalizes and fingerprints Protocol Buffers
// schema files: merge same-package files deterministically, render
// canonical schema text, and report a content-addressed fingerprint.
package main

import (
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	logger  hclog.Logger
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "protoregulate",
		Short: "Normalize and fingerprint Protocol Buffers schema files",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := hclog.Info
			if verbose {
				level = hclog.Debug
			}
			logger = hclog.New(&hclog.LoggerOptions{
				Name:  "protoregulate",
				Level: level,
			})
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newNormalizeCmd())
	cmd.AddCommand(newInspectCmd())
	return cmd
}
