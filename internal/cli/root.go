package cli

import (
	"github.com/spf13/cobra"
)

var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "evchart",
		Short:         "EV-ChART station registration service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newServeCmd(), newValidateCmd())
	return root
}

func Execute() error {
	return newRootCmd().Execute()
}
