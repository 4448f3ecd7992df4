package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

const version = "0.1.0"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:          "jdoc",
		Short:        "Check Javadoc comments in Java sources",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "log more (repeat for debug output)")

	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newDeprecatedCmd())
	rootCmd.AddCommand(newLSPCmd())

	return rootCmd
}
