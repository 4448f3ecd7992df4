package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/jdoc/config"
	"github.com/dhamidi/jdoc/lsp"
)

func newLSPCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the Language Server Protocol server on stdio.

Without flags the server reads the .jdoc.toml nearest to the workspace
root.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cfg *config.Config
			if cmd.Flags().Changed("level") || cmd.Flags().Changed("markdown") {
				c, err := s.config(cmd)
				if err != nil {
					return err
				}
				cfg = &c
			}
			return lsp.NewServer(version, cfg).RunStdio()
		},
	}

	s.register(cmd)

	return cmd
}
