package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newDeprecatedCmd() *cobra.Command {
	var s settings
	var all bool

	cmd := &cobra.Command{
		Use:   "deprecated <file>...",
		Short: "List the doc comments carrying a @deprecated tag",
		Long: `List the doc comments carrying a @deprecated tag.

Only the tags are scanned, so this is much cheaper than parse.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := s.checker(cmd)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(os.Stdout)
			defer enc.Close()
			for _, path := range args {
				deps, err := checker.Deprecations(path)
				if err != nil {
					return fmt.Errorf("deprecated: %w", err)
				}
				for _, d := range deps {
					if !d.Deprecated && !all {
						continue
					}
					if all {
						if err := enc.Encode(d); err != nil {
							return fmt.Errorf("encode: %w", err)
						}
						continue
					}
					fmt.Printf("%s:%d:%d\n", d.Path, d.Start.Line, d.Start.Column)
				}
			}
			return nil
		},
	}

	s.register(cmd)
	cmd.Flags().BoolVarP(&all, "all", "a", false, "print every comment as YAML with its deprecation flag")

	return cmd
}
