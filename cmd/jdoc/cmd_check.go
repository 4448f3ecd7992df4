package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdoc/format"
)

var errProblems = errors.New("javadoc errors found")

func newCheckCmd() *cobra.Command {
	var s settings
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "check [path...]",
		Short: "Report problems in the doc comments below the given paths",
		Long: `Report problems in the doc comments below the given paths.

Directories are searched for .java files, skipping the exclude patterns
of .jdoc.toml. The exit status is 1 when any error is reported.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			checker, err := s.checker(cmd)
			if err != nil {
				return err
			}
			results, err := checker.Run(cmd.Context(), args)
			if err != nil {
				return fmt.Errorf("check: %w", err)
			}
			enc, err := format.New(outputFormat, os.Stdout, false)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if len(res.Diagnostics) == 0 {
					continue
				}
				if res.HasErrors() {
					failed++
				}
				if err := enc.Encode(res); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files: %w", failed, len(results), errProblems)
			}
			return nil
		},
	}

	s.register(cmd)
	cmd.Flags().IntVarP(&s.jobs, "jobs", "j", 0, "number of files checked in parallel (default from .jdoc.toml)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "output format (text, json, yaml)")

	return cmd
}
