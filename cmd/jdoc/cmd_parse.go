package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdoc/format"
)

func newParseCmd() *cobra.Command {
	var s settings
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse the doc comments of a .java file and dump their structure",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			checker, err := s.checker(cmd)
			if err != nil {
				return err
			}
			res, err := checker.CheckFile(args[0])
			if err != nil {
				return fmt.Errorf("parse: %w", err)
			}
			enc, err := format.New(outputFormat, os.Stdout, true)
			if err != nil {
				return err
			}
			if err := enc.Encode(res); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			return nil
		},
	}

	s.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (text, json, yaml)")

	return cmd
}
