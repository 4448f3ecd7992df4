package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jdoc/check"
	"github.com/dhamidi/jdoc/config"
)

// settings are the flags shared by the commands that run the checker.
type settings struct {
	level    string
	markdown bool
	jobs     int
}

func (s *settings) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.level, "level", "", "java language level, e.g. 8, 17 or 23 (default from .jdoc.toml)")
	cmd.Flags().BoolVar(&s.markdown, "markdown", true, "recognize /// markdown comments")
}

// config loads the nearest .jdoc.toml and applies the flags the user
// set explicitly.
func (s *settings) config(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.LoadNearest(".")
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("level") {
		cfg.Level = s.level
	}
	if flags.Changed("markdown") {
		cfg.Markdown = s.markdown
	}
	if flags.Lookup("jobs") != nil && flags.Changed("jobs") {
		cfg.Jobs = s.jobs
	}
	return cfg, nil
}

func (s *settings) checker(cmd *cobra.Command) (*check.Checker, error) {
	cfg, err := s.config(cmd)
	if err != nil {
		return nil, err
	}
	return check.New(cfg)
}
