package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bunker-test/bunker/harness"
	"github.com/bunker-test/bunker/internal/config"
)

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	root, err := os.Getwd()
	if err != nil {
		return config.Config{}, fmt.Errorf("determine working directory: %w", err)
	}

	cfg, err := config.Load(root)
	if err != nil {
		return cfg, err
	}

	flags, err := gatherFlags(cmd)
	if err != nil {
		return cfg, err
	}
	config.ApplyFlags(&cfg, flags)
	return cfg, nil
}

// configureRunner wires debug logging and child stderr into the default
// runner when requested.
func configureRunner(cfg config.Config) {
	if !cfg.Debug {
		return
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger().
		Level(zerolog.DebugLevel)
	harness.SetDefaultRunner(harness.NewRunner(harness.Options{
		Stderr: os.Stderr,
		Logger: &logger,
	}))
}

// buildGroup assembles a group from tests, applying the configured
// verbosity, name width and disable list.
func buildGroup(name, description string, cfg config.Config, verbose bool, tests []*harness.Test) *harness.Group {
	group := harness.NewGroup(name, description).SetVerbose(verbose)
	if cfg.NameWidth > 0 {
		group.SetNameWidth(cfg.NameWidth)
	}
	for _, t := range tests {
		for _, disabled := range cfg.Disable {
			if t.Name() == disabled {
				t.SetEnable(false)
			}
		}
		group.Add(t)
	}
	return group
}

func printStatus(out io.Writer, cfg config.Config, group string, sum harness.Summary) {
	c := color.New(color.FgGreen)
	if sum.Failures() > 0 {
		c = color.New(color.FgRed)
	}
	if cfg.NoColor {
		c.DisableColor()
	}
	c.Fprintf(out, "%s: %d passed, %d failed, %d crashed, %d skipped, %d didn't run\n",
		group, sum.Passed, sum.Failed, sum.Crashed, sum.Skipped, sum.DidntRun)
}
