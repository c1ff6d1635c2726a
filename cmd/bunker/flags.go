package main

import (
	"fmt"

	"github.com/bunker-test/bunker/internal/config"
	"github.com/spf13/cobra"
)

func gatherFlags(cmd *cobra.Command) (config.FlagValues, error) {
	flags := cmd.Flags()
	var values config.FlagValues

	if flags.Changed("verbose") {
		v, err := flags.GetBool("verbose")
		if err != nil {
			return values, fmt.Errorf("parse --verbose: %w", err)
		}
		values.Verbose = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("debug") {
		v, err := flags.GetBool("debug")
		if err != nil {
			return values, fmt.Errorf("parse --debug: %w", err)
		}
		values.Debug = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("no-color") {
		v, err := flags.GetBool("no-color")
		if err != nil {
			return values, fmt.Errorf("parse --no-color: %w", err)
		}
		values.NoColor = config.BoolFlag{Value: v, Set: true}
	}

	if flags.Changed("name-width") {
		v, err := flags.GetInt("name-width")
		if err != nil {
			return values, fmt.Errorf("parse --name-width: %w", err)
		}
		values.NameWidth = config.IntFlag{Value: v, Set: true}
	}

	if flags.Changed("disable") {
		v, err := flags.GetStringArray("disable")
		if err != nil {
			return values, fmt.Errorf("parse --disable: %w", err)
		}
		values.Disable = config.SliceFlag{Values: append([]string{}, v...)}
	}

	return values, nil
}
