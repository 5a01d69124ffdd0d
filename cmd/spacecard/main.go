// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the spacecard CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spacecard/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds credentials loaded from .secrets/ at startup. A
// missing key indexes to "", so callers can treat it as a last-resort
// fallback behind flags and config.
var loadedSecrets map[string]string

// rootCmd is the base command for the spacecard CLI.
var rootCmd = &cobra.Command{
	Use:   "spacecard",
	Short: "Tooling for Space configuration cards",
	Long: `spacecard works with Space configuration cards: the YAML block at the top
of a Space README.md that tells the hosting platform how to render and launch
the Space (title, emoji, listing colors, sdk, entry file, pin flag).

Each operation is a subcommand: validate and lint check a card, render and
fmt rewrite it canonically, init scaffolds a new Space, catalog indexes a
tree of Spaces into a searchable database, hub compares the local card with
the deployed one, and run launches the Space locally in a container.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./spacecard.yaml or ~/.config/spacecard/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("spacecard")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "spacecard"))
		}
	}

	viper.SetEnvPrefix("SPACECARD")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
