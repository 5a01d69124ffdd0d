// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/lint"
	"github.com/pdiddy/spacecard/pkg/types"
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Run schema validation plus policy rules against a card",
	Long: `Lint runs everything validate does, then layers policy checks on top:
unknown-key warnings, entry-file existence, and user-defined CEL rules from
the lint.rules section of the config file. Example rule:

  lint:
    rules:
      - name: pinned-needs-description
        expr: '!pinned || short_description != ""'
        message: pinned Spaces must carry a short_description
        severity: error`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.Flags().Bool("json", false, "output findings as JSON")
	lintCmd.Flags().Bool("check-files", true, "verify app_file exists in the Space directory")

	rootCmd.AddCommand(lintCmd)
}

// lintConfig assembles the lint stage config from flags and config file.
func lintConfig(cmd *cobra.Command) (types.LintConfig, error) {
	checkFiles, _ := cmd.Flags().GetBool("check-files")
	cfg := types.LintConfig{CheckFiles: checkFiles}

	if err := viper.UnmarshalKey("lint.rules", &cfg.Rules); err != nil {
		return cfg, fmt.Errorf("reading lint.rules from config: %w", err)
	}
	return cfg, nil
}

func runLint(cmd *cobra.Command, args []string) error {
	readme, dir, err := resolveReadme(args)
	if err != nil {
		return err
	}

	cfg, err := lintConfig(cmd)
	if err != nil {
		return err
	}
	linter, err := lint.New(cfg)
	if err != nil {
		return err
	}

	doc, err := card.Load(readme)
	if err != nil {
		return err
	}

	report := linter.Check(doc, dir)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := printFindings(readme, report.Findings, jsonOutput); err != nil {
		return err
	}

	if report.Failed() {
		return fmt.Errorf("%s: %d error(s), %d warning(s)", readme, report.Errors(), report.Warnings())
	}
	return nil
}
