// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a Space configuration card against the schema",
	Long: `Validate parses the configuration block of a Space README and checks
every field against its domain: title and emoji shape, the color palette,
the sdk set, and entry-file path rules. Warnings do not fail the run;
errors do.

Path may be a README file or a Space directory (default: current directory).`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("json", false, "output findings as JSON")

	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	readme, _, err := resolveReadme(args)
	if err != nil {
		return err
	}

	doc, err := card.Load(readme)
	if err != nil {
		return err
	}

	findings := schema.Validate(&doc.Card)

	jsonOutput, _ := cmd.Flags().GetBool("json")
	if err := printFindings(readme, findings, jsonOutput); err != nil {
		return err
	}

	if schema.HasErrors(findings) {
		return fmt.Errorf("%s: card is invalid", readme)
	}
	return nil
}

// printFindings writes findings to stdout, one line each, or as JSON.
func printFindings(path string, findings []schema.Finding, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}

	if len(findings) == 0 {
		fmt.Printf("%s: ok\n", path)
		return nil
	}
	for _, f := range findings {
		fmt.Printf("%s: %s\n", path, f)
	}
	return nil
}

// resolveReadme turns the optional path argument into a README file path
// and its Space directory. A directory argument points at its README.md.
func resolveReadme(args []string) (readme, dir string, err error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}

	info, err := os.Stat(target)
	if err != nil {
		return "", "", err
	}
	if info.IsDir() {
		return filepath.Join(target, "README.md"), target, nil
	}
	return target, filepath.Dir(target), nil
}
