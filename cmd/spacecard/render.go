// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/spacecard/internal/card"
)

var renderCmd = &cobra.Command{
	Use:   "render [path]",
	Short: "Print the README with its card in canonical form",
	Long: `Render parses the README and prints it back with the configuration
block in canonical field order, unset optional fields omitted, and unknown
keys dropped. The Markdown body is preserved verbatim.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		readme, _, err := resolveReadme(args)
		if err != nil {
			return err
		}

		doc, err := card.Load(readme)
		if err != nil {
			return err
		}

		out, err := card.Render(doc)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	},
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [path]",
	Short: "Rewrite the README with its card in canonical form",
	Long: `Fmt is render applied in place: the README is rewritten with the
configuration block in canonical field order. A no-op when the file is
already canonical.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		readme, _, err := resolveReadme(args)
		if err != nil {
			return err
		}

		doc, err := card.Load(readme)
		if err != nil {
			return err
		}

		if len(doc.UnknownKeys) > 0 {
			return fmt.Errorf("%s carries unknown keys %v; fmt would drop them, fix or remove them first", readme, doc.UnknownKeys)
		}

		if err := doc.WriteFile(readme); err != nil {
			return err
		}
		fmt.Printf("formatted %s\n", readme)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(fmtCmd)
}
