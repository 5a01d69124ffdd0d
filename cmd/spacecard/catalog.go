// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/spacecard/internal/lint"
	"github.com/pdiddy/spacecard/internal/registry"
	"github.com/pdiddy/spacecard/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the Space catalog (scan, list, export)",
	Long: `Catalog maintains a local SQLite index of Space configuration cards
found under a directory tree. Use subcommands to scan a tree, query the
index, or export it.`,
}

// --- scan subcommand ---

var catalogScanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Index every Space README under a directory tree",
	Long: `Scan walks the tree for README.md files with a configuration block,
parses and lints each card, and upserts the results into the catalog.
READMEs without a block are skipped; parse failures are reported but do
not abort the scan.`,
	Args: cobra.ExactArgs(1),
	RunE: runCatalogScan,
}

func runCatalogScan(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	// Scans lint with built-in rules only; file checks need the walk's
	// directory context, which Scan supplies per Space.
	linter, err := lint.New(types.LintConfig{CheckFiles: true})
	if err != nil {
		return err
	}

	result, err := store.Scan(context.Background(), args[0], linter, os.Stdout)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d README(s) failed to parse", result.Failed)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list [query]",
	Short: "Query the catalog with full-text search and filters",
	Long: `List queries the catalog. A free-text query searches title,
short_description, and tags; --sdk, --pinned, and --failing filter the
results. Without a query, pinned Spaces come first.`,
	RunE: runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	entries, err := store.List(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatListOutput(entries, jsonOutput)
}

func formatListOutput(entries []registry.Entry, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Println("No Spaces found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-30s  %-3s  %-30s  %-10s  %-6s  %-6s\n",
		"Space", "", "Title", "SDK", "Pin", "Errors")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 95))

	for _, e := range entries {
		id := e.ID
		if len(id) > 30 {
			id = id[:27] + "..."
		}
		title := e.Card.Title
		if len(title) > 30 {
			title = title[:27] + "..."
		}
		pin := ""
		if e.Card.Pinned {
			pin = "yes"
		}
		fmt.Fprintf(os.Stdout, "%-30s  %-3s  %-30s  %-10s  %-6s  %-6d\n",
			id, e.Card.Emoji, title, e.Card.SDK, pin, e.Errors)
	}

	fmt.Fprintf(os.Stdout, "\n%d Spaces\n", len(entries))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the catalog (or a filtered subset) to export.yaml or
export.json in the catalog directory. Supports the same filter flags as
list for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.yaml")
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Println("Exported to export.json")
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*registry.Store, error) {
	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = ".spacecard"
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := types.RegistryConfig{
		CatalogDir: catalogDir,
		MaxResults: maxResults,
	}
	return registry.NewStore(cfg)
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) registry.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	sdk, _ := cmd.Flags().GetString("sdk")
	pinned, _ := cmd.Flags().GetBool("pinned")
	failing, _ := cmd.Flags().GetBool("failing")
	limit, _ := cmd.Flags().GetInt("limit")

	return registry.QueryOptions{
		Query:       queryText,
		SDK:         types.SDK(sdk),
		PinnedOnly:  pinned,
		FailingOnly: failing,
		MaxResults:  limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", ".spacecard", "directory holding the catalog database")
	catalogCmd.PersistentFlags().Int("max-results", 20, "maximum number of query results")

	// List flags.
	catalogListCmd.Flags().String("query", "", "full-text search query")
	catalogListCmd.Flags().String("sdk", "", "filter by runtime: gradio, streamlit, docker, static")
	catalogListCmd.Flags().Bool("pinned", false, "only pinned Spaces")
	catalogListCmd.Flags().Bool("failing", false, "only Spaces with validation errors")
	catalogListCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogListCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("sdk", "", "filter by runtime for partial export")
	catalogExportCmd.Flags().Bool("pinned", false, "only pinned Spaces")
	catalogExportCmd.Flags().Bool("failing", false, "only Spaces with validation errors")
	catalogExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogScanCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
