// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package registry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/lint"
)

// readmeName is the file the hosting platform reads the card from.
const readmeName = "README.md"

// ScanResult summarizes one catalog scan.
type ScanResult struct {
	Indexed int
	Skipped int
	Failed  int
}

// Total returns the number of READMEs visited.
func (r ScanResult) Total() int {
	return r.Indexed + r.Skipped + r.Failed
}

// HasFailures reports whether any README failed to parse.
func (r ScanResult) HasFailures() bool {
	return r.Failed > 0
}

// Scan walks root for Space READMEs, parses and lints each card, and
// upserts the results into the catalog. READMEs without a configuration
// block are skipped; parse failures are counted and reported to w but do
// not abort the walk.
func (s *Store) Scan(ctx context.Context, root string, linter *lint.Linter, w io.Writer) (ScanResult, error) {
	var result ScanResult
	if err := statDir(root); err != nil {
		return result, err
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() {
			// Hidden directories (.git, .cache) hold no Spaces.
			if name := d.Name(); name != "." && len(name) > 1 && name[0] == '.' {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Name() != readmeName {
			return nil
		}

		spaceDir := filepath.Dir(path)
		id, relErr := filepath.Rel(root, spaceDir)
		if relErr != nil {
			return relErr
		}

		doc, err := card.Load(path)
		if errors.Is(err, card.ErrNoFrontmatter) {
			fmt.Fprintf(w, "skipped: %s (no configuration block)\n", id)
			result.Skipped++
			return nil
		}
		if err != nil {
			fmt.Fprintf(w, "failed:  %s (%v)\n", id, err)
			result.Failed++
			return nil
		}

		report := linter.Check(doc, spaceDir)
		entry := Entry{
			ID:       filepath.ToSlash(id),
			Card:     doc.Card,
			Errors:   report.Errors(),
			Warnings: report.Warnings(),
		}
		if err := s.Upsert(ctx, entry); err != nil {
			return err
		}

		fmt.Fprintf(w, "indexed: %s (%d errors, %d warnings)\n", entry.ID, entry.Errors, entry.Warnings)
		result.Indexed++
		return nil
	})
	if err != nil {
		return result, fmt.Errorf("scanning %s: %w", root, err)
	}

	fmt.Fprintf(w, "\nScan summary: %d indexed, %d skipped, %d failed (total: %d)\n",
		result.Indexed, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// statDir verifies root exists and is a directory before scanning.
func statDir(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", root)
	}
	return nil
}
