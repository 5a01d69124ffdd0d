// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint layers policy checks over schema validation: unknown-key
// warnings, entry-file existence, and user-defined CEL rules from config.
package lint

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/schema"
	"github.com/pdiddy/spacecard/pkg/types"
)

// Linter runs the full check set against parsed Space documents. Rules are
// compiled once at construction and reused across documents.
type Linter struct {
	cfg   types.LintConfig
	rules *ruleSet
}

// New builds a Linter, compiling every configured CEL rule. A rule that
// fails to compile aborts construction with the rule's name in the error.
func New(cfg types.LintConfig) (*Linter, error) {
	for i, r := range cfg.Rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: name required", i+1)
		}
		switch r.Severity {
		case "", types.SeverityError, types.SeverityWarning:
		default:
			return nil, fmt.Errorf("rule %q: severity %q is not error or warning", r.Name, r.Severity)
		}
	}

	rules, err := compileRules(cfg.Rules)
	if err != nil {
		return nil, err
	}
	return &Linter{cfg: cfg, rules: rules}, nil
}

// Report holds the findings for one document.
type Report struct {
	Path     string           `json:"path,omitempty" yaml:"path,omitempty"`
	Findings []schema.Finding `json:"findings" yaml:"findings"`
}

// Errors counts error-severity findings.
func (r Report) Errors() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == types.SeverityError {
			n++
		}
	}
	return n
}

// Warnings counts warning-severity findings.
func (r Report) Warnings() int {
	return len(r.Findings) - r.Errors()
}

// Failed reports whether the document should fail the lint run.
func (r Report) Failed() bool {
	return r.Errors() > 0
}

// Check runs schema validation, unknown-key and file checks, and the
// configured CEL rules against doc. dir is the Space root for file checks;
// empty dir skips them.
func (l *Linter) Check(doc *card.Document, dir string) Report {
	report := Report{Findings: schema.Validate(&doc.Card)}

	for _, key := range doc.UnknownKeys {
		report.Findings = append(report.Findings, schema.Finding{
			Field:    key,
			Severity: types.SeverityWarning,
			Message:  "not a recognized configuration key",
		})
	}

	if l.cfg.CheckFiles && dir != "" && doc.Card.AppFile != "" {
		path := filepath.Join(dir, filepath.FromSlash(doc.Card.AppFile))
		if _, err := os.Stat(path); err != nil {
			report.Findings = append(report.Findings, schema.Finding{
				Field:    "app_file",
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("entry point %q not found in Space directory", doc.Card.AppFile),
			})
		}
	}

	report.Findings = append(report.Findings, l.rules.check(&doc.Card)...)
	return report
}
