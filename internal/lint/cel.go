// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"fmt"

	"github.com/google/cel-go/cel"
	celtypes "github.com/google/cel-go/common/types"
	celext "github.com/google/cel-go/ext"

	"github.com/pdiddy/spacecard/internal/schema"
	"github.com/pdiddy/spacecard/pkg/types"
)

// compiledRule pairs a configured rule with its evaluable program.
type compiledRule struct {
	rule types.LintRule
	prg  cel.Program
}

// ruleSet holds the compiled user rules.
type ruleSet struct {
	rules []compiledRule
}

// newCardEnv declares one CEL variable per card field, keyed snake_case.
func newCardEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("title", cel.StringType),
		cel.Variable("emoji", cel.StringType),
		cel.Variable("color_from", cel.StringType),
		cel.Variable("color_to", cel.StringType),
		cel.Variable("sdk", cel.StringType),
		cel.Variable("app_file", cel.StringType),
		cel.Variable("pinned", cel.BoolType),
		cel.Variable("sdk_version", cel.StringType),
		cel.Variable("python_version", cel.StringType),
		cel.Variable("license", cel.StringType),
		cel.Variable("short_description", cel.StringType),
		cel.Variable("tags", cel.ListType(cel.StringType)),
		celext.Strings(),
	)
}

// compileRules parses and type-checks every rule expression up front so a
// broken rule is reported once, at startup, with its name.
func compileRules(rules []types.LintRule) (*ruleSet, error) {
	if len(rules) == 0 {
		return &ruleSet{}, nil
	}

	env, err := newCardEnv()
	if err != nil {
		return nil, fmt.Errorf("creating rule environment: %w", err)
	}

	rs := &ruleSet{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		ast, issues := env.Compile(r.Expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, issues.Err())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		rs.rules = append(rs.rules, compiledRule{rule: r, prg: prg})
	}
	return rs, nil
}

// check evaluates every rule against the card. A rule that evaluates to
// false produces a finding at the rule's severity; an evaluation error or a
// non-boolean result is always an error finding.
func (rs *ruleSet) check(c *types.Card) []schema.Finding {
	if len(rs.rules) == 0 {
		return nil
	}

	vars := cardVars(c)
	var findings []schema.Finding
	for _, cr := range rs.rules {
		out, _, err := cr.prg.Eval(vars)
		if err != nil {
			findings = append(findings, schema.Finding{
				Field:    cr.rule.Name,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("rule evaluation failed: %v", err),
			})
			continue
		}

		passed, ok := out.(celtypes.Bool)
		if !ok {
			findings = append(findings, schema.Finding{
				Field:    cr.rule.Name,
				Severity: types.SeverityError,
				Message:  fmt.Sprintf("rule did not evaluate to a boolean, got %v", out.Type()),
			})
			continue
		}

		if !bool(passed) {
			severity := cr.rule.Severity
			if severity == "" {
				severity = types.SeverityWarning
			}
			message := cr.rule.Message
			if message == "" {
				message = cr.rule.Expr
			}
			findings = append(findings, schema.Finding{
				Field:    cr.rule.Name,
				Severity: severity,
				Message:  message,
			})
		}
	}
	return findings
}

// cardVars binds card fields to their CEL variable names.
func cardVars(c *types.Card) map[string]any {
	tags := c.Tags
	if tags == nil {
		tags = []string{}
	}
	return map[string]any{
		"title":             c.Title,
		"emoji":             c.Emoji,
		"color_from":        string(c.ColorFrom),
		"color_to":          string(c.ColorTo),
		"sdk":               string(c.SDK),
		"app_file":          c.AppFile,
		"pinned":            c.Pinned,
		"sdk_version":       c.SDKVersion,
		"python_version":    c.PythonVersion,
		"license":           c.License,
		"short_description": c.ShortDescription,
		"tags":              tags,
	}
}
