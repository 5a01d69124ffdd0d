// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schema validates Space configuration cards field by field. Each
// field is checked independently against its domain; the only cross-field
// rule (entry-file extension vs. sdk) is a warning because the platform
// tolerates the mismatch.
package schema

import (
	"fmt"
	"path"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/pdiddy/spacecard/pkg/types"
)

const (
	// maxTitleLen is the longest title the listing page renders.
	maxTitleLen = 96

	// maxShortDescriptionLen is the platform's one-line summary limit.
	maxShortDescriptionLen = 60
)

// versionRe accepts dotted release strings like "1.25" or "4.36.1".
var versionRe = regexp.MustCompile(`^\d+(\.\d+)*$`)

// Finding is one validation result for a single field.
type Finding struct {
	Field    string         `json:"field" yaml:"field"`
	Severity types.Severity `json:"severity" yaml:"severity"`
	Message  string         `json:"message" yaml:"message"`
}

// String formats the finding for CLI output.
func (f Finding) String() string {
	return fmt.Sprintf("%s: %s: %s", f.Severity, f.Field, f.Message)
}

// HasErrors reports whether any finding is error severity.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == types.SeverityError {
			return true
		}
	}
	return false
}

// Validate checks every card field against its domain and returns the
// findings in field-table order. An empty slice means the card is valid.
func Validate(c *types.Card) []Finding {
	var findings []Finding

	fail := func(field, format string, args ...any) {
		findings = append(findings, Finding{Field: field, Severity: types.SeverityError, Message: fmt.Sprintf(format, args...)})
	}
	warn := func(field, format string, args ...any) {
		findings = append(findings, Finding{Field: field, Severity: types.SeverityWarning, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case c.Title == "":
		fail("title", "required")
	case utf8.RuneCountInString(c.Title) > maxTitleLen:
		fail("title", "%d characters, maximum is %d", utf8.RuneCountInString(c.Title), maxTitleLen)
	}

	switch n := uniseg.GraphemeClusterCount(c.Emoji); {
	case c.Emoji == "":
		fail("emoji", "required")
	case n != 1:
		fail("emoji", "must be a single emoji, got %d characters", n)
	}

	checkColor(&findings, "colorFrom", c.ColorFrom)
	checkColor(&findings, "colorTo", c.ColorTo)

	switch {
	case c.SDK == "":
		fail("sdk", "required; one of %s", joinSDKs())
	case !c.SDK.Valid():
		fail("sdk", "%q is not a supported runtime; one of %s", c.SDK, joinSDKs())
	}

	switch {
	case c.AppFile == "":
		fail("app_file", "required")
	case strings.HasPrefix(c.AppFile, "/"):
		fail("app_file", "must be relative to the Space root, got absolute path %q", c.AppFile)
	case escapesRoot(c.AppFile):
		fail("app_file", "%q escapes the Space root", c.AppFile)
	default:
		if msg := entryFileMismatch(c.SDK, c.AppFile); msg != "" {
			warn("app_file", "%s", msg)
		}
	}

	if c.SDKVersion != "" && !versionRe.MatchString(c.SDKVersion) {
		fail("sdk_version", "%q is not a dotted version", c.SDKVersion)
	}
	if c.PythonVersion != "" && !versionRe.MatchString(c.PythonVersion) {
		fail("python_version", "%q is not a dotted version", c.PythonVersion)
	}
	if c.PythonVersion != "" && (c.SDK == types.SDKDocker || c.SDK == types.SDKStatic) {
		warn("python_version", "has no effect with sdk %q", c.SDK)
	}

	if n := utf8.RuneCountInString(c.ShortDescription); n > maxShortDescriptionLen {
		fail("short_description", "%d characters, maximum is %d", n, maxShortDescriptionLen)
	}

	for i, tag := range c.Tags {
		if strings.TrimSpace(tag) == "" {
			fail("tags", "tag %d is empty", i+1)
		}
	}

	return findings
}

func checkColor(findings *[]Finding, field string, c types.Color) {
	switch {
	case c == "":
		*findings = append(*findings, Finding{Field: field, Severity: types.SeverityError, Message: "required"})
	case !c.Valid():
		*findings = append(*findings, Finding{
			Field:    field,
			Severity: types.SeverityError,
			Message:  fmt.Sprintf("%q is not in the palette; one of %s", c, joinColors()),
		})
	}
}

// escapesRoot reports whether p resolves outside the Space directory.
func escapesRoot(p string) bool {
	clean := path.Clean(p)
	return clean == ".." || strings.HasPrefix(clean, "../")
}

// entryFileMismatch returns a warning message when app_file does not look
// like an entry point for the declared runtime, or "" when it does.
func entryFileMismatch(sdk types.SDK, appFile string) string {
	ext := strings.ToLower(path.Ext(appFile))
	base := path.Base(appFile)

	switch sdk {
	case types.SDKGradio, types.SDKStreamlit:
		if ext != ".py" {
			return fmt.Sprintf("sdk %q runs a python entry point, %q is not a .py file", sdk, appFile)
		}
	case types.SDKStatic:
		if ext != ".html" {
			return fmt.Sprintf("sdk \"static\" serves an HTML entry point, %q is not an .html file", appFile)
		}
	case types.SDKDocker:
		if base != "Dockerfile" && !strings.HasSuffix(base, ".Dockerfile") {
			return fmt.Sprintf("sdk \"docker\" conventionally builds from a Dockerfile, got %q", appFile)
		}
	}
	return ""
}

func joinSDKs() string {
	parts := make([]string, len(types.SDKs))
	for i, s := range types.SDKs {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func joinColors() string {
	parts := make([]string, len(types.Colors))
	for i, c := range types.Colors {
		parts[i] = string(c)
	}
	return strings.Join(parts, ", ")
}
