// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for commands that talk to the Hub.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "spacecard/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// Severity grades a finding: error findings fail the run, warnings do not.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// LintRule is a user-defined check written as a CEL expression over the
// card fields. The rule fails when the expression evaluates to false.
type LintRule struct {
	// Name identifies the rule in reports (e.g. "pinned-needs-description").
	Name string `json:"name" yaml:"name"`

	// Expr is the CEL expression. Card fields are bound by their snake_case
	// key: title, emoji, color_from, color_to, sdk, app_file, pinned,
	// sdk_version, python_version, license, short_description, tags.
	Expr string `json:"expr" yaml:"expr"`

	// Message is shown when the rule fails. Empty falls back to the expression.
	Message string `json:"message,omitempty" yaml:"message,omitempty"`

	// Severity is "error" or "warning" (default "warning").
	Severity Severity `json:"severity,omitempty" yaml:"severity,omitempty"`
}

// LintConfig holds settings for the lint stage.
type LintConfig struct {
	// Rules are user-defined CEL checks run after the built-in schema rules.
	Rules []LintRule `json:"rules" yaml:"rules"`

	// CheckFiles controls whether app_file existence is verified on disk.
	CheckFiles bool `json:"check_files" yaml:"check_files"`
}

// RegistryConfig holds settings for the Space catalog.
type RegistryConfig struct {
	// CatalogDir is the directory holding the catalog database (spaces.db).
	CatalogDir string `json:"catalog_dir" yaml:"catalog_dir"`

	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// HubConfig holds settings for talking to the hosting platform's API.
type HubConfig struct {
	HTTPConfig `yaml:",inline"`

	// Endpoint is the Hub API base URL (default "https://huggingface.co").
	Endpoint string `json:"endpoint" yaml:"endpoint"`

	// Token authenticates requests for private Spaces. Usually loaded from
	// .secrets/hf-token rather than config.
	Token string `json:"token,omitempty" yaml:"token,omitempty"`

	// MaxRetries bounds retry attempts on rate-limited responses (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// RunConfig holds settings for launching a Space locally.
type RunConfig struct {
	// Port is the host port the launched Space listens on (default 7860).
	Port int `json:"port" yaml:"port"`

	// PythonImage is the container image used for gradio and streamlit
	// Spaces (default "python:3.11-slim").
	PythonImage string `json:"python_image" yaml:"python_image"`
}

// ToolConfig groups all stage configurations for the CLI.
type ToolConfig struct {
	Lint     LintConfig     `json:"lint" yaml:"lint"`
	Registry RegistryConfig `json:"registry" yaml:"registry"`
	Hub      HubConfig      `json:"hub" yaml:"hub"`
	Run      RunConfig      `json:"run" yaml:"run"`
}
