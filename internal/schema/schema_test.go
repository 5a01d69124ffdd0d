// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schema

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/spacecard/pkg/types"
)

// validCard returns a card that passes every rule; tests mutate one field.
func validCard() types.Card {
	return types.Card{
		Title:     "PDF Table Genius",
		Emoji:     "📋",
		ColorFrom: types.ColorBlue,
		ColorTo:   types.ColorIndigo,
		SDK:       types.SDKStreamlit,
		AppFile:   "App_For_PDF_To_Dataframe.py",
		Pinned:    false,
	}
}

func TestValidate_ValidCard(t *testing.T) {
	c := validCard()
	findings := Validate(&c)
	assert.Empty(t, findings)
	assert.False(t, HasErrors(findings))
}

func TestValidate_FieldRules(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*types.Card)
		wantField    string
		wantSeverity types.Severity
		wantContains string
	}{
		{
			name:         "empty title",
			mutate:       func(c *types.Card) { c.Title = "" },
			wantField:    "title",
			wantSeverity: types.SeverityError,
			wantContains: "required",
		},
		{
			name:         "title over limit",
			mutate:       func(c *types.Card) { c.Title = strings.Repeat("x", 97) },
			wantField:    "title",
			wantSeverity: types.SeverityError,
			wantContains: "maximum",
		},
		{
			name:         "empty emoji",
			mutate:       func(c *types.Card) { c.Emoji = "" },
			wantField:    "emoji",
			wantSeverity: types.SeverityError,
			wantContains: "required",
		},
		{
			name:         "two emoji",
			mutate:       func(c *types.Card) { c.Emoji = "📋📋" },
			wantField:    "emoji",
			wantSeverity: types.SeverityError,
			wantContains: "single emoji",
		},
		{
			name:         "word instead of emoji",
			mutate:       func(c *types.Card) { c.Emoji = "tables" },
			wantField:    "emoji",
			wantSeverity: types.SeverityError,
			wantContains: "single emoji",
		},
		{
			name:         "colorFrom outside palette",
			mutate:       func(c *types.Card) { c.ColorFrom = "teal" },
			wantField:    "colorFrom",
			wantSeverity: types.SeverityError,
			wantContains: "not in the palette",
		},
		{
			name:         "colorTo missing",
			mutate:       func(c *types.Card) { c.ColorTo = "" },
			wantField:    "colorTo",
			wantSeverity: types.SeverityError,
			wantContains: "required",
		},
		{
			name:         "unsupported sdk",
			mutate:       func(c *types.Card) { c.SDK = "flask" },
			wantField:    "sdk",
			wantSeverity: types.SeverityError,
			wantContains: "not a supported runtime",
		},
		{
			name:         "missing app_file",
			mutate:       func(c *types.Card) { c.AppFile = "" },
			wantField:    "app_file",
			wantSeverity: types.SeverityError,
			wantContains: "required",
		},
		{
			name:         "absolute app_file",
			mutate:       func(c *types.Card) { c.AppFile = "/srv/app.py" },
			wantField:    "app_file",
			wantSeverity: types.SeverityError,
			wantContains: "must be relative",
		},
		{
			name:         "app_file escapes root",
			mutate:       func(c *types.Card) { c.AppFile = "../other/app.py" },
			wantField:    "app_file",
			wantSeverity: types.SeverityError,
			wantContains: "escapes",
		},
		{
			name:         "streamlit with html entry point",
			mutate:       func(c *types.Card) { c.AppFile = "index.html" },
			wantField:    "app_file",
			wantSeverity: types.SeverityWarning,
			wantContains: "not a .py file",
		},
		{
			name: "static with python entry point",
			mutate: func(c *types.Card) {
				c.SDK = types.SDKStatic
				c.AppFile = "app.py"
			},
			wantField:    "app_file",
			wantSeverity: types.SeverityWarning,
			wantContains: "not an .html file",
		},
		{
			name: "docker with unconventional file",
			mutate: func(c *types.Card) {
				c.SDK = types.SDKDocker
				c.AppFile = "run.sh"
			},
			wantField:    "app_file",
			wantSeverity: types.SeverityWarning,
			wantContains: "Dockerfile",
		},
		{
			name:         "bad sdk_version",
			mutate:       func(c *types.Card) { c.SDKVersion = "latest" },
			wantField:    "sdk_version",
			wantSeverity: types.SeverityError,
			wantContains: "dotted version",
		},
		{
			name: "python_version with static sdk",
			mutate: func(c *types.Card) {
				c.SDK = types.SDKStatic
				c.AppFile = "index.html"
				c.PythonVersion = "3.11"
			},
			wantField:    "python_version",
			wantSeverity: types.SeverityWarning,
			wantContains: "no effect",
		},
		{
			name:         "short_description over limit",
			mutate:       func(c *types.Card) { c.ShortDescription = strings.Repeat("x", 61) },
			wantField:    "short_description",
			wantSeverity: types.SeverityError,
			wantContains: "maximum",
		},
		{
			name:         "empty tag",
			mutate:       func(c *types.Card) { c.Tags = []string{"pdf", "  "} },
			wantField:    "tags",
			wantSeverity: types.SeverityError,
			wantContains: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCard()
			tt.mutate(&c)

			findings := Validate(&c)
			require.NotEmpty(t, findings, "expected a finding")

			found := false
			for _, f := range findings {
				if f.Field == tt.wantField && f.Severity == tt.wantSeverity {
					assert.Contains(t, f.Message, tt.wantContains)
					found = true
				}
			}
			assert.True(t, found, "no %s finding for field %s in %v", tt.wantSeverity, tt.wantField, findings)
		})
	}
}

// Length limits count characters, not bytes: a 50-character CJK title is
// three times its rune count in UTF-8 and must still pass.
func TestValidate_MultibyteLengths(t *testing.T) {
	c := validCard()
	c.Title = strings.Repeat("表", 50)
	c.ShortDescription = strings.Repeat("表", 60)
	assert.Empty(t, Validate(&c))

	c.Title = strings.Repeat("表", 97)
	findings := Validate(&c)
	require.NotEmpty(t, findings)
	assert.Equal(t, "title", findings[0].Field)
	assert.Contains(t, findings[0].Message, "characters")
}

// Combining sequences and flag emoji are single grapheme clusters even
// though they span several runes.
func TestValidate_EmojiGraphemes(t *testing.T) {
	valid := []string{"📋", "👍🏽", "🇩🇪", "👨‍👩‍👧"}
	for _, e := range valid {
		c := validCard()
		c.Emoji = e
		assert.Empty(t, Validate(&c), "emoji %q should be valid", e)
	}
}

func TestValidate_AllSDKs(t *testing.T) {
	entry := map[types.SDK]string{
		types.SDKGradio:    "app.py",
		types.SDKStreamlit: "app.py",
		types.SDKDocker:    "Dockerfile",
		types.SDKStatic:    "index.html",
	}
	for sdk, file := range entry {
		c := validCard()
		c.SDK = sdk
		c.AppFile = file
		assert.Empty(t, Validate(&c), "sdk %q with %q should be valid", sdk, file)
	}
}

func TestHasErrors(t *testing.T) {
	assert.False(t, HasErrors(nil))
	assert.False(t, HasErrors([]Finding{{Severity: types.SeverityWarning}}))
	assert.True(t, HasErrors([]Finding{
		{Severity: types.SeverityWarning},
		{Severity: types.SeverityError},
	}))
}
