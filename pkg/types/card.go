// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SDK identifies the runtime framework the hosting platform uses to launch
// a Space's entry file.
type SDK string

const (
	SDKGradio    SDK = "gradio"
	SDKStreamlit SDK = "streamlit"
	SDKDocker    SDK = "docker"
	SDKStatic    SDK = "static"
)

// SDKs lists every accepted runtime, in display order.
var SDKs = []SDK{SDKGradio, SDKStreamlit, SDKDocker, SDKStatic}

// Valid reports whether the SDK is one of the accepted runtimes.
func (s SDK) Valid() bool {
	for _, v := range SDKs {
		if s == v {
			return true
		}
	}
	return false
}

// Color is a listing-page gradient color.
type Color string

const (
	ColorRed    Color = "red"
	ColorYellow Color = "yellow"
	ColorGreen  Color = "green"
	ColorBlue   Color = "blue"
	ColorIndigo Color = "indigo"
	ColorPurple Color = "purple"
	ColorPink   Color = "pink"
	ColorGray   Color = "gray"
)

// Colors lists the accepted gradient colors.
var Colors = []Color{
	ColorRed, ColorYellow, ColorGreen, ColorBlue,
	ColorIndigo, ColorPurple, ColorPink, ColorGray,
}

// Valid reports whether the color is in the accepted palette.
func (c Color) Valid() bool {
	for _, v := range Colors {
		if c == v {
			return true
		}
	}
	return false
}

// Card is the configuration block at the top of a Space README.md. The
// hosting platform reads it once at deployment time: title, emoji, and the
// color gradient drive the listing page; sdk and app_file select the runtime
// and entry point; pinned controls listing order.
//
// Field order here is the canonical rendering order.
type Card struct {
	// Title is the display name shown on the listing page.
	Title string `json:"title" yaml:"title"`

	// Emoji is the single-emoji icon for the listing page.
	Emoji string `json:"emoji" yaml:"emoji"`

	// ColorFrom is the gradient start color.
	ColorFrom Color `json:"colorFrom" yaml:"colorFrom"`

	// ColorTo is the gradient end color.
	ColorTo Color `json:"colorTo" yaml:"colorTo"`

	// SDK selects the runtime: gradio, streamlit, docker, or static.
	SDK SDK `json:"sdk" yaml:"sdk"`

	// AppFile is the path to the entry point, relative to the Space root.
	AppFile string `json:"app_file" yaml:"app_file"`

	// Pinned pins the Space to the top of its owner's listing.
	Pinned bool `json:"pinned" yaml:"pinned"`

	// SDKVersion pins the framework release the platform installs.
	SDKVersion string `json:"sdk_version,omitempty" yaml:"sdk_version,omitempty"`

	// PythonVersion selects the interpreter for python SDKs.
	PythonVersion string `json:"python_version,omitempty" yaml:"python_version,omitempty"`

	// License is an SPDX-style license identifier.
	License string `json:"license,omitempty" yaml:"license,omitempty"`

	// ShortDescription is a one-line summary (60 characters max).
	ShortDescription string `json:"short_description,omitempty" yaml:"short_description,omitempty"`

	// Tags are free-form discovery labels.
	Tags []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// CardFields lists the known card keys in canonical order. internal/card
// uses it to classify unknown keys; internal/lint reports the leftovers.
var CardFields = []string{
	"title", "emoji", "colorFrom", "colorTo", "sdk", "app_file", "pinned",
	"sdk_version", "python_version", "license", "short_description", "tags",
}
