// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/spacecard/internal/scaffold"
	"github.com/pdiddy/spacecard/pkg/types"
)

// defaultEntryFiles maps each sdk to its conventional entry file.
var defaultEntryFiles = map[types.SDK]string{
	types.SDKGradio:    "app.py",
	types.SDKStreamlit: "app.py",
	types.SDKStatic:    "index.html",
	types.SDKDocker:    "Dockerfile",
}

var initCmd = &cobra.Command{
	Use:   "init <dir>",
	Short: "Scaffold a new Space directory",
	Long: `Init creates a Space directory with a README.md carrying the
configuration card and a minimal entry-file stub for the chosen sdk.
Existing files are never overwritten.`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().String("title", "", "display name (required)")
	initCmd.Flags().String("emoji", "🚀", "single-emoji icon")
	initCmd.Flags().String("color-from", "blue", "gradient start color")
	initCmd.Flags().String("color-to", "green", "gradient end color")
	initCmd.Flags().String("sdk", "gradio", "runtime: gradio, streamlit, docker, or static")
	initCmd.Flags().String("app-file", "", "entry point path (default per sdk)")
	initCmd.Flags().Bool("pinned", false, "pin the Space on its owner's listing")
	initCmd.Flags().String("license", "", "SPDX license identifier")
	initCmd.Flags().String("short-description", "", "one-line summary (60 characters max)")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	title, _ := cmd.Flags().GetString("title")
	if title == "" {
		return fmt.Errorf("--title is required")
	}

	emoji, _ := cmd.Flags().GetString("emoji")
	colorFrom, _ := cmd.Flags().GetString("color-from")
	colorTo, _ := cmd.Flags().GetString("color-to")
	sdk, _ := cmd.Flags().GetString("sdk")
	appFile, _ := cmd.Flags().GetString("app-file")
	pinned, _ := cmd.Flags().GetBool("pinned")
	license, _ := cmd.Flags().GetString("license")
	shortDescription, _ := cmd.Flags().GetString("short-description")

	if appFile == "" {
		appFile = defaultEntryFiles[types.SDK(sdk)]
	}

	c := types.Card{
		Title:            title,
		Emoji:            emoji,
		ColorFrom:        types.Color(colorFrom),
		ColorTo:          types.Color(colorTo),
		SDK:              types.SDK(sdk),
		AppFile:          appFile,
		Pinned:           pinned,
		License:          license,
		ShortDescription: shortDescription,
	}

	return scaffold.Create(args[0], c, os.Stdout)
}
