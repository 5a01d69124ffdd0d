// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/runtime"
	"github.com/pdiddy/spacecard/internal/schema"
	"github.com/pdiddy/spacecard/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [path]",
	Short: "Launch the Space locally in a container",
	Long: `Run reads the Space's card and launches it in a local container using
docker or podman, whichever is installed. Gradio and streamlit Spaces run
in a Python image with the framework installed; docker Spaces build their
own Dockerfile. Static Spaces have nothing to run.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().Int("port", 0, "host port to expose (default 7860)")
	runCmd.Flags().String("image", "", "container image for python runtimes (default python:3.11-slim)")

	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	readme, dir, err := resolveReadme(args)
	if err != nil {
		return err
	}

	doc, err := card.Load(readme)
	if err != nil {
		return err
	}

	// Refuse to launch an invalid card; the container would fail anyway,
	// only later and less legibly.
	if findings := schema.Validate(&doc.Card); schema.HasErrors(findings) {
		for _, f := range findings {
			fmt.Printf("%s: %s\n", readme, f)
		}
		return fmt.Errorf("%s: card is invalid, not launching", readme)
	}

	rt, err := runtime.Detect()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "Using container runtime: %s\n", rt.Name())

	cfg := runConfig(cmd)
	return runtime.Launch(rt, doc.Card, dir, cfg, os.Stdout)
}

// runConfig assembles the launch config from flags and config file.
func runConfig(cmd *cobra.Command) types.RunConfig {
	port, _ := cmd.Flags().GetInt("port")
	if port == 0 {
		port = viper.GetInt("run.port")
	}

	image, _ := cmd.Flags().GetString("image")
	if image == "" {
		image = viper.GetString("run.python_image")
	}

	return types.RunConfig{Port: port, PythonImage: image}
}
