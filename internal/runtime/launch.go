// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package runtime

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/pdiddy/spacecard/pkg/types"
)

const (
	defaultPort        = 7860
	defaultPythonImage = "python:3.11-slim"
)

// Launch runs the Space in dir locally according to its card: python SDKs
// install the framework into a base image and run app_file; docker Spaces
// build from their Dockerfile. Static Spaces have nothing to execute and
// return an error.
func Launch(rt Runtime, c types.Card, dir string, cfg types.RunConfig, output io.Writer) error {
	port := cfg.Port
	if port <= 0 {
		port = defaultPort
	}
	image := cfg.PythonImage
	if image == "" {
		image = defaultPythonImage
	}

	switch c.SDK {
	case types.SDKGradio, types.SDKStreamlit:
		spec := RunSpec{
			Image:   image,
			Dir:     dir,
			Port:    port,
			Command: pythonCommand(c, port),
		}
		fmt.Fprintf(output, "Launching %s Space on port %d with %s\n", c.SDK, port, rt.Name())
		return rt.Run(spec, output)

	case types.SDKDocker:
		tag := imageTag(c.Title)
		fmt.Fprintf(output, "Building Space image %s with %s\n", tag, rt.Name())
		if err := rt.Build(dir, tag, output); err != nil {
			return err
		}
		fmt.Fprintf(output, "Launching Space on port %d\n", port)
		return rt.Run(RunSpec{Image: tag, Port: port}, output)

	case types.SDKStatic:
		return fmt.Errorf("static Spaces are plain files; open %s directly or use any file server", c.AppFile)

	default:
		return fmt.Errorf("cannot launch sdk %q", c.SDK)
	}
}

// pythonCommand assembles the install-and-run line for python SDKs. A
// requirements.txt next to the entry file is installed when the platform
// would install it too.
func pythonCommand(c types.Card, port int) []string {
	var b strings.Builder
	b.WriteString("pip install --quiet ")
	b.WriteString(framework(c))
	b.WriteString(" && if [ -f requirements.txt ]; then pip install --quiet -r requirements.txt; fi && ")

	switch c.SDK {
	case types.SDKStreamlit:
		fmt.Fprintf(&b, "streamlit run %s --server.port %d --server.address 0.0.0.0", c.AppFile, port)
	default: // gradio
		fmt.Fprintf(&b, "GRADIO_SERVER_NAME=0.0.0.0 GRADIO_SERVER_PORT=%d python %s", port, c.AppFile)
	}

	return []string{"sh", "-c", b.String()}
}

// framework returns the pip package for the declared SDK, pinned when the
// card carries an sdk_version.
func framework(c types.Card) string {
	pkg := string(c.SDK)
	if c.SDKVersion != "" {
		return pkg + "==" + c.SDKVersion
	}
	return pkg
}

// imageTag derives a local image tag from the Space title.
func imageTag(title string) string {
	slug := strings.ToLower(strings.TrimSpace(title))
	slug = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '-'
		}
	}, slug)
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "space"
	}
	return path.Join("spacecard", slug) + ":latest"
}
