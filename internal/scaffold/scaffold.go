// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scaffold creates new Space directories: a README with a rendered
// configuration card plus a minimal entry-file stub for the chosen sdk.
package scaffold

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/spacecard/internal/card"
	"github.com/pdiddy/spacecard/internal/schema"
	"github.com/pdiddy/spacecard/pkg/types"
)

// stubs maps each SDK to its entry-file template. The docker stub serves
// the Space over the platform's conventional port.
var stubs = map[types.SDK]string{
	types.SDKGradio: `import gradio as gr


def greet(name):
    return f"Hello {name}!"


demo = gr.Interface(fn=greet, inputs="text", outputs="text")
demo.launch()
`,
	types.SDKStreamlit: `import streamlit as st

st.title("%TITLE%")
st.write("Hello from Streamlit!")
`,
	types.SDKStatic: `<!DOCTYPE html>
<html>
  <head><title>%TITLE%</title></head>
  <body><h1>%TITLE%</h1></body>
</html>
`,
	types.SDKDocker: `FROM python:3.11-slim
WORKDIR /app
COPY . .
EXPOSE 7860
CMD ["python", "-m", "http.server", "7860"]
`,
}

// Create writes a new Space under dir: README.md with the card and the
// sdk's entry-file stub. The card must validate cleanly and the target
// files must not already exist.
func Create(dir string, c types.Card, w io.Writer) error {
	if findings := schema.Validate(&c); schema.HasErrors(findings) {
		for _, f := range findings {
			fmt.Fprintln(w, f)
		}
		return fmt.Errorf("card has validation errors; not scaffolding")
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dir, err)
	}

	readmePath := filepath.Join(dir, "README.md")
	entryPath := filepath.Join(dir, filepath.FromSlash(c.AppFile))
	for _, p := range []string{readmePath, entryPath} {
		if _, err := os.Stat(p); err == nil {
			return fmt.Errorf("%s already exists; refusing to overwrite", p)
		}
	}

	doc := &card.Document{Card: c, Body: readmeBody(c)}
	data, err := card.Render(doc)
	if err != nil {
		return err
	}
	if err := os.WriteFile(readmePath, data, 0o644); err != nil {
		return fmt.Errorf("writing README: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(entryPath), 0o755); err != nil {
		return fmt.Errorf("creating entry directory: %w", err)
	}
	if err := os.WriteFile(entryPath, []byte(entryStub(c)), 0o644); err != nil {
		return fmt.Errorf("writing entry file: %w", err)
	}

	fmt.Fprintf(w, "Created %s\n", readmePath)
	fmt.Fprintf(w, "Created %s\n", entryPath)
	return nil
}

func readmeBody(c types.Card) string {
	body := fmt.Sprintf("\n# %s %s\n", c.Emoji, c.Title)
	if c.ShortDescription != "" {
		body += "\n" + c.ShortDescription + "\n"
	}
	return body
}

func entryStub(c types.Card) string {
	stub, ok := stubs[c.SDK]
	if !ok {
		stub = stubs[types.SDKGradio]
	}
	return strings.ReplaceAll(stub, "%TITLE%", c.Title)
}
