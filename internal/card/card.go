// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package card reads and writes Space configuration cards: the YAML block
// delimited by "---" lines at the top of a Space README.md. Parsing is the
// inverse of rendering; Render emits fields in canonical order so a
// parse/render round-trip is stable.
package card

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/spacecard/pkg/types"
)

// delimiter is the frontmatter fence line.
const delimiter = "---"

// ErrNoFrontmatter is returned when the README does not start with a
// "---"-delimited configuration block.
var ErrNoFrontmatter = errors.New("no configuration block: README must start with a --- delimited YAML block")

// Document is a parsed Space README: the configuration card plus the
// Markdown body that follows the closing delimiter.
type Document struct {
	Card types.Card

	// UnknownKeys are frontmatter keys outside the card schema, in file
	// order. They are preserved for linting but dropped by Render.
	UnknownKeys []string

	// Body is the Markdown content after the closing delimiter, verbatim.
	Body string
}

// Parse splits data into the configuration block and body and decodes the
// block into a Card. Unknown keys are collected, not rejected; type errors
// (including non-literal booleans) are.
func Parse(data []byte) (*Document, error) {
	block, body, err := split(data)
	if err != nil {
		return nil, err
	}

	var node yaml.Node
	if err := yaml.Unmarshal(block, &node); err != nil {
		return nil, fmt.Errorf("parsing configuration block: %w", err)
	}

	doc := &Document{Body: body}
	if len(node.Content) == 0 {
		// Empty block parses to a zero card; validation reports the
		// missing fields.
		return doc, nil
	}

	mapping := node.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("configuration block must be a key/value mapping, got %s", nodeKind(mapping))
	}

	if err := checkLiterals(mapping); err != nil {
		return nil, err
	}

	if err := node.Decode(&doc.Card); err != nil {
		return nil, fmt.Errorf("decoding configuration block: %w", err)
	}

	known := make(map[string]bool, len(types.CardFields))
	for _, f := range types.CardFields {
		known[f] = true
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		if !known[key] {
			doc.UnknownKeys = append(doc.UnknownKeys, key)
		}
	}

	return doc, nil
}

// Load reads and parses the README at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Render serializes the document back to README form: the card in canonical
// field order between "---" fences, followed by the body.
func Render(doc *Document) ([]byte, error) {
	block, err := yaml.Marshal(doc.Card)
	if err != nil {
		return nil, fmt.Errorf("marshaling card: %w", err)
	}

	var b bytes.Buffer
	b.WriteString(delimiter + "\n")
	b.Write(block)
	b.WriteString(delimiter + "\n")
	b.WriteString(doc.Body)
	return b.Bytes(), nil
}

// WriteFile renders the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := Render(d)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// split separates the leading configuration block from the body. The block
// must open on the first line and close with a bare "---" line.
func split(data []byte) (block []byte, body string, err error) {
	content := string(data)
	// Tolerate a UTF-8 BOM from Windows editors.
	content = strings.TrimPrefix(content, "\uFEFF")

	if !strings.HasPrefix(content, delimiter+"\n") {
		return nil, "", ErrNoFrontmatter
	}
	rest := content[len(delimiter)+1:]

	// The closing fence is a "---" line; \r is tolerated before the newline.
	offset := 0
	for {
		idx := strings.Index(rest[offset:], "\n")
		lineEnd := offset + idx
		if idx < 0 {
			lineEnd = len(rest)
		}
		line := strings.TrimRight(rest[offset:lineEnd], "\r")
		if line == delimiter {
			if idx < 0 {
				return []byte(rest[:offset]), "", nil
			}
			return []byte(rest[:offset]), rest[lineEnd+1:], nil
		}
		if idx < 0 {
			return nil, "", fmt.Errorf("unterminated configuration block: missing closing %q line", delimiter)
		}
		offset = lineEnd + 1
	}
}

// checkLiterals enforces literal spellings for typed fields: pinned must be
// a YAML boolean (true/false), not a 1.1 alias like "yes" that the decoder
// would otherwise accept into a bool field.
func checkLiterals(mapping *yaml.Node) error {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, val := mapping.Content[i], mapping.Content[i+1]
		if key.Value != "pinned" {
			continue
		}
		if val.Tag != "!!bool" {
			return fmt.Errorf("line %d: pinned must be the literal true or false, got %q", val.Line, val.Value)
		}
	}
	return nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.SequenceNode:
		return "a list"
	case yaml.ScalarNode:
		return "a scalar"
	default:
		return "an unexpected node"
	}
}
