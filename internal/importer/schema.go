package importer

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// MenuDocument is the top-level YAML structure for menu import and export.
// Items nest through Children; their position decides the order.
type MenuDocument struct {
	Menu  MenuHeader     `yaml:"menu"`
	Items []ItemDocument `yaml:"items"`
}

// MenuHeader defines the menu-level fields.
type MenuHeader struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

// ItemDocument defines one menu item and its children.
type ItemDocument struct {
	Title        string            `yaml:"title"`
	URL          string            `yaml:"url,omitempty"`
	Target       string            `yaml:"target,omitempty"`
	Translations map[string]string `yaml:"translations,omitempty"`
	Children     []ItemDocument    `yaml:"children,omitempty"`
}

// LoadMenuDocument reads and parses a menu YAML file.
func LoadMenuDocument(path string) (*MenuDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseMenuDocument(data)
}

// ParseMenuDocument parses YAML, rejecting keys the document does not define.
func ParseMenuDocument(data []byte) (*MenuDocument, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc MenuDocument
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("parsing menu file: empty document")
		}
		return nil, fmt.Errorf("parsing menu file: %w", err)
	}
	return &doc, nil
}

// WriteMenuDocument encodes doc as YAML with two-space indentation.
func WriteMenuDocument(w io.Writer, doc *MenuDocument) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding menu: %w", err)
	}
	return enc.Close()
}
