// Package seed loads the documents provisioned into a fresh index.
package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/docsearch/internal/domain/document"
)

//go:embed default.yaml
var defaultSeed []byte

// Format is a seed file encoding.
type Format string

// Supported seed formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

type file struct {
	Documents []entry `yaml:"documents" toml:"documents"`
}

type entry struct {
	ID          string `yaml:"id" toml:"id"`
	Title       string `yaml:"title" toml:"title"`
	Content     string `yaml:"content" toml:"content"`
	ContentType string `yaml:"content_type" toml:"content_type"`
}

// FormatFromPath picks the format by extension: .toml is TOML, anything else YAML.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads documents from a YAML or TOML file. An empty path selects the
// embedded default set.
func Load(path string) ([]document.Document, error) {
	if path == "" {
		return Parse(defaultSeed)
	}
	data, err := os.ReadFile(path) //nolint:gosec // path comes from trusted config
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	docs, err := ParseFormat(data, FormatFromPath(path))
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return docs, nil
}

// Parse decodes and validates a YAML seed document set.
func Parse(data []byte) ([]document.Document, error) {
	return ParseFormat(data, FormatYAML)
}

// ParseFormat decodes and validates a seed document set. Duplicate IDs are
// rejected so that every entry survives the bulk load.
func ParseFormat(data []byte, format Format) ([]document.Document, error) {
	var f file
	var err error
	switch format {
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("unknown seed format %q", format)
	}
	if err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if len(f.Documents) == 0 {
		return nil, errors.New("seed contains no documents")
	}

	docs := make([]document.Document, 0, len(f.Documents))
	seen := make(map[string]int, len(f.Documents))
	for i, e := range f.Documents {
		doc, err := document.New(e.ID, e.Title, e.Content, document.ContentType(e.ContentType))
		if err != nil {
			return nil, fmt.Errorf("document %d: %w", i, err)
		}
		if prev, dup := seen[doc.ID()]; dup {
			return nil, fmt.Errorf("document %d: duplicate id %s (first at %d)", i, doc.ID(), prev)
		}
		seen[doc.ID()] = i
		docs = append(docs, doc)
	}
	return docs, nil
}

// Default returns the embedded default document set.
func Default() []document.Document {
	docs, err := Parse(defaultSeed)
	if err != nil {
		panic(fmt.Sprintf("embedded seed is invalid: %v", err))
	}
	return docs
}
