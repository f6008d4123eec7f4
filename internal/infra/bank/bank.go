// Package bank provides the question catalog sources: a compiled-in default
// bank and a loader for external YAML files in the same layout.
package bank

import (
	"context"
	_ "embed"
	"fmt"
	"os"

	"trivia-quiz-service/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed questions.yaml
var embedded []byte

type bankFile struct {
	Categories map[string][]domain.Question `yaml:"categories"`
}

// EmbeddedLoader serves the compiled-in question bank.
type EmbeddedLoader struct{}

func (EmbeddedLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	return Parse(embedded)
}

// FileLoader reads a question bank from a YAML file on disk.
type FileLoader struct {
	path string
}

func NewFileLoader(path string) FileLoader {
	return FileLoader{path: path}
}

func (l FileLoader) LoadCatalog(_ context.Context) (domain.Catalog, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read question bank: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML question bank and validates its kind tags.
func Parse(data []byte) (domain.Catalog, error) {
	var file bankFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse question bank: %w", err)
	}
	if len(file.Categories) == 0 {
		return domain.Catalog{}, domain.ErrCatalogNotFound
	}
	for category, questions := range file.Categories {
		for _, q := range questions {
			if !q.Kind.Valid() {
				return domain.Catalog{}, fmt.Errorf("question %q in %q: unknown kind %q", q.Prompt, category, q.Kind)
			}
		}
	}
	return domain.NewCatalog(file.Categories), nil
}
