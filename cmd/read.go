package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mkarren/gherkit/internal/adapter"
	"github.com/mkarren/gherkit/internal/ast"
	"github.com/mkarren/gherkit/internal/parser"
)

// readFeature loads a document into the model, dispatching on extension:
// .feature sources go through the parser, .txt and .csv through their
// adapters.
func readFeature(path string) (*ast.Feature, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return adapter.FromPlainText(name, data)
	case ".csv":
		return adapter.FromCSV(name, data)
	default:
		return parser.Parse(data)
	}
}
