package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mkarren/gherkit/internal/ast"
	"github.com/mkarren/gherkit/internal/parser"
	"github.com/mkarren/gherkit/internal/validator"
)

// FileResult is the outcome of parsing and validating one document.
type FileResult struct {
	Path    string
	Feature *ast.Feature
	Defects []validator.Defect
}

// Walk discovers every .feature file under root, sorted by path.
func Walk(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".feature") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// ProcessFiles parses and validates each path on a pool of workers. The
// results come back in input order; a syntax error or read failure is
// recorded on its item and leaves the other items untouched.
func ProcessFiles(ctx context.Context, workers int, paths []string) []Item[string, FileResult] {
	pool := NewPool(workers, func(_ context.Context, path string) (FileResult, error) {
		data, err := os.ReadFile(path)
		if err != nil {
			return FileResult{Path: path}, fmt.Errorf("reading %s: %w", path, err)
		}
		feature, err := parser.Parse(data)
		if err != nil {
			return FileResult{Path: path}, fmt.Errorf("parsing %s: %w", path, err)
		}
		return FileResult{
			Path:    path,
			Feature: feature,
			Defects: validator.Collect(feature),
		}, nil
	})
	return pool.Execute(ctx, paths)
}
