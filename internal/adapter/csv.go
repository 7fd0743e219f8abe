package adapter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/mkarren/gherkit/internal/ast"
)

// FromCSV builds a feature from rows of (scenario, keyword, text).
// Consecutive rows sharing a scenario name become one scenario. A leading
// header row of exactly "scenario,keyword,text" is skipped. name becomes
// the feature title.
func FromCSV(name string, src []byte) (*ast.Feature, error) {
	reader := csv.NewReader(bytes.NewReader(src))
	reader.FieldsPerRecord = 3
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading CSV: %w", err)
	}

	b := ast.NewFeatureBuilder(name)
	current := ""
	open := false
	for i, rec := range records {
		scenario := strings.TrimSpace(rec[0])
		if i == 0 && isHeaderRow(rec) {
			continue
		}
		if scenario == "" {
			return nil, fmt.Errorf("row %d: scenario name is empty", i+1)
		}
		if scenario != current {
			if open {
				b.EndScenario()
			}
			b.StartScenario(scenario)
			current = scenario
			open = true
		}
		keyword, text, err := splitStep(strings.TrimSpace(rec[1]) + " " + strings.TrimSpace(rec[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		b.Step(keyword, text)
	}
	if open {
		b.EndScenario()
	}
	f, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building feature from CSV: %w", err)
	}
	return f, nil
}

func isHeaderRow(rec []string) bool {
	return strings.EqualFold(strings.TrimSpace(rec[0]), "scenario") &&
		strings.EqualFold(strings.TrimSpace(rec[1]), "keyword") &&
		strings.EqualFold(strings.TrimSpace(rec[2]), "text")
}
