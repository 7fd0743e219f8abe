// Package adapter builds ast.Feature trees from non-Gherkin sources. The
// adapters only construct the document model; their own input errors never
// surface as parser or validator error kinds.
package adapter

import (
	"fmt"
	"strings"

	"github.com/mkarren/gherkit/internal/ast"
)

// FromPlainText builds a feature from an indented plain-text outline:
// the first non-blank line is the feature title, lines indented one level
// are scenario titles, and lines indented two levels are steps of the form
// "<keyword> <text>". name is used when the source has no title line.
func FromPlainText(name string, src []byte) (*ast.Feature, error) {
	lines := strings.Split(string(src), "\n")

	var b *ast.FeatureBuilder
	sawScenario := false
	for i, raw := range lines {
		lineNum := i + 1
		if strings.TrimSpace(raw) == "" {
			continue
		}
		depth := outlineDepth(raw)
		text := strings.TrimSpace(raw)
		switch {
		case b == nil:
			if depth != 0 {
				return nil, fmt.Errorf("line %d: expected an unindented feature title", lineNum)
			}
			b = ast.NewFeatureBuilder(text)
		case depth == 1:
			if sawScenario {
				b.EndScenario()
			}
			b.StartScenario(text)
			sawScenario = true
		case depth >= 2:
			if !sawScenario {
				return nil, fmt.Errorf("line %d: step before any scenario", lineNum)
			}
			keyword, stepText, err := splitStep(text)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNum, err)
			}
			b.Step(keyword, stepText)
		default:
			return nil, fmt.Errorf("line %d: unexpected unindented line %q", lineNum, text)
		}
	}
	if b == nil {
		b = ast.NewFeatureBuilder(name)
	}
	if sawScenario {
		b.EndScenario()
	}
	f, err := b.Build()
	if err != nil {
		return nil, fmt.Errorf("building feature from plain text: %w", err)
	}
	return f, nil
}

// outlineDepth counts indentation levels of two spaces or one tab each.
func outlineDepth(line string) int {
	depth := 0
	for {
		switch {
		case strings.HasPrefix(line, "\t"):
			line = line[1:]
		case strings.HasPrefix(line, "  "):
			line = line[2:]
		default:
			return depth
		}
		depth++
	}
}

// splitStep parses "<keyword> <text>" with a case-insensitive English
// keyword or the wildcard marker.
func splitStep(text string) (ast.StepKeyword, string, error) {
	if rest, ok := strings.CutPrefix(text, "* "); ok {
		return ast.Wildcard, strings.TrimSpace(rest), nil
	}
	word, rest, _ := strings.Cut(text, " ")
	keywords := map[string]ast.StepKeyword{
		"given": ast.Given,
		"when":  ast.When,
		"then":  ast.Then,
		"and":   ast.And,
		"but":   ast.But,
	}
	kw, ok := keywords[strings.ToLower(word)]
	if !ok {
		return "", "", fmt.Errorf("unknown step keyword %q", word)
	}
	return kw, strings.TrimSpace(rest), nil
}
