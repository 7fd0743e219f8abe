// Package validator checks an ast.Feature for semantic defects. Rules are
// pure functions over the tree; the default set is fixed and ordered, and
// callers may append or substitute their own rules.
package validator

import (
	"fmt"

	"github.com/mkarren/gherkit/internal/ast"
)

// Code identifies the kind of a defect.
type Code string

const (
	CodeMissingGiven         Code = "missingGiven"
	CodeMissingThen          Code = "missingThen"
	CodeDuplicateStep        Code = "duplicateStep"
	CodeInvalidTag           Code = "invalidTag"
	CodeInconsistentColumns  Code = "inconsistentTableColumns"
	CodeEmptyTableCell       Code = "emptyTableCell"
	CodeUndefinedPlaceholder Code = "undefinedPlaceholder"
)

// Defect is a single semantic finding. Only the fields relevant to its
// code are populated.
type Defect struct {
	Code        Code
	Subject     string // scenario/outline/background title, or tag name
	Placeholder string
	Expected    int // expected column count
	Found       int // actual column count
	Row         int // 0-based row index
	Column      int // 0-based column index
}

func (d Defect) String() string {
	switch d.Code {
	case CodeMissingGiven:
		return fmt.Sprintf("%q has no Given step", d.Subject)
	case CodeMissingThen:
		return fmt.Sprintf("%q has no Then step", d.Subject)
	case CodeDuplicateStep:
		return fmt.Sprintf("%q repeats the same step twice in a row", d.Subject)
	case CodeInvalidTag:
		return fmt.Sprintf("tag %q is empty or contains spaces", d.Subject)
	case CodeInconsistentColumns:
		return fmt.Sprintf("table row %d has %d columns, header has %d", d.Row, d.Found, d.Expected)
	case CodeEmptyTableCell:
		return fmt.Sprintf("table cell at row %d, column %d is empty", d.Row, d.Column)
	case CodeUndefinedPlaceholder:
		return fmt.Sprintf("placeholder <%s> in outline %q has no matching Examples column", d.Placeholder, d.Subject)
	default:
		return string(d.Code)
	}
}

// Error adapts a defect to the error interface for throw-on-first callers.
type Error struct {
	Defect Defect
}

func (e *Error) Error() string {
	return e.Defect.String()
}

// Rule inspects a feature and reports every defect it finds.
type Rule func(*ast.Feature) []Defect

// DefaultRules returns the standard ordered rule set.
func DefaultRules() []Rule {
	return []Rule{
		StructureRule,
		CoherenceRule,
		TagFormatRule,
		TableConsistencyRule,
		OutlinePlaceholderRule,
	}
}

// Collect runs every rule and concatenates all defects found. It never
// short-circuits. With no rules given, the default set is used.
func Collect(f *ast.Feature, rules ...Rule) []Defect {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	var defects []Defect
	for _, rule := range rules {
		defects = append(defects, rule(f)...)
	}
	return defects
}

// First returns the first defect in rule-list order as an error, or nil
// when the feature is clean.
func First(f *ast.Feature, rules ...Rule) error {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	for _, rule := range rules {
		if defects := rule(f); len(defects) > 0 {
			return &Error{Defect: defects[0]}
		}
	}
	return nil
}
