// Package ast defines the Gherkin document model. The tree is built once,
// by the parser, an adapter, or a builder, and never mutated afterward;
// consumers only read it.
package ast

import "reflect"

// StepKeyword is the literal keyword role of a step. Given/When/Then are
// primary keywords; And/But/Wildcard inherit their semantic role from the
// nearest preceding primary step.
type StepKeyword string

const (
	Given    StepKeyword = "Given"
	When     StepKeyword = "When"
	Then     StepKeyword = "Then"
	And      StepKeyword = "And"
	But      StepKeyword = "But"
	Wildcard StepKeyword = "*"
)

// IsPrimary reports whether the keyword sets the current semantic role.
func (k StepKeyword) IsPrimary() bool {
	return k == Given || k == When || k == Then
}

// Feature is one complete document.
type Feature struct {
	Title       string
	Language    string // language code, "en" when no directive was present
	Tags        []Tag
	Description string
	Background  *Background
	Children    []FeatureChild
	Comments    []Comment
}

// FeatureChild is a direct child of a Feature. Exactly one field is set.
type FeatureChild struct {
	Scenario *Scenario
	Outline  *ScenarioOutline
	Rule     *Rule
}

// Rule groups scenarios under a feature. Rules never nest.
type Rule struct {
	Title       string
	Tags        []Tag
	Description string
	Background  *Background
	Children    []RuleChild
}

// RuleChild is a direct child of a Rule. Exactly one field is set.
type RuleChild struct {
	Scenario *Scenario
	Outline  *ScenarioOutline
}

// Scenario is one concrete test case.
type Scenario struct {
	Title       string
	Tags        []Tag
	Description string
	Steps       []Step
}

// ScenarioOutline is a step template with <name> placeholders and one or
// more Examples tables of concrete substitutions.
type ScenarioOutline struct {
	Title       string
	Tags        []Tag
	Description string
	Steps       []Step
	Examples    []Examples
}

// Background holds steps shared by every scenario in its enclosing feature
// or rule.
type Background struct {
	Name        string
	Description string
	Steps       []Step
}

// Examples is a substitution table for an outline. The table's first row is
// the header defining the substitutable column names.
type Examples struct {
	Name  string
	Tags  []Tag
	Table DataTable
}

// Step is one line of behavior. At most one of Table and DocString is set.
type Step struct {
	Keyword   StepKeyword
	Text      string
	Table     *DataTable
	DocString *DocString
}

// DataTable is tabular literal data. The first row is the header. Row and
// column counts are not enforced here; consistency is a validator concern.
type DataTable struct {
	Rows [][]string
}

// Header returns the first row, or nil for an empty table.
func (t DataTable) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// DocString is a multi-line literal attached to a step.
type DocString struct {
	Content   string
	MediaType string
}

// Tag is a label; Name excludes the @ prefix.
type Tag struct {
	Name string
}

func (t Tag) String() string {
	return "@" + t.Name
}

// Comment is a #-prefixed source line; Text excludes the # prefix.
type Comment struct {
	Text string
}

// Equal reports structural equality with another feature tree.
func (f *Feature) Equal(other *Feature) bool {
	return reflect.DeepEqual(f, other)
}
