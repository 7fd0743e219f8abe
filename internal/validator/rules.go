package validator

import (
	"regexp"
	"sort"
	"strings"

	"github.com/mkarren/gherkit/internal/ast"
)

var placeholderRE = regexp.MustCompile(`<([^<>]+)>`)

// StructureRule requires every scenario and outline to contain, among its
// own steps, at least one step whose effective keyword is Given and one
// whose effective keyword is Then. Background steps do not count.
func StructureRule(f *ast.Feature) []Defect {
	var defects []Defect
	forEachCase(f, func(title string, steps []ast.Step, _ []ast.Examples) {
		hasGiven, hasThen := false, false
		for _, kw := range effectiveKeywords(steps) {
			switch kw {
			case ast.Given:
				hasGiven = true
			case ast.Then:
				hasThen = true
			}
		}
		if !hasGiven {
			defects = append(defects, Defect{Code: CodeMissingGiven, Subject: title})
		}
		if !hasThen {
			defects = append(defects, Defect{Code: CodeMissingThen, Subject: title})
		}
	})
	return defects
}

// effectiveKeywords resolves each step to its semantic role: a primary
// keyword sets the current role, And/But/Wildcard inherit the nearest
// preceding primary, and a continuation with no preceding primary keeps
// its own literal keyword.
func effectiveKeywords(steps []ast.Step) []ast.StepKeyword {
	out := make([]ast.StepKeyword, len(steps))
	var current ast.StepKeyword
	for i, s := range steps {
		if s.Keyword.IsPrimary() {
			current = s.Keyword
			out[i] = s.Keyword
		} else if current != "" {
			out[i] = current
		} else {
			out[i] = s.Keyword
		}
	}
	return out
}

// CoherenceRule flags immediately adjacent steps with the same literal
// keyword and identical text, in every step sequence of the tree.
func CoherenceRule(f *ast.Feature) []Defect {
	var defects []Defect
	forEachStepSequence(f, func(title string, steps []ast.Step) {
		for i := 1; i < len(steps); i++ {
			if steps[i].Keyword == steps[i-1].Keyword && steps[i].Text == steps[i-1].Text {
				defects = append(defects, Defect{Code: CodeDuplicateStep, Subject: title})
			}
		}
	})
	return defects
}

// TagFormatRule requires every tag in the tree to have a non-empty name
// without space characters.
func TagFormatRule(f *ast.Feature) []Defect {
	var defects []Defect
	forEachTag(f, func(t ast.Tag) {
		if t.Name == "" || strings.ContainsRune(t.Name, ' ') {
			defects = append(defects, Defect{Code: CodeInvalidTag, Subject: t.Name})
		}
	})
	return defects
}

// TableConsistencyRule checks every data table in the tree: each row must
// have as many cells as the header row, and no cell may be empty. The
// checks run independently per row and cell, so one table can yield many
// defects.
func TableConsistencyRule(f *ast.Feature) []Defect {
	var defects []Defect
	forEachTable(f, func(t ast.DataTable) {
		if len(t.Rows) == 0 {
			return
		}
		expected := len(t.Rows[0])
		for rowIdx, row := range t.Rows {
			if rowIdx > 0 && len(row) != expected {
				defects = append(defects, Defect{
					Code:     CodeInconsistentColumns,
					Expected: expected,
					Found:    len(row),
					Row:      rowIdx,
				})
			}
			for colIdx, cell := range row {
				if cell == "" {
					defects = append(defects, Defect{
						Code:   CodeEmptyTableCell,
						Row:    rowIdx,
						Column: colIdx,
					})
				}
			}
		}
	})
	return defects
}

// OutlinePlaceholderRule requires every <name> token in an outline's step
// text to match a column header in at least one of its Examples tables.
// Each unmatched placeholder is reported once, sorted by name.
func OutlinePlaceholderRule(f *ast.Feature) []Defect {
	var defects []Defect
	forEachOutline(f, func(so *ast.ScenarioOutline) {
		headers := make(map[string]bool)
		for _, ex := range so.Examples {
			for _, col := range ex.Table.Header() {
				headers[col] = true
			}
		}
		unmatched := make(map[string]bool)
		for _, step := range so.Steps {
			for _, m := range placeholderRE.FindAllStringSubmatch(step.Text, -1) {
				if !headers[m[1]] {
					unmatched[m[1]] = true
				}
			}
		}
		names := make([]string, 0, len(unmatched))
		for name := range unmatched {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			defects = append(defects, Defect{
				Code:        CodeUndefinedPlaceholder,
				Subject:     so.Title,
				Placeholder: name,
			})
		}
	})
	return defects
}

// forEachCase visits every scenario and outline, feature-level and
// rule-nested, with its own steps only.
func forEachCase(f *ast.Feature, visit func(title string, steps []ast.Step, examples []ast.Examples)) {
	visitChild := func(sc *ast.Scenario, so *ast.ScenarioOutline) {
		if sc != nil {
			visit(sc.Title, sc.Steps, nil)
		}
		if so != nil {
			visit(so.Title, so.Steps, so.Examples)
		}
	}
	for _, child := range f.Children {
		visitChild(child.Scenario, child.Outline)
		if child.Rule != nil {
			for _, rc := range child.Rule.Children {
				visitChild(rc.Scenario, rc.Outline)
			}
		}
	}
}

// forEachStepSequence visits every step sequence in the tree, backgrounds
// included, with the title of its owner.
func forEachStepSequence(f *ast.Feature, visit func(title string, steps []ast.Step)) {
	if f.Background != nil {
		visit(backgroundTitle(f.Background), f.Background.Steps)
	}
	forEachCase(f, func(title string, steps []ast.Step, _ []ast.Examples) {
		visit(title, steps)
	})
	for _, child := range f.Children {
		if child.Rule != nil && child.Rule.Background != nil {
			visit(backgroundTitle(child.Rule.Background), child.Rule.Background.Steps)
		}
	}
}

func backgroundTitle(bg *ast.Background) string {
	if bg.Name != "" {
		return bg.Name
	}
	return "Background"
}

// forEachTag visits every tag on the feature, rules, scenarios, outlines
// and examples blocks.
func forEachTag(f *ast.Feature, visit func(ast.Tag)) {
	all := func(tags []ast.Tag) {
		for _, t := range tags {
			visit(t)
		}
	}
	all(f.Tags)
	visitChild := func(sc *ast.Scenario, so *ast.ScenarioOutline) {
		if sc != nil {
			all(sc.Tags)
		}
		if so != nil {
			all(so.Tags)
			for _, ex := range so.Examples {
				all(ex.Tags)
			}
		}
	}
	for _, child := range f.Children {
		visitChild(child.Scenario, child.Outline)
		if child.Rule != nil {
			all(child.Rule.Tags)
			for _, rc := range child.Rule.Children {
				visitChild(rc.Scenario, rc.Outline)
			}
		}
	}
}

// forEachTable visits every data table in the tree: step tables in every
// step sequence and every Examples table.
func forEachTable(f *ast.Feature, visit func(ast.DataTable)) {
	forEachStepSequence(f, func(_ string, steps []ast.Step) {
		for _, s := range steps {
			if s.Table != nil {
				visit(*s.Table)
			}
		}
	})
	forEachOutline(f, func(so *ast.ScenarioOutline) {
		for _, ex := range so.Examples {
			visit(ex.Table)
		}
	})
}

// forEachOutline visits every scenario outline, feature-level and
// rule-nested.
func forEachOutline(f *ast.Feature, visit func(*ast.ScenarioOutline)) {
	for _, child := range f.Children {
		if child.Outline != nil {
			visit(child.Outline)
		}
		if child.Rule != nil {
			for _, rc := range child.Rule.Children {
				if rc.Outline != nil {
					visit(rc.Outline)
				}
			}
		}
	}
}
