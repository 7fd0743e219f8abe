// Package export renders the document model for machine consumption: a
// lossless JSON encoding that reconstructs an equal tree, and a
// documentation-oriented Markdown rendering that does not round-trip.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/mkarren/gherkit/internal/ast"
)

// envelopeVersion guards the JSON schema.
const envelopeVersion = "1"

// envelope is the top-level JSON document.
type envelope struct {
	Version string      `json:"version"`
	Feature jsonFeature `json:"feature"`
}

// The json* types mirror the ast field for field. Key order is fixed by
// struct declaration order, so encoding is deterministic.

type jsonFeature struct {
	Title       string         `json:"title"`
	Language    string         `json:"language"`
	Tags        []jsonTag      `json:"tags,omitempty"`
	Description string         `json:"description,omitempty"`
	Background  *jsonBackground `json:"background,omitempty"`
	Children    []jsonChild    `json:"children,omitempty"`
	Comments    []string       `json:"comments,omitempty"`
}

type jsonChild struct {
	Scenario *jsonScenario `json:"scenario,omitempty"`
	Outline  *jsonOutline  `json:"outline,omitempty"`
	Rule     *jsonRule     `json:"rule,omitempty"`
}

type jsonRuleChild struct {
	Scenario *jsonScenario `json:"scenario,omitempty"`
	Outline  *jsonOutline  `json:"outline,omitempty"`
}

type jsonRule struct {
	Title       string          `json:"title"`
	Tags        []jsonTag       `json:"tags,omitempty"`
	Description string          `json:"description,omitempty"`
	Background  *jsonBackground `json:"background,omitempty"`
	Children    []jsonRuleChild `json:"children,omitempty"`
}

type jsonScenario struct {
	Title       string     `json:"title"`
	Tags        []jsonTag  `json:"tags,omitempty"`
	Description string     `json:"description,omitempty"`
	Steps       []jsonStep `json:"steps,omitempty"`
}

type jsonOutline struct {
	Title       string         `json:"title"`
	Tags        []jsonTag      `json:"tags,omitempty"`
	Description string         `json:"description,omitempty"`
	Steps       []jsonStep     `json:"steps,omitempty"`
	Examples    []jsonExamples `json:"examples,omitempty"`
}

type jsonBackground struct {
	Name        string     `json:"name,omitempty"`
	Description string     `json:"description,omitempty"`
	Steps       []jsonStep `json:"steps,omitempty"`
}

type jsonExamples struct {
	Name  string     `json:"name,omitempty"`
	Tags  []jsonTag  `json:"tags,omitempty"`
	Table [][]string `json:"table"`
}

type jsonStep struct {
	Keyword   string         `json:"keyword"`
	Text      string         `json:"text"`
	Table     [][]string     `json:"table,omitempty"`
	DocString *jsonDocString `json:"docString,omitempty"`
}

type jsonDocString struct {
	Content   string `json:"content"`
	MediaType string `json:"mediaType,omitempty"`
}

type jsonTag = string

// Encode marshals a feature tree to its lossless JSON form.
func Encode(f *ast.Feature) ([]byte, error) {
	env := envelope{Version: envelopeVersion, Feature: featureToJSON(f)}
	return json.MarshalIndent(env, "", "  ")
}

// Decode reconstructs a feature tree from Encode output. The result is
// structurally equal to the tree that was encoded.
func Decode(data []byte) (*ast.Feature, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decoding feature JSON: %w", err)
	}
	if env.Version != envelopeVersion {
		return nil, fmt.Errorf("unsupported feature JSON version %q", env.Version)
	}
	return featureFromJSON(env.Feature), nil
}

func featureToJSON(f *ast.Feature) jsonFeature {
	out := jsonFeature{
		Title:       f.Title,
		Language:    f.Language,
		Tags:        tagsToJSON(f.Tags),
		Description: f.Description,
	}
	if f.Background != nil {
		bg := backgroundToJSON(f.Background)
		out.Background = &bg
	}
	for _, child := range f.Children {
		jc := jsonChild{}
		switch {
		case child.Scenario != nil:
			sc := scenarioToJSON(child.Scenario)
			jc.Scenario = &sc
		case child.Outline != nil:
			so := outlineToJSON(child.Outline)
			jc.Outline = &so
		case child.Rule != nil:
			r := ruleToJSON(child.Rule)
			jc.Rule = &r
		}
		out.Children = append(out.Children, jc)
	}
	for _, c := range f.Comments {
		out.Comments = append(out.Comments, c.Text)
	}
	return out
}

func featureFromJSON(j jsonFeature) *ast.Feature {
	f := &ast.Feature{
		Title:       j.Title,
		Language:    j.Language,
		Tags:        tagsFromJSON(j.Tags),
		Description: j.Description,
	}
	if j.Background != nil {
		f.Background = backgroundFromJSON(*j.Background)
	}
	for _, jc := range j.Children {
		child := ast.FeatureChild{}
		switch {
		case jc.Scenario != nil:
			child.Scenario = scenarioFromJSON(*jc.Scenario)
		case jc.Outline != nil:
			child.Outline = outlineFromJSON(*jc.Outline)
		case jc.Rule != nil:
			child.Rule = ruleFromJSON(*jc.Rule)
		}
		f.Children = append(f.Children, child)
	}
	for _, text := range j.Comments {
		f.Comments = append(f.Comments, ast.Comment{Text: text})
	}
	return f
}

func ruleToJSON(r *ast.Rule) jsonRule {
	out := jsonRule{
		Title:       r.Title,
		Tags:        tagsToJSON(r.Tags),
		Description: r.Description,
	}
	if r.Background != nil {
		bg := backgroundToJSON(r.Background)
		out.Background = &bg
	}
	for _, child := range r.Children {
		jc := jsonRuleChild{}
		switch {
		case child.Scenario != nil:
			sc := scenarioToJSON(child.Scenario)
			jc.Scenario = &sc
		case child.Outline != nil:
			so := outlineToJSON(child.Outline)
			jc.Outline = &so
		}
		out.Children = append(out.Children, jc)
	}
	return out
}

func ruleFromJSON(j jsonRule) *ast.Rule {
	r := &ast.Rule{
		Title:       j.Title,
		Tags:        tagsFromJSON(j.Tags),
		Description: j.Description,
	}
	if j.Background != nil {
		r.Background = backgroundFromJSON(*j.Background)
	}
	for _, jc := range j.Children {
		child := ast.RuleChild{}
		switch {
		case jc.Scenario != nil:
			child.Scenario = scenarioFromJSON(*jc.Scenario)
		case jc.Outline != nil:
			child.Outline = outlineFromJSON(*jc.Outline)
		}
		r.Children = append(r.Children, child)
	}
	return r
}

func scenarioToJSON(sc *ast.Scenario) jsonScenario {
	return jsonScenario{
		Title:       sc.Title,
		Tags:        tagsToJSON(sc.Tags),
		Description: sc.Description,
		Steps:       stepsToJSON(sc.Steps),
	}
}

func scenarioFromJSON(j jsonScenario) *ast.Scenario {
	return &ast.Scenario{
		Title:       j.Title,
		Tags:        tagsFromJSON(j.Tags),
		Description: j.Description,
		Steps:       stepsFromJSON(j.Steps),
	}
}

func outlineToJSON(so *ast.ScenarioOutline) jsonOutline {
	out := jsonOutline{
		Title:       so.Title,
		Tags:        tagsToJSON(so.Tags),
		Description: so.Description,
		Steps:       stepsToJSON(so.Steps),
	}
	for _, ex := range so.Examples {
		out.Examples = append(out.Examples, jsonExamples{
			Name:  ex.Name,
			Tags:  tagsToJSON(ex.Tags),
			Table: ex.Table.Rows,
		})
	}
	return out
}

func outlineFromJSON(j jsonOutline) *ast.ScenarioOutline {
	so := &ast.ScenarioOutline{
		Title:       j.Title,
		Tags:        tagsFromJSON(j.Tags),
		Description: j.Description,
		Steps:       stepsFromJSON(j.Steps),
	}
	for _, ex := range j.Examples {
		so.Examples = append(so.Examples, ast.Examples{
			Name:  ex.Name,
			Tags:  tagsFromJSON(ex.Tags),
			Table: ast.DataTable{Rows: ex.Table},
		})
	}
	return so
}

func backgroundToJSON(bg *ast.Background) jsonBackground {
	return jsonBackground{
		Name:        bg.Name,
		Description: bg.Description,
		Steps:       stepsToJSON(bg.Steps),
	}
}

func backgroundFromJSON(j jsonBackground) *ast.Background {
	return &ast.Background{
		Name:        j.Name,
		Description: j.Description,
		Steps:       stepsFromJSON(j.Steps),
	}
}

func stepsToJSON(steps []ast.Step) []jsonStep {
	var out []jsonStep
	for _, s := range steps {
		js := jsonStep{Keyword: string(s.Keyword), Text: s.Text}
		if s.Table != nil {
			js.Table = s.Table.Rows
		}
		if s.DocString != nil {
			js.DocString = &jsonDocString{Content: s.DocString.Content, MediaType: s.DocString.MediaType}
		}
		out = append(out, js)
	}
	return out
}

func stepsFromJSON(steps []jsonStep) []ast.Step {
	var out []ast.Step
	for _, js := range steps {
		s := ast.Step{Keyword: ast.StepKeyword(js.Keyword), Text: js.Text}
		if js.Table != nil {
			s.Table = &ast.DataTable{Rows: js.Table}
		}
		if js.DocString != nil {
			s.DocString = &ast.DocString{Content: js.DocString.Content, MediaType: js.DocString.MediaType}
		}
		out = append(out, s)
	}
	return out
}

func tagsToJSON(tags []ast.Tag) []string {
	var out []string
	for _, t := range tags {
		out = append(out, t.Name)
	}
	return out
}

func tagsFromJSON(names []string) []ast.Tag {
	var out []ast.Tag
	for _, n := range names {
		out = append(out, ast.Tag{Name: n})
	}
	return out
}
