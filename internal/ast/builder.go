package ast

import "fmt"

// FeatureBuilder assembles a Feature incrementally. At most one scenario or
// outline is open at a time; it must be closed with EndScenario/EndOutline
// before another one starts or Build is called. Violating that is a
// programming error and surfaces from Build.
type FeatureBuilder struct {
	feature Feature
	open    *openChild
	err     error
}

// openChild is the single pending slot: exactly one field is set.
type openChild struct {
	scenario *Scenario
	outline  *ScenarioOutline
}

// NewFeatureBuilder starts a feature with the given title.
func NewFeatureBuilder(title string) *FeatureBuilder {
	return &FeatureBuilder{feature: Feature{Title: title, Language: "en"}}
}

func (b *FeatureBuilder) fail(format string, args ...any) *FeatureBuilder {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
	return b
}

// Language sets the document language code.
func (b *FeatureBuilder) Language(code string) *FeatureBuilder {
	b.feature.Language = code
	return b
}

// Tag appends a feature-level tag (name without the @ prefix).
func (b *FeatureBuilder) Tag(name string) *FeatureBuilder {
	b.feature.Tags = append(b.feature.Tags, Tag{Name: name})
	return b
}

// Description sets the feature description.
func (b *FeatureBuilder) Description(text string) *FeatureBuilder {
	b.feature.Description = text
	return b
}

// Background sets the shared background.
func (b *FeatureBuilder) Background(bg Background) *FeatureBuilder {
	b.feature.Background = &bg
	return b
}

// StartScenario opens a new scenario. Any previously opened child must have
// been closed first.
func (b *FeatureBuilder) StartScenario(title string) *FeatureBuilder {
	if b.open != nil {
		return b.fail("StartScenario %q: previous child not finalized", title)
	}
	b.open = &openChild{scenario: &Scenario{Title: title}}
	return b
}

// StartOutline opens a new scenario outline.
func (b *FeatureBuilder) StartOutline(title string) *FeatureBuilder {
	if b.open != nil {
		return b.fail("StartOutline %q: previous child not finalized", title)
	}
	b.open = &openChild{outline: &ScenarioOutline{Title: title}}
	return b
}

// ChildTag appends a tag to the open scenario or outline.
func (b *FeatureBuilder) ChildTag(name string) *FeatureBuilder {
	switch {
	case b.open == nil:
		return b.fail("ChildTag %q: no open scenario or outline", name)
	case b.open.scenario != nil:
		b.open.scenario.Tags = append(b.open.scenario.Tags, Tag{Name: name})
	default:
		b.open.outline.Tags = append(b.open.outline.Tags, Tag{Name: name})
	}
	return b
}

// Step appends a step to the open scenario or outline.
func (b *FeatureBuilder) Step(keyword StepKeyword, text string) *FeatureBuilder {
	return b.addStep(Step{Keyword: keyword, Text: text})
}

// StepWith appends a fully populated step (table or doc string attached).
func (b *FeatureBuilder) StepWith(step Step) *FeatureBuilder {
	return b.addStep(step)
}

func (b *FeatureBuilder) addStep(step Step) *FeatureBuilder {
	switch {
	case b.open == nil:
		return b.fail("Step %q: no open scenario or outline", step.Text)
	case b.open.scenario != nil:
		b.open.scenario.Steps = append(b.open.scenario.Steps, step)
	default:
		b.open.outline.Steps = append(b.open.outline.Steps, step)
	}
	return b
}

// ExamplesBlock appends an Examples table to the open outline.
func (b *FeatureBuilder) ExamplesBlock(ex Examples) *FeatureBuilder {
	if b.open == nil || b.open.outline == nil {
		return b.fail("ExamplesBlock %q: no open outline", ex.Name)
	}
	b.open.outline.Examples = append(b.open.outline.Examples, ex)
	return b
}

// EndScenario closes the open scenario and moves it into the children list.
func (b *FeatureBuilder) EndScenario() *FeatureBuilder {
	if b.open == nil || b.open.scenario == nil {
		return b.fail("EndScenario: no open scenario")
	}
	b.feature.Children = append(b.feature.Children, FeatureChild{Scenario: b.open.scenario})
	b.open = nil
	return b
}

// EndOutline closes the open outline and moves it into the children list.
func (b *FeatureBuilder) EndOutline() *FeatureBuilder {
	if b.open == nil || b.open.outline == nil {
		return b.fail("EndOutline: no open outline")
	}
	b.feature.Children = append(b.feature.Children, FeatureChild{Outline: b.open.outline})
	b.open = nil
	return b
}

// AddRule appends a completed rule, typically from a RuleBuilder.
func (b *FeatureBuilder) AddRule(r Rule) *FeatureBuilder {
	if b.open != nil {
		return b.fail("AddRule %q: previous child not finalized", r.Title)
	}
	rule := r
	b.feature.Children = append(b.feature.Children, FeatureChild{Rule: &rule})
	return b
}

// Build finalizes the feature. It fails if any builder call was misused, if
// a child is still open, or if the title is empty.
func (b *FeatureBuilder) Build() (*Feature, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.open != nil {
		return nil, fmt.Errorf("Build: open scenario or outline not finalized")
	}
	if b.feature.Title == "" {
		return nil, fmt.Errorf("Build: feature title must not be empty")
	}
	f := b.feature
	return &f, nil
}

// RuleBuilder assembles a Rule with the same pending-child discipline as
// FeatureBuilder.
type RuleBuilder struct {
	rule Rule
	open *openChild
	err  error
}

// NewRuleBuilder starts a rule with the given title.
func NewRuleBuilder(title string) *RuleBuilder {
	return &RuleBuilder{rule: Rule{Title: title}}
}

func (b *RuleBuilder) fail(format string, args ...any) *RuleBuilder {
	if b.err == nil {
		b.err = fmt.Errorf(format, args...)
	}
	return b
}

// Tag appends a rule-level tag.
func (b *RuleBuilder) Tag(name string) *RuleBuilder {
	b.rule.Tags = append(b.rule.Tags, Tag{Name: name})
	return b
}

// Description sets the rule description.
func (b *RuleBuilder) Description(text string) *RuleBuilder {
	b.rule.Description = text
	return b
}

// Background sets the rule-scoped background.
func (b *RuleBuilder) Background(bg Background) *RuleBuilder {
	b.rule.Background = &bg
	return b
}

// StartScenario opens a new scenario inside the rule.
func (b *RuleBuilder) StartScenario(title string) *RuleBuilder {
	if b.open != nil {
		return b.fail("StartScenario %q: previous child not finalized", title)
	}
	b.open = &openChild{scenario: &Scenario{Title: title}}
	return b
}

// StartOutline opens a new outline inside the rule.
func (b *RuleBuilder) StartOutline(title string) *RuleBuilder {
	if b.open != nil {
		return b.fail("StartOutline %q: previous child not finalized", title)
	}
	b.open = &openChild{outline: &ScenarioOutline{Title: title}}
	return b
}

// Step appends a step to the open child.
func (b *RuleBuilder) Step(keyword StepKeyword, text string) *RuleBuilder {
	switch {
	case b.open == nil:
		return b.fail("Step %q: no open scenario or outline", text)
	case b.open.scenario != nil:
		b.open.scenario.Steps = append(b.open.scenario.Steps, Step{Keyword: keyword, Text: text})
	default:
		b.open.outline.Steps = append(b.open.outline.Steps, Step{Keyword: keyword, Text: text})
	}
	return b
}

// ExamplesBlock appends an Examples table to the open outline.
func (b *RuleBuilder) ExamplesBlock(ex Examples) *RuleBuilder {
	if b.open == nil || b.open.outline == nil {
		return b.fail("ExamplesBlock %q: no open outline", ex.Name)
	}
	b.open.outline.Examples = append(b.open.outline.Examples, ex)
	return b
}

// EndScenario closes the open scenario.
func (b *RuleBuilder) EndScenario() *RuleBuilder {
	if b.open == nil || b.open.scenario == nil {
		return b.fail("EndScenario: no open scenario")
	}
	b.rule.Children = append(b.rule.Children, RuleChild{Scenario: b.open.scenario})
	b.open = nil
	return b
}

// EndOutline closes the open outline.
func (b *RuleBuilder) EndOutline() *RuleBuilder {
	if b.open == nil || b.open.outline == nil {
		return b.fail("EndOutline: no open outline")
	}
	b.rule.Children = append(b.rule.Children, RuleChild{Outline: b.open.outline})
	b.open = nil
	return b
}

// Build finalizes the rule.
func (b *RuleBuilder) Build() (Rule, error) {
	if b.err != nil {
		return Rule{}, b.err
	}
	if b.open != nil {
		return Rule{}, fmt.Errorf("Build: open scenario or outline not finalized")
	}
	if b.rule.Title == "" {
		return Rule{}, fmt.Errorf("Build: rule title must not be empty")
	}
	return b.rule, nil
}
