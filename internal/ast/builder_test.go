package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeatureBuilder_BuildsCompleteFeature(t *testing.T) {
	rule, err := NewRuleBuilder("Locked accounts").
		StartScenario("third failure locks").
		Step(Given, "two failed attempts").
		Step(When, "the third attempt fails").
		Step(Then, "the account is locked").
		EndScenario().
		Build()
	require.NoError(t, err)

	f, err := NewFeatureBuilder("Login").
		Language("en").
		Tag("auth").
		Description("Authentication behavior.").
		Background(Background{Steps: []Step{{Keyword: Given, Text: "a registered user"}}}).
		StartScenario("successful login").
		ChildTag("smoke").
		Step(When, "the user signs in").
		Step(Then, "the dashboard is shown").
		EndScenario().
		StartOutline("bad passwords").
		Step(When, "the user signs in with <password>").
		Step(Then, "an error is shown").
		ExamplesBlock(Examples{Table: DataTable{Rows: [][]string{{"password"}, {"hunter2"}}}}).
		EndOutline().
		AddRule(rule).
		Build()
	require.NoError(t, err)

	assert.Equal(t, "Login", f.Title)
	assert.Equal(t, []Tag{{Name: "auth"}}, f.Tags)
	require.NotNil(t, f.Background)
	require.Len(t, f.Children, 3)
	assert.Equal(t, "successful login", f.Children[0].Scenario.Title)
	assert.Equal(t, []Tag{{Name: "smoke"}}, f.Children[0].Scenario.Tags)
	assert.Equal(t, "bad passwords", f.Children[1].Outline.Title)
	require.Len(t, f.Children[1].Outline.Examples, 1)
	assert.Equal(t, "Locked accounts", f.Children[2].Rule.Title)
	require.Len(t, f.Children[2].Rule.Children, 1)
}

func TestFeatureBuilder_StartWhileOpenFails(t *testing.T) {
	_, err := NewFeatureBuilder("f").
		StartScenario("one").
		StartScenario("two").
		EndScenario().
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "previous child not finalized")
}

func TestFeatureBuilder_StepWithoutOpenChildFails(t *testing.T) {
	_, err := NewFeatureBuilder("f").
		Step(Given, "nothing is open").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no open scenario or outline")
}

func TestFeatureBuilder_EndScenarioOnOutlineFails(t *testing.T) {
	_, err := NewFeatureBuilder("f").
		StartOutline("o").
		EndScenario().
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no open scenario")
}

func TestFeatureBuilder_BuildWithOpenChildFails(t *testing.T) {
	_, err := NewFeatureBuilder("f").
		StartScenario("dangling").
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not finalized")
}

func TestFeatureBuilder_EmptyTitleFails(t *testing.T) {
	_, err := NewFeatureBuilder("").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title must not be empty")
}

func TestFeatureBuilder_FirstErrorWins(t *testing.T) {
	_, err := NewFeatureBuilder("f").
		Step(Given, "first misuse").
		EndScenario().
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "first misuse")
}

func TestFeatureBuilder_ExamplesBlockRequiresOutline(t *testing.T) {
	_, err := NewFeatureBuilder("f").
		StartScenario("s").
		ExamplesBlock(Examples{}).
		EndScenario().
		Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no open outline")
}

func TestRuleBuilder_EmptyTitleFails(t *testing.T) {
	_, err := NewRuleBuilder("").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title must not be empty")
}
