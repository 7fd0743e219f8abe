package export

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mkarren/gherkit/internal/ast"
)

func TestMarkdown_Headings(t *testing.T) {
	out := Markdown(sampleFeature())
	assert.Contains(t, out, "# Login\n")
	assert.Contains(t, out, "## Scenario: successful login\n")
	assert.Contains(t, out, "## Scenario Outline: rejected passwords\n")
	assert.Contains(t, out, "## Rule: Locked accounts\n")
	assert.Contains(t, out, "### Scenario: third failure locks\n")
}

func TestMarkdown_TagsInBackticks(t *testing.T) {
	out := Markdown(sampleFeature())
	assert.Contains(t, out, "`@auth`")
	assert.Contains(t, out, "`@smoke`")
}

func TestMarkdown_StepsAsBullets(t *testing.T) {
	out := Markdown(sampleFeature())
	assert.Contains(t, out, "- **When** the user signs in\n")
	assert.Contains(t, out, "- **Then** the dashboard is shown\n")
}

func TestMarkdown_TableWithSeparatorRow(t *testing.T) {
	out := Markdown(sampleFeature())
	assert.Contains(t, out, "| password |\n| --- |\n| short |\n")
}

func TestMarkdown_DocStringAsFencedBlock(t *testing.T) {
	out := Markdown(sampleFeature())
	assert.Contains(t, out, "```text\nInvalid credentials.\n```")
}

func TestMarkdown_TrimsStepKeywordSeparator(t *testing.T) {
	f := &ast.Feature{
		Title: "f",
		Children: []ast.FeatureChild{
			{Scenario: &ast.Scenario{Title: "s", Steps: []ast.Step{
				{Keyword: ast.Given, Text: "a thing"},
			}}},
		},
	}
	out := Markdown(f)
	assert.Contains(t, out, "- **Given** a thing\n")
}
