package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepKeyword_IsPrimary(t *testing.T) {
	assert.True(t, Given.IsPrimary())
	assert.True(t, When.IsPrimary())
	assert.True(t, Then.IsPrimary())
	assert.False(t, And.IsPrimary())
	assert.False(t, But.IsPrimary())
	assert.False(t, Wildcard.IsPrimary())
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "@smoke", Tag{Name: "smoke"}.String())
}

func TestDataTable_Header(t *testing.T) {
	table := DataTable{Rows: [][]string{{"name", "age"}, {"alice", "30"}}}
	assert.Equal(t, []string{"name", "age"}, table.Header())

	assert.Nil(t, DataTable{}.Header())
}

func TestFeature_Equal(t *testing.T) {
	a := &Feature{
		Title:    "Login",
		Language: "en",
		Children: []FeatureChild{
			{Scenario: &Scenario{Title: "ok", Steps: []Step{{Keyword: Given, Text: "a user"}}}},
		},
	}
	b := &Feature{
		Title:    "Login",
		Language: "en",
		Children: []FeatureChild{
			{Scenario: &Scenario{Title: "ok", Steps: []Step{{Keyword: Given, Text: "a user"}}}},
		},
	}
	assert.True(t, a.Equal(b))

	b.Children[0].Scenario.Steps[0].Text = "another user"
	assert.False(t, a.Equal(b))
}
