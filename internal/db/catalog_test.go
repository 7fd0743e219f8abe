package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarren/gherkit/internal/ast"
	"github.com/mkarren/gherkit/internal/validator"
)

func loginFeature() *ast.Feature {
	return &ast.Feature{
		Title:    "Login",
		Language: "en",
		Children: []ast.FeatureChild{
			{Scenario: &ast.Scenario{Title: "successful login"}},
			{Outline: &ast.ScenarioOutline{Title: "rejected passwords"}},
			{Rule: &ast.Rule{
				Title: "Locked accounts",
				Children: []ast.RuleChild{
					{Scenario: &ast.Scenario{Title: "third failure locks"}},
				},
			}},
		},
	}
}

func TestUpsertDocument_InsertThenUpdate(t *testing.T) {
	sqlDB := openTestDB(t)

	id, created, err := UpsertDocument(sqlDB, "features/login.feature", loginFeature())
	require.NoError(t, err)
	assert.True(t, created)

	f := loginFeature()
	f.Title = "Login v2"
	again, created, err := UpsertDocument(sqlDB, "features/login.feature", f)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id, again)

	docs, err := ListDocuments(sqlDB)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Login v2", docs[0].Title)
}

func TestReplaceScenarios_IncludesRuleChildren(t *testing.T) {
	sqlDB := openTestDB(t)
	id, _, err := UpsertDocument(sqlDB, "features/login.feature", loginFeature())
	require.NoError(t, err)

	require.NoError(t, ReplaceScenarios(sqlDB, id, loginFeature()))

	_, scenarios, _, err := GetDocument(sqlDB, id)
	require.NoError(t, err)
	require.Len(t, scenarios, 3)
	assert.Equal(t, ScenarioRow{Title: "successful login", Kind: "scenario"}, scenarios[0])
	assert.Equal(t, ScenarioRow{Title: "rejected passwords", Kind: "outline"}, scenarios[1])
	assert.Equal(t, ScenarioRow{Title: "third failure locks", Kind: "scenario"}, scenarios[2])
}

func TestReplaceScenarios_ClearsPreviousRows(t *testing.T) {
	sqlDB := openTestDB(t)
	id, _, err := UpsertDocument(sqlDB, "features/login.feature", loginFeature())
	require.NoError(t, err)

	require.NoError(t, ReplaceScenarios(sqlDB, id, loginFeature()))
	require.NoError(t, ReplaceScenarios(sqlDB, id, &ast.Feature{
		Title: "Login",
		Children: []ast.FeatureChild{
			{Scenario: &ast.Scenario{Title: "only one now"}},
		},
	}))

	_, scenarios, _, err := GetDocument(sqlDB, id)
	require.NoError(t, err)
	require.Len(t, scenarios, 1)
	assert.Equal(t, "only one now", scenarios[0].Title)
}

func TestReplaceDefects(t *testing.T) {
	sqlDB := openTestDB(t)
	id, _, err := UpsertDocument(sqlDB, "features/login.feature", loginFeature())
	require.NoError(t, err)

	defects := []validator.Defect{
		{Code: validator.CodeMissingThen, Subject: "successful login"},
	}
	require.NoError(t, ReplaceDefects(sqlDB, id, defects))

	_, _, stored, err := GetDocument(sqlDB, id)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, string(validator.CodeMissingThen), stored[0].Code)
	assert.Contains(t, stored[0].Detail, "has no Then step")

	require.NoError(t, ReplaceDefects(sqlDB, id, nil))
	_, _, stored, err = GetDocument(sqlDB, id)
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestListDocuments_CountsAndOrder(t *testing.T) {
	sqlDB := openTestDB(t)

	idB, _, err := UpsertDocument(sqlDB, "features/b.feature", loginFeature())
	require.NoError(t, err)
	require.NoError(t, ReplaceScenarios(sqlDB, idB, loginFeature()))

	_, _, err = UpsertDocument(sqlDB, "features/a.feature", &ast.Feature{Title: "A", Language: "fr"})
	require.NoError(t, err)

	docs, err := ListDocuments(sqlDB)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "features/a.feature", docs[0].Path)
	assert.Equal(t, "fr", docs[0].Language)
	assert.Equal(t, 0, docs[0].Scenarios)
	assert.Equal(t, "features/b.feature", docs[1].Path)
	assert.Equal(t, 3, docs[1].Scenarios)
}

func TestGetDocument_UnknownID(t *testing.T) {
	sqlDB := openTestDB(t)
	_, _, _, err := GetDocument(sqlDB, 42)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
