package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarren/gherkit/internal/db"
)

const validFeature = `Feature: Login
  Scenario: ok
    Given a user
    When they sign in
    Then they are in
`

const defectiveFeature = `Feature: Broken
  Scenario: no outcome
    Given a user
    When they sign in
`

func writeFeature(t *testing.T, name, content string) {
	t.Helper()
	path := filepath.Join("features", name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, 2))
	return buf.String()
}

func TestSync_WithoutInitFails(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunSync(&buf, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gherkit init")
}

func TestSync_RegistersNewFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", validFeature)

	out := runSync(t)
	assert.Contains(t, out, "new")
	assert.Contains(t, out, "features/login.feature")
	assert.Contains(t, out, "synced 1 files")

	sqlDB, err := db.Open("features/gherkit.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	docs, err := db.ListDocuments(sqlDB)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, "Login", docs[0].Title)
	assert.Equal(t, 1, docs[0].Scenarios)
	assert.Equal(t, 0, docs[0].DefectCount)
}

func TestSync_SecondRunTracksExisting(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "login.feature", validFeature)
	runSync(t)

	out := runSync(t)
	assert.Contains(t, out, "trk")
	assert.NotContains(t, out, "new")
}

func TestSync_RecordsDefects(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "broken.feature", defectiveFeature)

	out := runSync(t)
	assert.Contains(t, out, "has no Then step")

	sqlDB, err := db.Open("features/gherkit.db")
	require.NoError(t, err)
	defer sqlDB.Close()

	docs, err := db.ListDocuments(sqlDB)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, 1, docs[0].DefectCount)
}

func TestSync_UnparsableFileIsFailSoft(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "good.feature", validFeature)
	writeFeature(t, "bad.feature", "this is not gherkin\n")

	out := runSync(t)
	assert.Contains(t, out, "err")
	assert.Contains(t, out, "features/bad.feature")
	// The parse failure does not keep the good file out of the catalog.
	assert.Contains(t, out, "features/good.feature")
	assert.Contains(t, out, "synced 1 files")
}

func TestSync_WalksNestedDirectories(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, filepath.Join("auth", "login.feature"), validFeature)

	out := runSync(t)
	assert.Contains(t, out, filepath.Join("features", "auth", "login.feature"))
	assert.Contains(t, out, "synced 1 files")
}
