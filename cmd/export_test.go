package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mkarren/gherkit/internal/export"
)

func TestExport_JSON(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(validFeature), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunExport(&buf, "login.feature", "json"))

	decoded, err := export.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "Login", decoded.Title)
	require.Len(t, decoded.Children, 1)
	assert.Equal(t, "ok", decoded.Children[0].Scenario.Title)
}

func TestExport_Markdown(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(validFeature), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunExport(&buf, "login.feature", "markdown"))
	assert.Contains(t, buf.String(), "# Login\n")
	assert.Contains(t, buf.String(), "## Scenario: ok\n")
	assert.Contains(t, buf.String(), "- **Given** a user\n")
}

func TestExport_UnknownFormatFails(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(validFeature), 0o644))

	var buf bytes.Buffer
	err := RunExport(&buf, "login.feature", "yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestExport_CSVAdapterInput(t *testing.T) {
	inTempDir(t)
	csvSrc := "scenario,keyword,text\nok,given,a user\nok,then,they are in\n"
	require.NoError(t, os.WriteFile("login.csv", []byte(csvSrc), 0o644))

	var buf bytes.Buffer
	require.NoError(t, RunExport(&buf, "login.csv", "json"))

	decoded, err := export.Decode(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "login", decoded.Title)
	require.Len(t, decoded.Children, 1)
	assert.Len(t, decoded.Children[0].Scenario.Steps, 2)
}

func TestExport_MissingFileFails(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	require.Error(t, RunExport(&buf, "gone.feature", "json"))
}
