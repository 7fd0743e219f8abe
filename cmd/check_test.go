package cmd

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck_CleanFile(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("login.feature", []byte(validFeature), 0o644))

	var buf bytes.Buffer
	err := RunCheck(&buf, []string{"login.feature"})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "ok")
	assert.Contains(t, buf.String(), "checked 1 files, no defects")
}

func TestCheck_DefectiveFileFails(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("broken.feature", []byte(defectiveFeature), 0o644))

	var buf bytes.Buffer
	err := RunCheck(&buf, []string{"broken.feature"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 files have problems")
	assert.Contains(t, buf.String(), "has no Then step")
	assert.Contains(t, buf.String(), "checked 1 files, 1 defects")
}

func TestCheck_SyntaxErrorFails(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("bad.feature", []byte("nonsense\n"), 0o644))

	var buf bytes.Buffer
	err := RunCheck(&buf, []string{"bad.feature"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "expected 'Feature:'")
}

func TestCheck_MixedFiles(t *testing.T) {
	inTempDir(t)
	require.NoError(t, os.WriteFile("good.feature", []byte(validFeature), 0o644))
	require.NoError(t, os.WriteFile("broken.feature", []byte(defectiveFeature), 0o644))

	var buf bytes.Buffer
	err := RunCheck(&buf, []string{"good.feature", "broken.feature"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2 files have problems")
}

func TestCheck_MissingFileFails(t *testing.T) {
	inTempDir(t)
	var buf bytes.Buffer
	err := RunCheck(&buf, []string{"gone.feature"})
	require.Error(t, err)
	assert.Contains(t, buf.String(), "gone.feature")
}
