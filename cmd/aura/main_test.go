package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := rootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := run(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out)
}

func TestValidateReportsMissingKey(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("VISION_PROVIDER", "none")

	out, err := run(t, "validate")
	assert.Error(t, err)
	assert.Contains(t, out, "OPENAI_API_KEY")
}

func TestValidateOK(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("VISION_PROVIDER", "none")

	out, err := run(t, "validate", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "configuration ok")
}

func TestMigrateAndClear(t *testing.T) {
	t.Setenv("DATABASE_URL", "sqlite://"+filepath.Join(t.TempDir(), "aura.db"))

	out, err := run(t, "migrate", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "up to date")

	_, err = run(t, "clear")
	assert.Error(t, err)

	out, err = run(t, "clear", "--yes", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "deleted 0 entries")
}
