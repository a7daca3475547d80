package cli

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harrisonrobin/daybrief/pkg/auth"
)

func TestReportMissingClientSecretsFailsBeforeAnyFetch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{
		"--credentials", filepath.Join(t.TempDir(), "missing-credentials.json"),
	})

	err := rootCmd.Execute()
	require.ErrorIs(t, err, auth.ErrMissingClientSecrets)
}

func TestResolvePathsDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	credentialsPath, tokenPath = "", ""

	creds, tok, err := resolvePaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".config", "daybrief", "credentials.json"), creds)
	assert.Equal(t, filepath.Join(home, ".config", "daybrief", "token.json"), tok)
}

func TestResolvePathsHonorsOverrides(t *testing.T) {
	credentialsPath = "/tmp/c.json"
	tokenPath = "/tmp/t.json"
	t.Cleanup(func() { credentialsPath, tokenPath = "", "" })

	creds, tok, err := resolvePaths()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/c.json", creds)
	assert.Equal(t, "/tmp/t.json", tok)
}
