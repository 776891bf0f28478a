package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGitHubTokenRoundTrip(t *testing.T) {
	cfg, err := NewAt(t.TempDir())
	require.NoError(t, err)

	assert.False(t, cfg.Exists())
	_, err = cfg.GitHubToken()
	assert.ErrorIs(t, err, ErrConfigNotFound)

	require.NoError(t, cfg.SetGitHubToken("ghp_first"))
	assert.True(t, cfg.Exists())

	token, err := cfg.GitHubToken()
	require.NoError(t, err)
	assert.Equal(t, "ghp_first", token)
}

func TestSetGitHubTokenOverwrites(t *testing.T) {
	cfg, err := NewAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cfg.SetGitHubToken("ghp_first"))
	require.NoError(t, cfg.SetGitHubToken("ghp_second"))

	token, err := cfg.GitHubToken()
	require.NoError(t, err)
	assert.Equal(t, "ghp_second", token)
}

func TestEmptyTokenIsNotFound(t *testing.T) {
	cfg, err := NewAt(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(cfg.Path(), []byte("github:\n  token: \"\"\n"), 0o600))
	_, err = cfg.GitHubToken()
	assert.ErrorIs(t, err, ErrConfigNotFound)
}

func TestTokenFileIsUserOnly(t *testing.T) {
	cfg, err := NewAt(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, cfg.SetGitHubToken("ghp_secret"))

	info, err := os.Stat(cfg.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
