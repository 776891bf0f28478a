package gitops

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitURL(t *testing.T) {
	tests := []struct {
		name   string
		remote string
		want   string
	}{
		{
			"https with .git",
			"https://github.com/owner/repo.git",
			"https://github.com/owner/repo/commit/abc123",
		},
		{
			"https without .git",
			"https://github.com/owner/repo",
			"https://github.com/owner/repo/commit/abc123",
		},
		{
			"ssh remote",
			"git@github.com:owner/repo.git",
			"https://github.com/owner/repo/commit/abc123",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CommitURL(tt.remote, "abc123"))
		})
	}
}

func TestRandSuffix(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		s := randSuffix(branchSuffixLen)
		assert.Len(t, s, branchSuffixLen)
		for _, r := range s {
			assert.True(t, strings.ContainsRune(suffixAlphabet, r))
		}
		seen[s] = true
	}
	// Collisions across 50 draws from 36^6 would be astonishing.
	assert.Greater(t, len(seen), 1)
}
