package pysrc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReplaceFunctionTopLevel(t *testing.T) {
	source := []byte(`import math

def work(n):
    return math.sqrt(n)

def other():
    pass
`)
	got, err := ReplaceFunction(source, "work", "def work(n):\n    return n ** 0.5")
	require.NoError(t, err)

	assert.Contains(t, string(got), "def work(n):\n    return n ** 0.5")
	assert.NotContains(t, string(got), "math.sqrt")
	assert.Contains(t, string(got), "def other():")
}

func TestReplaceFunctionReplacesEveryDefinition(t *testing.T) {
	source := []byte(`def work():
    return 1

def work():
    return 2
`)
	got, err := ReplaceFunction(source, "work", "def work():\n    return 9")
	require.NoError(t, err)

	out := string(got)
	assert.NotContains(t, out, "return 1")
	assert.NotContains(t, out, "return 2")
	assert.Equal(t, 2, strings.Count(out, "return 9"))
}

func TestReplaceFunctionNestedKeepsIndentation(t *testing.T) {
	source := []byte(`def outer():
    def inner():
        return 42
    return inner
`)
	got, err := ReplaceFunction(source, "inner", "def inner():\n    return 0")
	require.NoError(t, err)

	assert.Contains(t, string(got), "    def inner():\n        return 0")
	assert.Contains(t, string(got), "def outer():")
}

func TestReplaceFunctionDecoratedTarget(t *testing.T) {
	source := []byte(`@cache
def work():
    return 1
`)
	got, err := ReplaceFunction(source, "work", "def work():\n    return 2")
	require.NoError(t, err)

	// The span starts at the decorator, so the replacement drops it.
	assert.NotContains(t, string(got), "@cache")
	assert.Contains(t, string(got), "def work():\n    return 2")
}

func TestReplaceFunctionNotFound(t *testing.T) {
	_, err := ReplaceFunction([]byte("def work():\n    pass\n"), "missing", "def missing():\n    pass")
	assert.ErrorIs(t, err, ErrFunctionNotFound)
}

func TestReplaceFunctionRejectsInvalidSnippets(t *testing.T) {
	source := []byte("def work():\n    pass\n")
	tests := []struct {
		name    string
		snippet string
	}{
		{"two functions", "def a():\n    pass\n\ndef b():\n    pass"},
		{"bare expression", "1 + 1"},
		{"syntax error", "def broken(:\n    pass"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReplaceFunction(source, "work", tt.snippet)
			assert.ErrorIs(t, err, ErrInvalidReplacement)
		})
	}
}
