package analyzer

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flameparse/internal/pyspy"
)

const sampleModule = `import math

def slow_function(n):
    total = 0
    for i in range(n):
        total += math.sqrt(i)
    return total

def fast_function(n):
    return n
`

func TestAnalyzeExtractsHottestFunction(t *testing.T) {
	dir := t.TempDir()
	module := filepath.Join(dir, "test.py")
	require.NoError(t, os.WriteFile(module, []byte(sampleModule), 0o644))

	capture := filepath.Join(dir, "profile.txt")
	lines := fmt.Sprintf(
		"<module> (%[1]s:1);slow_function (%[1]s:4) 150\n<module> (%[1]s:1);fast_function (%[1]s:10) 50\n",
		module,
	)
	require.NoError(t, os.WriteFile(capture, []byte(lines), 0o644))

	report, err := Analyze(capture)
	require.NoError(t, err)

	assert.Equal(t, 200, report.Summary.TotalSamples)
	assert.Equal(t, module, report.Summary.MainModule)
	assert.Equal(t, "slow_function", report.FunctionTotals[0].Function)
	assert.Equal(t, "fast_function", report.FunctionTotals[1].Function)

	want := "def slow_function(n):\n    total = 0\n    for i in range(n):\n        total += math.sqrt(i)\n    return total"
	assert.Equal(t, want, report.SourceCode)
}

func TestAnalyzeMissingProfileFile(t *testing.T) {
	_, err := Analyze(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, pyspy.ErrProfileNotFound)
}

func TestAnalyzeNoAttributedSamples(t *testing.T) {
	capture := filepath.Join(t.TempDir(), "profile.txt")
	require.NoError(t, os.WriteFile(capture, []byte("opaqueframe 10\n"), 0o644))

	report, err := Analyze(capture)
	require.ErrorIs(t, err, ErrNoTarget)
	require.NotNil(t, report)
	assert.Equal(t, 10, report.Summary.TotalSamples)
	assert.Empty(t, report.SourceCode)
}

func TestAnalyzeUnreadableModule(t *testing.T) {
	dir := t.TempDir()
	capture := filepath.Join(dir, "profile.txt")
	missing := filepath.Join(dir, "gone.py")
	line := fmt.Sprintf("<module> (%[1]s:1);work (%[1]s:4) 100\n", missing)
	require.NoError(t, os.WriteFile(capture, []byte(line), 0o644))

	report, err := Analyze(capture)
	require.ErrorIs(t, err, ErrNoTarget)
	require.NotNil(t, report)
	assert.Equal(t, 100, report.Summary.TotalSamples)
	assert.Empty(t, report.SourceCode)
}
