package pyspy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	stack, samples, ok := ParseLine("<module> (test.py:8);slow_function (test.py:4) 200")
	require.True(t, ok)
	assert.Equal(t, 200, samples)
	require.Len(t, stack, 2)
	assert.Equal(t, "<module>", stack[0].Name)
	assert.Equal(t, "test.py:8", stack[0].Location)
	assert.Equal(t, "slow_function", stack[1].Name)
	assert.Equal(t, "test.py:4", stack[1].Location)
}

func TestParseLineRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"whitespace only", "   "},
		{"no count", "onlyastack"},
		{"count not an integer", "func (a.py:1) abc"},
		{"negative count", "func (a.py:1) -5"},
		{"float count", "func (a.py:1) 3.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, ok := ParseLine(tt.line)
			assert.False(t, ok)
		})
	}
}

func TestParseLineOpaqueFrame(t *testing.T) {
	stack, samples, ok := ParseLine("threadstart;work (app.py:12) 10")
	require.True(t, ok)
	assert.Equal(t, 10, samples)
	require.Len(t, stack, 2)
	assert.Equal(t, "threadstart", stack[0].Name)
	assert.Empty(t, stack[0].Location)
	assert.Equal(t, "work", stack[1].Name)
}

func TestParseLineDiscardsEmptyFrames(t *testing.T) {
	stack, _, ok := ParseLine(";;work (app.py:12); 7")
	require.True(t, ok)
	require.Len(t, stack, 1)
	assert.Equal(t, "work", stack[0].Name)
}

func TestParseLineTabSeparatedCount(t *testing.T) {
	stack, samples, ok := ParseLine("work (app.py:12)\t42")
	require.True(t, ok)
	assert.Equal(t, 42, samples)
	assert.Len(t, stack, 1)
}

func TestParseLineSyntheticMarkerLocation(t *testing.T) {
	stack, _, ok := ParseLine("run (<frozen importlib._bootstrap>) 3")
	require.True(t, ok)
	require.Len(t, stack, 1)
	assert.Equal(t, "<frozen importlib._bootstrap>", stack[0].Location)
	_, _, hasLine := stack[0].SplitLocation()
	assert.False(t, hasLine)
}

func TestSplitLocation(t *testing.T) {
	f := Frame{Location: "pkg/mod.py:37"}
	module, line, ok := f.SplitLocation()
	require.True(t, ok)
	assert.Equal(t, "pkg/mod.py", module)
	assert.Equal(t, "37", line)

	_, _, ok = Frame{Location: "nomarker"}.SplitLocation()
	assert.False(t, ok)

	_, _, ok = Frame{}.SplitLocation()
	assert.False(t, ok)
}
