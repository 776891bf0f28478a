package pyspy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStack(t *testing.T, line string) Stack {
	t.Helper()
	stack, _, ok := ParseLine(line + " 1")
	require.True(t, ok)
	return stack
}

func TestClassifyImportMarkerWinsOverRootFrame(t *testing.T) {
	// The root is a module-level frame naming the entry module, but the
	// import marker in its location takes precedence.
	stack := mustStack(t, "<module> (_find_and_load:1)")
	assert.Equal(t, ImportOverhead, Classify(stack, "test.py"))
}

func TestClassifyImportMarkerAnywhereInStack(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"exec_module leaf", "<module> (app.py:1);exec_module (<frozen importlib._bootstrap_external>:940)"},
		{"loader in the middle", "<module> (app.py:1);_load_unlocked (<frozen importlib._bootstrap>:680);compute (lib.py:3)"},
		{"frames removed", "_call_with_frames_removed (<frozen importlib._bootstrap>:241)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, ImportOverhead, Classify(mustStack(t, tt.line), "app.py"))
		})
	}
}

func TestClassifyEntryModule(t *testing.T) {
	stack := mustStack(t, "<module> (test.py:8);slow_function (test.py:4)")
	assert.Equal(t, EntryModuleCode, Classify(stack, "test.py"))
	assert.Equal(t, OtherModuleCode, Classify(stack, "other.py"))
	// Entry module still unset: named-module stacks fall into other-module.
	assert.Equal(t, OtherModuleCode, Classify(stack, ""))
}

func TestClassifyDefaultsToOtherModule(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"opaque root", "threadstart;work (app.py:12)"},
		{"non-module root", "helper (util.py:3);work (util.py:9)"},
		{"module root without .py file", "<module> (<string>:1)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, OtherModuleCode, Classify(mustStack(t, tt.line), "test.py"))
		})
	}
}

func TestClassifyEmptyStack(t *testing.T) {
	assert.Equal(t, OtherModuleCode, Classify(nil, "test.py"))
}

func TestDetectEntryModule(t *testing.T) {
	name, ok := DetectEntryModule(mustStack(t, "<module> (test.py:8);f (test.py:4)"))
	require.True(t, ok)
	assert.Equal(t, "test.py", name)

	_, ok = DetectEntryModule(mustStack(t, "worker (test.py:3)"))
	assert.False(t, ok)

	_, ok = DetectEntryModule(mustStack(t, "<module> (<frozen importlib._bootstrap>:10)"))
	assert.False(t, ok)

	// Bracket-wrapped paths are synthetic even when they end in .py.
	_, ok = DetectEntryModule(mustStack(t, "<module> (<fake.py:1)"))
	assert.False(t, ok)
}
