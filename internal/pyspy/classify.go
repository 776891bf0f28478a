package pyspy

import (
	"regexp"
	"strings"
)

// importMarkers are the loader-internal function names that identify module
// import machinery. A stack containing any of them, in any frame, is
// import/initialization overhead.
var importMarkers = []string{
	"_find_and_load",
	"_find_and_load_unlocked",
	"_load_unlocked",
	"exec_module",
	"_call_with_frames_removed",
}

// moduleLevelMarker is the frame name the interpreter assigns to top-level
// module execution.
const moduleLevelMarker = "<module>"

// entryFileRe matches a concrete .py file inside a module-level frame's
// location, e.g. "<module> (app.py:3)".
var entryFileRe = regexp.MustCompile(`\(([^)]+\.py):`)

// Classify decides which category a stack belongs to. The predicates are
// ordered and the first match wins:
//
//  1. any frame carrying an import marker -> ImportOverhead
//  2. root is a module-level frame naming the entry module -> EntryModuleCode
//  3. everything else -> OtherModuleCode
func Classify(stack Stack, entryModule string) Category {
	for _, f := range stack {
		for _, marker := range importMarkers {
			if strings.Contains(f.Raw, marker) {
				return ImportOverhead
			}
		}
	}

	if root, ok := stack.Root(); ok && strings.HasPrefix(root.Raw, moduleLevelMarker) {
		if m := entryFileRe.FindStringSubmatch(root.Raw); m != nil {
			if m[1] == entryModule {
				return EntryModuleCode
			}
			return OtherModuleCode
		}
	}

	return OtherModuleCode
}

// DetectEntryModule reports the .py file a module-level root frame executes,
// if the stack has one. Synthetic paths (anything bracket-wrapped) do not
// qualify.
func DetectEntryModule(stack Stack) (string, bool) {
	root, ok := stack.Root()
	if !ok || !strings.HasPrefix(root.Raw, moduleLevelMarker) {
		return "", false
	}
	m := entryFileRe.FindStringSubmatch(root.Raw)
	if m == nil || strings.HasPrefix(m[1], "<") {
		return "", false
	}
	return m[1], true
}
