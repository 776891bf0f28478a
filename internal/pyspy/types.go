package pyspy

import (
	"errors"
	"regexp"
	"strings"
)

// ErrProfileNotFound indicates the py-spy output file does not exist.
var ErrProfileNotFound = errors.New("profile file not found")

// Frame is one call-site description inside a folded stack. Frames that do
// not match the "name (location)" shape keep their raw text as the name and
// carry no location.
type Frame struct {
	Raw      string // frame text exactly as it appeared in the folded stack
	Name     string
	Location string // contents of the parentheses, "" for opaque frames
}

// Stack is a frame sequence in root-first order. The last frame is the
// active one, sampled at capture time.
type Stack []Frame

// Category is the classification of a stack, see Classify.
type Category int

const (
	ImportOverhead Category = iota
	EntryModuleCode
	OtherModuleCode
)

func (c Category) String() string {
	switch c {
	case ImportOverhead:
		return "import-overhead"
	case EntryModuleCode:
		return "entry-module-code"
	case OtherModuleCode:
		return "other-module-code"
	}
	return "unknown"
}

var frameRe = regexp.MustCompile(`([^ ]+)\s+\(([^)]+)\)`)

func parseFrame(raw string) Frame {
	if m := frameRe.FindStringSubmatch(raw); m != nil {
		return Frame{Raw: raw, Name: m[1], Location: m[2]}
	}
	// Opaque frame: retained for stack length, contributes no location.
	return Frame{Raw: raw, Name: raw}
}

// SplitLocation splits a "path:line" location into its module path and line
// part. Locations without a colon (synthetic markers such as
// "<frozen modulename>" carrying no line number) report ok=false.
func (f Frame) SplitLocation() (module, line string, ok bool) {
	if f.Location == "" {
		return "", "", false
	}
	i := strings.IndexByte(f.Location, ':')
	if i < 0 {
		return "", "", false
	}
	return f.Location[:i], f.Location[i+1:], true
}

// Root returns the module-entry frame, the first in root-first order.
func (s Stack) Root() (Frame, bool) {
	if len(s) == 0 {
		return Frame{}, false
	}
	return s[0], true
}

// Active returns the currently-sampled frame, the last in root-first order.
func (s Stack) Active() (Frame, bool) {
	if len(s) == 0 {
		return Frame{}, false
	}
	return s[len(s)-1], true
}

var frozenRe = regexp.MustCompile(`<frozen ([^>]+)>`)

// cleanModuleName strips the interpreter's frozen-module wrapper, so
// "<frozen importlib._bootstrap>" resolves to "importlib._bootstrap".
func cleanModuleName(module string) string {
	if strings.HasPrefix(module, "<frozen ") {
		if m := frozenRe.FindStringSubmatch(module); m != nil {
			return m[1]
		}
	}
	return module
}
