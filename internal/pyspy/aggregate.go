package pyspy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Profile is the immutable outcome of one aggregation pass over a py-spy
// capture. Tally slices preserve key insertion order.
type Profile struct {
	TotalSamples    int
	OverheadSamples int
	EntryModule     string

	Priority  []Entry // "function:line" -> samples, finest granularity
	Functions []Entry // function name -> samples, merged across modules
	Modules   []Entry // module path -> samples
}

// Aggregator accumulates classified stacks into running tallies. One
// instance owns one parse pass; the entry-module fact it detects never leaks
// into another pass.
type Aggregator struct {
	totalSamples    int
	overheadSamples int
	entryModule     string

	priority  *tally
	functions *tally
	modules   *tally
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		priority:  newTally(),
		functions: newTally(),
		modules:   newTally(),
	}
}

// Absorb attributes one decoded stack's samples. It never fails: stacks
// without a resolvable active frame count toward the total but land in no
// tally.
func (a *Aggregator) Absorb(stack Stack, samples int) {
	a.totalSamples += samples

	// First-write-wins: the first stack rooted at a concrete .py file names
	// the entry module for the rest of the pass.
	if a.entryModule == "" {
		if name, ok := DetectEntryModule(stack); ok {
			a.entryModule = name
		}
	}

	switch Classify(stack, a.entryModule) {
	case ImportOverhead:
		a.overheadSamples += samples
		// Some import-time work is really top-level user computation, so a
		// locatable active frame still earns an optimization-ranking entry.
		if f, ok := stack.Active(); ok {
			if module, line, ok := f.SplitLocation(); ok {
				a.credit(f.Name, cleanModuleName(module), line, samples)
			}
		}

	case EntryModuleCode:
		frames := stack
		if root, ok := frames.Root(); ok && strings.HasPrefix(root.Raw, moduleLevelMarker) {
			frames = frames[1:]
		}
		if len(frames) == 0 {
			// Pure top-level execution with no function below it.
			a.overheadSamples += samples
			return
		}
		f := frames[len(frames)-1]
		if _, line, ok := f.SplitLocation(); ok && isDigits(line) {
			// All entry-module attribution merges under the entry module's
			// own key, whatever path the active frame reports.
			a.credit(f.Name, a.entryModule, line, samples)
		}

	case OtherModuleCode:
		if f, ok := stack.Active(); ok {
			if module, line, ok := f.SplitLocation(); ok {
				a.credit(f.Name, cleanModuleName(module), line, samples)
			}
		}
	}
}

func (a *Aggregator) credit(function, module, line string, samples int) {
	a.priority.add(function+":"+line, samples)
	a.functions.add(function, samples)
	a.modules.add(module, samples)
}

// Finish snapshots the aggregation state. The Aggregator must not be used
// afterwards.
func (a *Aggregator) Finish() *Profile {
	return &Profile{
		TotalSamples:    a.totalSamples,
		OverheadSamples: a.overheadSamples,
		EntryModule:     a.entryModule,
		Priority:        a.priority.entries(),
		Functions:       a.functions.entries(),
		Modules:         a.modules.entries(),
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseReader consumes py-spy raw output line by line in a single pass.
// Malformed lines are skipped silently.
func ParseReader(r io.Reader) (*Profile, error) {
	agg := NewAggregator()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		stack, samples, ok := ParseLine(scanner.Text())
		if !ok {
			continue
		}
		agg.Absorb(stack, samples)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	return agg.Finish(), nil
}

// ParseFile reads a py-spy raw capture from disk. A missing file is reported
// as ErrProfileNotFound.
func ParseFile(path string) (*Profile, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrProfileNotFound, path)
		}
		return nil, fmt.Errorf("opening profile: %w", err)
	}
	defer f.Close()
	return ParseReader(f)
}
