package pyspy

import (
	"strconv"
	"strings"
)

// ParseLine decodes one line of py-spy raw output into a root-first stack and
// its sample count. The line format is a semicolon-delimited folded stack
// followed by a trailing integer:
//
//	<module> (app.py:1);work (app.py:7) 125
//
// Unparseable lines (blank, no trailing integer, negative count) report
// ok=false and are meant to be skipped silently by the caller.
func ParseLine(line string) (stack Stack, samples int, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil, 0, false
	}

	// Split on the last whitespace run: left is the folded stack, right must
	// be the sample count.
	idx := strings.LastIndexAny(line, " \t")
	if idx < 0 {
		return nil, 0, false
	}
	countStr := line[idx+1:]
	stackStr := strings.TrimRight(line[:idx], " \t")

	samples, err := strconv.Atoi(countStr)
	if err != nil || samples < 0 {
		return nil, 0, false
	}

	for _, item := range strings.Split(stackStr, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		stack = append(stack, parseFrame(item))
	}
	return stack, samples, true
}
