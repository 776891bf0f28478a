package pysrc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// ErrInvalidReplacement indicates the replacement snippet is not exactly one
// plain function definition.
var ErrInvalidReplacement = errors.New("replacement must be a single function definition")

// ReplaceFunction substitutes every definition of the named function in the
// module with the given snippet, preserving each site's indentation. The
// snippet must parse to exactly one top-level, undecorated function
// definition.
func ReplaceFunction(source []byte, name, replacement string) ([]byte, error) {
	replacement = strings.TrimRight(replacement, "\n")
	if err := validateReplacement(replacement); err != nil {
		return nil, err
	}

	tree, err := parseModule(context.Background(), source)
	if err != nil {
		return nil, err
	}
	defer tree.Close()

	defs := findDefinitions(tree.RootNode(), source, name)
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	spans := outermostSpans(defs)

	// Splice back to front so earlier byte offsets stay valid.
	sort.Slice(spans, func(i, j int) bool { return spans[i].start > spans[j].start })
	out := append([]byte(nil), source...)
	for _, s := range spans {
		text := indentBlock(replacement, s.column)
		out = append(out[:s.start], append([]byte(text), out[s.end:]...)...)
	}
	return out, nil
}

type span struct {
	start, end uint32
	column     int
}

// outermostSpans drops definitions nested inside another matched definition;
// replacing the outer span subsumes them.
func outermostSpans(defs []*sitter.Node) []span {
	var spans []span
	for _, node := range defs {
		start := spanStart(node)
		s := span{
			start:  start.StartByte(),
			end:    node.EndByte(),
			column: int(start.StartPoint().Column),
		}
		nested := false
		for _, other := range spans {
			if s.start >= other.start && s.end <= other.end {
				nested = true
				break
			}
		}
		if !nested {
			spans = append(spans, s)
		}
	}
	return spans
}

func validateReplacement(replacement string) error {
	tree, err := parseModule(context.Background(), []byte(replacement))
	if err != nil {
		return err
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return fmt.Errorf("%w: snippet contains syntax errors", ErrInvalidReplacement)
	}
	if root.NamedChildCount() != 1 || root.NamedChild(0).Type() != nodeFunctionDef {
		return ErrInvalidReplacement
	}
	return nil
}

// indentBlock shifts every line after the first by the site's column, so a
// top-level snippet can replace a nested definition.
func indentBlock(text string, column int) string {
	if column == 0 {
		return text
	}
	indent := strings.Repeat(" ", column)
	lines := strings.Split(text, "\n")
	var b bytes.Buffer
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
			if line != "" {
				b.WriteString(indent)
			}
		}
		b.WriteString(line)
	}
	return b.String()
}
