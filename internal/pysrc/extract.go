// Package pysrc recovers and rewrites Python function definitions through a
// structural tree-sitter parse, so nested definitions, multi-line signatures
// and decorators are handled without line heuristics.
package pysrc

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// ErrFunctionNotFound indicates no definition with the requested name exists
// anywhere in the module's syntax tree.
var ErrFunctionNotFound = errors.New("function definition not found")

const (
	nodeFunctionDef  = "function_definition"
	nodeDecoratedDef = "decorated_definition"
)

func parseModule(ctx context.Context, source []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	return tree, nil
}

// definitionName returns the identifier of a function_definition node.
func definitionName(node *sitter.Node, source []byte) string {
	name := node.ChildByFieldName("name")
	if name == nil {
		return ""
	}
	return name.Content(source)
}

// spanStart returns the node whose start position opens the definition's
// span: the decorated_definition wrapper when decorators are present,
// otherwise the definition itself.
func spanStart(node *sitter.Node) *sitter.Node {
	if parent := node.Parent(); parent != nil && parent.Type() == nodeDecoratedDef {
		return parent
	}
	return node
}

// findDefinitions walks the whole tree top to bottom and returns every
// function_definition named name, in walk order.
func findDefinitions(root *sitter.Node, source []byte, name string) []*sitter.Node {
	var found []*sitter.Node
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == nodeFunctionDef && definitionName(n, source) == name {
			found = append(found, n)
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)
	return found
}

// ExtractFunction locates the definition of the named function in the given
// Python source and returns its exact text span, leading decorators
// included. When the name is defined more than once, the last definition in
// the structural walk wins, matching redefinition semantics.
func ExtractFunction(source []byte, name string) (string, error) {
	tree, err := parseModule(context.Background(), source)
	if err != nil {
		return "", err
	}
	defer tree.Close()

	defs := findDefinitions(tree.RootNode(), source, name)
	if len(defs) == 0 {
		return "", fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}
	node := defs[len(defs)-1]

	start := int(spanStart(node).StartPoint().Row)
	end := int(node.EndPoint().Row)

	lines := strings.Split(string(source), "\n")
	if end >= len(lines) {
		end = len(lines) - 1
	}
	return strings.Join(lines[start:end+1], "\n"), nil
}

// ExtractFunctionFromFile reads a module from disk as UTF-8 text and extracts
// the named function's span.
func ExtractFunctionFromFile(path, name string) (string, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading module %s: %w", path, err)
	}
	return ExtractFunction(source, name)
}
