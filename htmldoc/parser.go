// Package htmldoc provides the HTML side of the conversion pipeline: an
// injectable fragment parser shared by the sanitizer and the converter,
// node helpers, and rendering of a model.Document back to editor HTML.
package htmldoc

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Parser parses an HTML fragment into a list of top-level nodes.
//
// The returned nodes are detached from any document: they have no parent,
// but their descendants are fully linked so ancestor walks work within the
// fragment.
type Parser interface {
	ParseFragment(r io.Reader) ([]*html.Node, error)
}

// FragmentParser parses fragments as the content of a <body> element, the
// way a browser fills a contenteditable area.
type FragmentParser struct{}

// ParseFragment implements Parser.
func (FragmentParser) ParseFragment(r io.Reader) ([]*html.Node, error) {
	context := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, context)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML fragment: %w", err)
	}
	return nodes, nil
}

// DefaultParser is the parser used when none is injected.
var DefaultParser Parser = FragmentParser{}

// ParseString parses s with p, falling back to DefaultParser when p is nil.
func ParseString(p Parser, s string) ([]*html.Node, error) {
	if p == nil {
		p = DefaultParser
	}
	return p.ParseFragment(strings.NewReader(s))
}

// RenderNodes renders a list of nodes back to an HTML string.
func RenderNodes(nodes []*html.Node) (string, error) {
	var sb strings.Builder
	for _, n := range nodes {
		if err := html.Render(&sb, n); err != nil {
			return "", fmt.Errorf("rendering HTML: %w", err)
		}
	}
	return sb.String(), nil
}
