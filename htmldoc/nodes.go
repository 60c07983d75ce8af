package htmldoc

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Attr returns the value of an attribute on a node, or empty string if not found.
func Attr(n *html.Node, key string) string {
	v, _ := LookupAttr(n, key)
	return v
}

// LookupAttr returns the value of an attribute and whether it is present.
func LookupAttr(n *html.Node, key string) (string, bool) {
	for _, attr := range n.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}

// IsElement reports whether n is an element with one of the given atoms.
func IsElement(n *html.Node, atoms ...atom.Atom) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	for _, a := range atoms {
		if n.DataAtom == a {
			return true
		}
	}
	return false
}

// IsRawText reports whether the element holds script-like content that is
// never document text.
func IsRawText(n *html.Node) bool {
	return IsElement(n,
		atom.Script, atom.Style, atom.Template, atom.Noscript,
		atom.Title, atom.Iframe, atom.Noembed, atom.Noframes,
	)
}

// TextContent returns the concatenated text of n and its descendants,
// like the DOM textContent property.
func TextContent(n *html.Node) string {
	var sb strings.Builder
	textContent(n, &sb)
	return sb.String()
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
}

// VisibleText extracts the text a reader would see: raw-text elements are
// skipped and block boundaries and line breaks become spaces.
func VisibleText(nodes []*html.Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		visibleText(n, &sb)
	}
	return sb.String()
}

func visibleText(n *html.Node, sb *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(n.Data)
		return
	case html.ElementNode:
		if IsRawText(n) {
			return
		}
		if n.DataAtom == atom.Br {
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		visibleText(c, sb)
	}
	if IsBlock(n) {
		sb.WriteString(" ")
	}
}

// IsBlock reports whether n is a block-level element.
func IsBlock(n *html.Node) bool {
	return IsElement(n,
		atom.P, atom.Div, atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6,
		atom.Ul, atom.Ol, atom.Li, atom.Blockquote, atom.Pre, atom.Table, atom.Tr,
		atom.Td, atom.Th, atom.Section, atom.Article, atom.Header, atom.Footer,
	)
}

// ChildElements returns the direct element children of n.
func ChildElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// NewElement creates a detached element node.
func NewElement(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     a.String(),
		DataAtom: a,
		Attr:     attrs,
	}
}

// NewText creates a detached text node.
func NewText(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}
