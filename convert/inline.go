package convert

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
)

// inlineKind classifies a node reached while flattening a block.
type inlineKind int

const (
	inlineText    inlineKind = iota // text node
	inlineAnchor                    // a
	inlineBold                      // b, strong
	inlineItalic                    // i, em
	inlineBreak                     // br
	inlineWrapper                   // span and any other element
	inlineSkip                      // comments and script-like content
)

func classifyInline(n *html.Node) inlineKind {
	switch {
	case n.Type == html.TextNode:
		return inlineText
	case n.Type != html.ElementNode, htmldoc.IsRawText(n):
		return inlineSkip
	}

	switch n.DataAtom {
	case atom.A:
		return inlineAnchor
	case atom.B, atom.Strong:
		return inlineBold
	case atom.I, atom.Em:
		return inlineItalic
	case atom.Br:
		return inlineBreak
	default:
		return inlineWrapper
	}
}

// flatten turns n and its descendants into runs, carrying style down.
func (c *Converter) flatten(n *html.Node, style model.Style) []model.Inline {
	switch classifyInline(n) {
	case inlineSkip, inlineBreak:
		return nil
	case inlineText:
		if n.Data == "" {
			return nil
		}
		return []model.Inline{&model.Run{Text: n.Data, Style: style}}
	case inlineAnchor:
		return []model.Inline{c.anchor(n, style)}
	case inlineBold:
		return c.children(n, style.WithBold(true).WithSize(parseInlineStyle(n).fontSize))
	case inlineItalic:
		return c.children(n, style.WithItalic(true).WithSize(parseInlineStyle(n).fontSize))
	case inlineWrapper:
		return c.children(n, style.WithSize(parseInlineStyle(n).fontSize))
	default:
		panic(fmt.Sprintf("convert: unhandled inline kind for %q", n.Data))
	}
}

func (c *Converter) children(n *html.Node, style model.Style) []model.Inline {
	var out []model.Inline
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		out = append(out, c.flatten(ch, style)...)
	}
	return out
}

// anchor converts an <a>. Its text is the plain text of its descendant runs,
// or the href when that is empty. Only absolute http(s) targets become
// hyperlinks.
func (c *Converter) anchor(n *html.Node, style model.Style) model.Inline {
	href := htmldoc.Attr(n, "href")

	var text string
	for _, in := range c.children(n, style) {
		if r, ok := in.(*model.Run); ok {
			text += r.Text
		}
	}
	if text == "" {
		text = href
	}

	if !isHTTPLink(href) {
		c.logger.Debug("anchor degraded to text", "href", href)
		return &model.Run{Text: text, Style: style}
	}
	return &model.Hyperlink{Text: text, URL: href, Size: style.Size}
}
