package htmldoc

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/richdoc/model"
)

// Render converts a document back into editor HTML.
//
// Consecutive list paragraphs regroup into nested <ul>/<ol> elements, a
// deeper item nesting inside the previous <li>. Headings inside lists become
// <li data-heading="N"> with their text wrapped in <span class="li-text">.
// Non-list paragraphs with a left indent are wrapped in one <blockquote> per
// 720 twips. Bold, italic and point sizes become <strong>, <em> and
// font-size spans.
func Render(doc *model.Document) (string, error) {
	var paragraphs []model.Paragraph
	if doc != nil {
		paragraphs = doc.Paragraphs
	}
	if len(paragraphs) == 0 {
		paragraphs = []model.Paragraph{{}}
	}

	b := &builder{}
	for i := range paragraphs {
		b.add(&paragraphs[i])
	}

	out, err := RenderNodes(b.roots)
	if err != nil {
		return "", fmt.Errorf("htmldoc: %w", err)
	}
	return out, nil
}

// listFrame is an open <ul>/<ol> during regrouping.
type listFrame struct {
	list   *html.Node
	kind   model.ListKind
	level  int
	lastLI *html.Node
}

type builder struct {
	roots  []*html.Node
	lists  []*listFrame
	quotes []*html.Node // quotes[i] is the blockquote at depth i+1
}

func (b *builder) add(p *model.Paragraph) {
	if p.IsList() {
		b.quotes = nil
		b.addListItem(p)
		return
	}
	b.lists = nil

	block := paragraphElement(p)
	depth := quoteDepth(p.IndentLeft)
	if depth == 0 {
		b.quotes = nil
		b.roots = append(b.roots, block)
		return
	}

	if len(b.quotes) > depth {
		b.quotes = b.quotes[:depth]
	}
	for len(b.quotes) < depth {
		q := NewElement(atom.Blockquote)
		if len(b.quotes) == 0 {
			b.roots = append(b.roots, q)
		} else {
			b.quotes[len(b.quotes)-1].AppendChild(q)
		}
		b.quotes = append(b.quotes, q)
	}
	b.quotes[depth-1].AppendChild(block)
}

func (b *builder) addListItem(p *model.Paragraph) {
	level := max(p.List.Level, 0)

	for len(b.lists) > 0 {
		top := b.lists[len(b.lists)-1]
		if top.level > level || (top.level == level && top.kind != p.List.Kind) {
			b.lists = b.lists[:len(b.lists)-1]
			continue
		}
		break
	}

	var frame *listFrame
	if n := len(b.lists); n > 0 && b.lists[n-1].level == level {
		frame = b.lists[n-1]
	} else {
		frame = &listFrame{list: NewElement(listAtom(p.List.Kind)), kind: p.List.Kind, level: level}
		if n == 0 {
			b.roots = append(b.roots, frame.list)
		} else {
			parent := b.lists[n-1]
			if parent.lastLI == nil {
				parent.lastLI = NewElement(atom.Li)
				parent.list.AppendChild(parent.lastLI)
			}
			parent.lastLI.AppendChild(frame.list)
		}
		b.lists = append(b.lists, frame)
	}

	li := NewElement(atom.Li)
	if style := alignStyle(p.Align); style != "" {
		li.Attr = append(li.Attr, html.Attribute{Key: "style", Val: style})
	}

	if p.Heading >= 1 && p.Heading <= 3 {
		li.Attr = append(li.Attr, html.Attribute{Key: "data-heading", Val: strconv.Itoa(p.Heading)})
		span := NewElement(atom.Span, html.Attribute{Key: "class", Val: "li-text"})
		appendInlines(span, p.Inlines)
		li.AppendChild(span)
	} else {
		appendInlines(li, p.Inlines)
	}

	frame.list.AppendChild(li)
	frame.lastLI = li
}

func listAtom(k model.ListKind) atom.Atom {
	if k == model.ListNumbered {
		return atom.Ol
	}
	return atom.Ul
}

func quoteDepth(indent int) int {
	if indent <= 0 {
		return 0
	}
	return max(indent/model.QuoteIndent, 1)
}

func paragraphElement(p *model.Paragraph) *html.Node {
	var el *html.Node
	switch {
	case p.Heading >= 3:
		el = NewElement(atom.H3)
	case p.Heading == 2:
		el = NewElement(atom.H2)
	case p.Heading == 1:
		el = NewElement(atom.H1)
	default:
		el = NewElement(atom.P)
	}

	if style := alignStyle(p.Align); style != "" {
		el.Attr = append(el.Attr, html.Attribute{Key: "style", Val: style})
	}

	appendInlines(el, p.Inlines)
	if el.FirstChild == nil {
		el.AppendChild(NewElement(atom.Br))
	}
	return el
}

func alignStyle(a model.Alignment) string {
	switch a {
	case model.AlignStart:
		return "text-align: left"
	case model.AlignCenter:
		return "text-align: center"
	case model.AlignEnd:
		return "text-align: right"
	case model.AlignJustify:
		return "text-align: justify"
	default:
		return ""
	}
}

func fontSizeSpan(pt int) *html.Node {
	return NewElement(atom.Span, html.Attribute{
		Key: "style",
		Val: "font-size: " + strconv.Itoa(model.PointsToPixels(pt)) + "px",
	})
}

func appendInlines(parent *html.Node, inlines []model.Inline) {
	for _, in := range inlines {
		switch v := in.(type) {
		case *model.Run:
			if v.Text == "" {
				continue
			}
			parent.AppendChild(runNode(v))
		case *model.Hyperlink:
			a := NewElement(atom.A, html.Attribute{Key: "href", Val: v.URL})
			a.AppendChild(NewText(v.Text))
			if v.Size > 0 {
				span := fontSizeSpan(v.Size)
				span.AppendChild(a)
				parent.AppendChild(span)
				continue
			}
			parent.AppendChild(a)
		}
	}
}

// runNode builds strong > em > span > text, omitting unused wrappers.
// Newlines in the run become <br> elements.
func runNode(r *model.Run) *html.Node {
	inner := NewElement(atom.Span)
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			inner.AppendChild(NewElement(atom.Br))
		}
		if line != "" {
			inner.AppendChild(NewText(line))
		}
	}

	node := inner
	if r.Style.Size > 0 {
		node.Attr = fontSizeSpan(r.Style.Size).Attr
	} else if inner.FirstChild == inner.LastChild && inner.FirstChild.Type == html.TextNode {
		node = detach(inner.FirstChild)
	}

	if r.Style.Italic {
		em := NewElement(atom.Em)
		em.AppendChild(node)
		node = em
	}
	if r.Style.Bold {
		strong := NewElement(atom.Strong)
		strong.AppendChild(node)
		node = strong
	}
	return node
}

func detach(n *html.Node) *html.Node {
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return n
}
