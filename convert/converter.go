package convert

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/sanitize"
)

// blockKind classifies an element reached at block level.
type blockKind int

const (
	blockParagraph blockKind = iota // p, div, orphan li and anything unknown
	blockHeading                    // h1-h3
	blockQuote                      // blockquote
	blockList                       // ul, ol
	blockSkip                       // script-like content
)

func classifyBlock(n *html.Node) blockKind {
	switch {
	case htmldoc.IsRawText(n):
		return blockSkip
	case htmldoc.IsElement(n, atom.H1, atom.H2, atom.H3):
		return blockHeading
	case htmldoc.IsElement(n, atom.Blockquote):
		return blockQuote
	case htmldoc.IsElement(n, atom.Ul, atom.Ol):
		return blockList
	default:
		return blockParagraph
	}
}

// Converter builds document paragraphs from sanitized HTML.
type Converter struct {
	parser htmldoc.Parser
	logger *slog.Logger
}

// Option configures a Converter.
type Option func(*Converter)

// WithParser injects the HTML parsing capability.
func WithParser(p htmldoc.Parser) Option {
	return func(c *Converter) {
		if p != nil {
			c.parser = p
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Converter.
func New(opts ...Option) *Converter {
	c := &Converter{
		parser: htmldoc.DefaultParser,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var defaultConverter = New()

// Paragraphs converts sanitized HTML using the default Converter.
func Paragraphs(s string) ([]model.Paragraph, error) {
	return defaultConverter.Paragraphs(s)
}

// Paragraphs parses s and converts the resulting fragment.
func (c *Converter) Paragraphs(s string) ([]model.Paragraph, error) {
	nodes, err := htmldoc.ParseString(c.parser, s)
	if err != nil {
		return nil, fmt.Errorf("convert: %w", err)
	}
	return c.ParagraphsFromNodes(nodes), nil
}

// ParagraphsFromNodes converts already-parsed top-level nodes. Text and
// inline elements between blocks form implicit paragraphs. The result always
// holds at least one paragraph.
func (c *Converter) ParagraphsFromNodes(nodes []*html.Node) []model.Paragraph {
	out := c.blocks(nodes, 0, inlineStyle{})
	if len(out) == 0 {
		out = []model.Paragraph{{}}
	}
	return out
}

// blocks converts a sequence of sibling nodes. Consecutive text and inline
// elements are collected into one paragraph carrying the enclosing style;
// runs with no visible text are dropped.
func (c *Converter) blocks(nodes []*html.Node, indent int, enclosing inlineStyle) []model.Paragraph {
	var (
		out     []model.Paragraph
		pending []model.Inline
	)
	base := model.Style{}.WithSize(enclosing.fontSize)
	flush := func() {
		if hasContent(pending) {
			out = append(out, model.Paragraph{
				Inlines:    trimBlank(pending),
				Align:      enclosing.textAlign,
				IndentLeft: indent,
			})
		}
		pending = nil
	}

	for _, n := range nodes {
		switch {
		case isInlineLevel(n):
			pending = append(pending, c.flatten(n, base)...)
		case n.Type == html.ElementNode:
			flush()
			out = append(out, c.block(n, indent)...)
		}
	}
	flush()
	return out
}

// trimBlank drops whitespace-only runs at either end of an implicit
// paragraph, left over from source formatting between blocks.
func trimBlank(inl []model.Inline) []model.Inline {
	blank := func(in model.Inline) bool {
		r, ok := in.(*model.Run)
		return ok && strings.TrimSpace(r.Text) == ""
	}
	for len(inl) > 0 && blank(inl[0]) {
		inl = inl[1:]
	}
	for len(inl) > 0 && blank(inl[len(inl)-1]) {
		inl = inl[:len(inl)-1]
	}
	return inl
}

// inlineAtoms are the phrasing elements that join an implicit paragraph when
// they appear at block level.
var inlineAtoms = map[atom.Atom]bool{
	atom.A: true, atom.B: true, atom.Strong: true, atom.I: true, atom.Em: true,
	atom.Br: true, atom.Span: true, atom.U: true, atom.S: true, atom.Strike: true,
	atom.Small: true, atom.Sub: true, atom.Sup: true, atom.Mark: true, atom.Code: true,
	atom.Kbd: true, atom.Abbr: true, atom.Cite: true, atom.Q: true, atom.Font: true,
	atom.Label: true, atom.Time: true, atom.Del: true, atom.Ins: true,
}

func isInlineLevel(n *html.Node) bool {
	switch n.Type {
	case html.TextNode:
		return true
	case html.ElementNode:
		return inlineAtoms[n.DataAtom]
	}
	return false
}

// block converts one block-level element. indent is the accumulated left
// indent in twips from enclosing blockquotes.
func (c *Converter) block(n *html.Node, indent int) []model.Paragraph {
	switch classifyBlock(n) {
	case blockSkip:
		return nil
	case blockHeading:
		return []model.Paragraph{c.heading(n, indent)}
	case blockQuote:
		return c.quote(n, indent)
	case blockList:
		return c.list(n, indent)
	case blockParagraph:
		return []model.Paragraph{c.paragraph(n, indent)}
	default:
		panic(fmt.Sprintf("convert: unhandled block kind for <%s>", n.Data))
	}
}

func (c *Converter) heading(n *html.Node, indent int) model.Paragraph {
	level := 1
	switch n.DataAtom {
	case atom.H2:
		level = 2
	case atom.H3:
		level = 3
	}
	st := parseInlineStyle(n)
	return model.Paragraph{
		Inlines:    c.children(n, model.Style{}.WithSize(st.fontSize)),
		Heading:    level,
		Align:      st.textAlign,
		IndentLeft: indent,
	}
}

func (c *Converter) paragraph(n *html.Node, indent int) model.Paragraph {
	st := parseInlineStyle(n)
	return model.Paragraph{
		Inlines:    c.children(n, model.Style{}.WithSize(st.fontSize)),
		Align:      st.textAlign,
		IndentLeft: indent,
	}
}

// quote converts its children with additional indent. Text directly inside
// the quote takes the quote's own alignment and font size.
func (c *Converter) quote(n *html.Node, indent int) []model.Paragraph {
	inner := indent + model.QuoteIndent

	var children []*html.Node
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		children = append(children, ch)
	}
	return c.blocks(children, inner, parseInlineStyle(n))
}

// list emits one paragraph per direct <li>, followed by the paragraphs of any
// lists or quotes nested directly inside that item.
func (c *Converter) list(n *html.Node, indent int) []model.Paragraph {
	kind := model.ListBulleted
	if n.DataAtom == atom.Ol {
		kind = model.ListNumbered
	}
	level := listLevel(n)

	var out []model.Paragraph
	for _, li := range htmldoc.ChildElements(n) {
		if li.DataAtom != atom.Li {
			continue
		}

		p := c.listItem(li, kind, level, indent)
		nested := nestedBlocks(li)
		if len(nested) == 0 || hasContent(p.Inlines) {
			out = append(out, p)
		}
		for _, child := range nested {
			out = append(out, c.block(child, indent)...)
		}
	}
	return out
}

func (c *Converter) listItem(li *html.Node, kind model.ListKind, level, indent int) model.Paragraph {
	st := parseInlineStyle(li)
	base := model.Style{}.WithSize(st.fontSize)

	var inl []model.Inline
	for ch := li.FirstChild; ch != nil; ch = ch.NextSibling {
		if isNestedBlock(ch) {
			continue
		}
		inl = append(inl, c.flatten(ch, base)...)
	}

	p := model.Paragraph{
		Inlines:    inl,
		Align:      st.textAlign,
		IndentLeft: indent,
		List:       model.ListInfo{Kind: kind, Level: level},
	}
	if h, ok := headingAttr(li); ok {
		p.Heading = h
	}
	return p
}

// listLevel counts the ul/ol ancestors of a list element.
func listLevel(n *html.Node) int {
	level := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if htmldoc.IsElement(p, atom.Ul, atom.Ol) {
			level++
		}
	}
	return level
}

func isNestedBlock(n *html.Node) bool {
	return htmldoc.IsElement(n, atom.Ul, atom.Ol, atom.Blockquote)
}

func nestedBlocks(li *html.Node) []*html.Node {
	var out []*html.Node
	for _, ch := range htmldoc.ChildElements(li) {
		if isNestedBlock(ch) {
			out = append(out, ch)
		}
	}
	return out
}

func headingAttr(li *html.Node) (int, bool) {
	switch htmldoc.Attr(li, "data-heading") {
	case "1":
		return 1, true
	case "2":
		return 2, true
	case "3":
		return 3, true
	}
	return 0, false
}

// hasContent reports whether inlines hold visible text or a link.
func hasContent(inlines []model.Inline) bool {
	for _, in := range inlines {
		switch v := in.(type) {
		case *model.Hyperlink:
			return true
		case *model.Run:
			if strings.TrimSpace(v.Text) != "" {
				return true
			}
		}
	}
	return false
}

// isHTTPLink reports whether href may become a hyperlink.
func isHTTPLink(href string) bool {
	return sanitize.IsAbsoluteHTTP(href)
}
