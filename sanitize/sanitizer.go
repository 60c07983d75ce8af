package sanitize

import (
	"io"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/richdoc/htmldoc"
)

// EmptyDocument is the output for input with no surviving content.
const EmptyDocument = "<p><br/></p>"

// maxPasses bounds the rebuild loop. Re-parsing rebuilt markup can move
// nodes (a heading nested in a heading once an unwrapped <div> is gone, for
// example), so the rebuild repeats until the rendered output is stable.
const maxPasses = 4

// Sanitizer restricts HTML to the whitelist documented in the package.
type Sanitizer struct {
	parser htmldoc.Parser
	guard  *bluemonday.Policy
	logger *slog.Logger
}

// Option configures a Sanitizer.
type Option func(*Sanitizer)

// WithParser injects the HTML parsing capability.
func WithParser(p htmldoc.Parser) Option {
	return func(s *Sanitizer) {
		if p != nil {
			s.parser = p
		}
	}
}

// WithLogger sets the logger used for debug output about dropped content.
func WithLogger(l *slog.Logger) Option {
	return func(s *Sanitizer) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates a Sanitizer.
func New(opts ...Option) *Sanitizer {
	s := &Sanitizer{
		parser: htmldoc.DefaultParser,
		guard:  guardPolicy(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var defaultSanitizer = New()

// Sanitize restricts input to the whitelist using the default Sanitizer.
func Sanitize(input string) string {
	return defaultSanitizer.Sanitize(input)
}

// Sanitize restricts input to the whitelist. It never fails; malformed input
// degrades and the result is never empty.
func (s *Sanitizer) Sanitize(input string) string {
	out := s.pass(input)
	for i := 1; i < maxPasses; i++ {
		next := s.pass(out)
		if next == out {
			return out
		}
		out = next
	}
	s.logger.Debug("sanitize: pass limit reached before output was stable", "passes", maxPasses)
	return out
}

// pass performs one parse, rebuild, render and guard cycle.
func (s *Sanitizer) pass(input string) string {
	nodes, err := htmldoc.ParseString(s.parser, input)
	if err != nil {
		s.logger.Debug("sanitize: parse failed, emitting empty document", "error", err)
		return EmptyDocument
	}

	var out []*html.Node
	for _, n := range nodes {
		out = append(out, s.rebuild(n)...)
	}
	if isEmpty(out) {
		return EmptyDocument
	}

	rendered, err := htmldoc.RenderNodes(out)
	if err != nil {
		s.logger.Debug("sanitize: render failed, emitting empty document", "error", err)
		return EmptyDocument
	}

	guarded := s.guard.Sanitize(rendered)
	if strings.TrimSpace(guarded) == "" {
		return EmptyDocument
	}
	return guarded
}

// rebuild returns the sanitized replacement for n: zero nodes when n is
// dropped, its sanitized children when n is unwrapped, or a fresh copy.
func (s *Sanitizer) rebuild(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{htmldoc.NewText(n.Data)}
	case html.ElementNode:
		// handled below
	default:
		return nil
	}

	if htmldoc.IsRawText(n) {
		s.logger.Debug("sanitize: dropping raw-text element", "tag", n.Data)
		return nil
	}

	if !allowedTags[n.DataAtom] {
		s.logger.Debug("sanitize: unwrapping element", "tag", n.Data)
		return s.rebuildChildren(n)
	}

	var el *html.Node
	switch n.DataAtom {
	case atom.A:
		href, ok := keptHref(htmldoc.Attr(n, "href"))
		if !ok {
			s.logger.Debug("sanitize: degrading anchor to text", "href", htmldoc.Attr(n, "href"))
			span := htmldoc.NewElement(atom.Span)
			if text := htmldoc.TextContent(n); text != "" {
				span.AppendChild(htmldoc.NewText(text))
			}
			return []*html.Node{span}
		}
		el = htmldoc.NewElement(atom.A,
			html.Attribute{Key: "href", Val: href},
			html.Attribute{Key: "rel", Val: LinkRel},
			html.Attribute{Key: "target", Val: LinkTarget},
		)
	case atom.Li:
		el = htmldoc.NewElement(atom.Li)
		if v, ok := htmldoc.LookupAttr(n, "data-heading"); ok && validHeading(v) {
			el.Attr = append(el.Attr, html.Attribute{Key: "data-heading", Val: v})
		}
	case atom.Span:
		el = htmldoc.NewElement(atom.Span)
		if htmldoc.Attr(n, "class") == ListTextClass {
			el.Attr = append(el.Attr, html.Attribute{Key: "class", Val: ListTextClass})
		}
	default:
		el = htmldoc.NewElement(n.DataAtom)
	}

	for _, c := range s.rebuildChildren(n) {
		el.AppendChild(c)
	}
	return []*html.Node{el}
}

func (s *Sanitizer) rebuildChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, s.rebuild(c)...)
	}
	return out
}

// isEmpty reports whether a rebuilt fragment has no content worth keeping:
// no nodes at all, or only whitespace text.
func isEmpty(nodes []*html.Node) bool {
	for _, n := range nodes {
		if n.Type != html.TextNode || strings.TrimSpace(n.Data) != "" {
			return false
		}
	}
	return true
}
