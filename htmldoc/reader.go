package htmldoc

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/richdoc/model"
)

// Page is a complete HTML document reduced to what the editor keeps: the
// head's title and author, and the body content.
type Page struct {
	Title    string
	Meta     map[string]string // <meta name|property> -> content
	Body     []*html.Node      // detached body children, page chrome removed
	Excluded int               // number of chrome elements dropped
}

// OpenPage reads a complete HTML document from a file.
func OpenPage(filename string, mode ChromeMode) (*Page, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadPage(f, mode)
}

// ReadPage parses a complete HTML document. Chrome elements selected by
// mode are dropped from the body.
func ReadPage(r io.Reader, mode ChromeMode) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	p := &Page{Meta: make(map[string]string)}
	if head := findElement(doc, atom.Head); head != nil {
		p.readHead(head)
	}

	body := findElement(doc, atom.Body)
	if body == nil {
		body = doc
	}
	filter := newChromeFilter(mode, body)
	for c := body.FirstChild; c != nil; {
		next := c.NextSibling
		if p.prune(c, filter) {
			body.RemoveChild(c)
			p.Body = append(p.Body, c)
		}
		c = next
	}
	return p, nil
}

// readHead extracts title and meta tags from the head element.
func (p *Page) readHead(head *html.Node) {
	for c := head.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case IsElement(c, atom.Title):
			p.Title = strings.TrimSpace(TextContent(c))
		case IsElement(c, atom.Meta):
			name := Attr(c, "name")
			if name == "" {
				name = Attr(c, "property")
			}
			if content := Attr(c, "content"); name != "" && content != "" {
				p.Meta[strings.ToLower(name)] = content
			}
		}
	}
}

// prune removes excluded descendants of n and reports whether n itself is
// kept.
func (p *Page) prune(n *html.Node, filter *chromeFilter) bool {
	if filter.exclude(n) {
		p.Excluded++
		return false
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		if !p.prune(c, filter) {
			n.RemoveChild(c)
		}
		c = next
	}
	return true
}

// Metadata returns the title and author declared in the head.
func (p *Page) Metadata() model.Metadata {
	return model.Metadata{
		Title:  p.Title,
		Author: strings.TrimSpace(p.Meta["author"]),
	}
}

// HTML renders the body content as a fragment.
func (p *Page) HTML() (string, error) {
	return RenderNodes(p.Body)
}

var documentStart = regexp.MustCompile(`(?is)^\s*(?:<!--.*?-->\s*)*(?:<!doctype\s+html|<html[\s>]|<head[\s>])`)

// IsDocument reports whether s is a complete HTML document rather than an
// editor fragment.
func IsDocument(s string) bool {
	return documentStart.MatchString(s[:min(len(s), 1024)])
}

// findElement returns the first element with atom a in document order.
func findElement(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, a); found != nil {
			return found
		}
	}
	return nil
}
