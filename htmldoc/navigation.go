package htmldoc

import (
	"regexp"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ChromeMode controls how much page chrome (navigation, banners, footers)
// ReadPage drops from a complete document.
type ChromeMode int

const (
	// ChromeKeep keeps the whole body.
	ChromeKeep ChromeMode = iota

	// ChromeSemantic drops <nav> and <aside> anywhere, top-level <header>
	// and <footer>, and the matching ARIA landmark roles.
	ChromeSemantic

	// ChromeStandard also drops elements whose class or id names a common
	// navigation, header, footer or sidebar pattern.
	ChromeStandard
)

var chromePattern = regexp.MustCompile(
	`(?i)(^|[^a-z])(nav|navbar|navigation|menu|topnav|sidenav|breadcrumbs?|` +
		`site-header|page-header|masthead|banner|` +
		`footer|site-footer|page-footer|colophon|` +
		`sidebar|widget-area|widget)([^a-z]|$)`)

// chromeFilter decides which body elements are page chrome.
type chromeFilter struct {
	mode    ChromeMode
	body    *html.Node
	wrapper *html.Node // single top-level <div>/<main>, if any
}

func newChromeFilter(mode ChromeMode, body *html.Node) *chromeFilter {
	return &chromeFilter{mode: mode, body: body, wrapper: topLevelWrapper(body)}
}

// topLevelWrapper finds the single structural child of the common
// <body><div id="wrapper">...</div></body> layout.
func topLevelWrapper(body *html.Node) *html.Node {
	var wrapper *html.Node
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || IsRawText(c) {
			continue
		}
		if !IsElement(c, atom.Div, atom.Main) || wrapper != nil {
			return nil
		}
		wrapper = c
	}
	return wrapper
}

func (f *chromeFilter) exclude(n *html.Node) bool {
	if n.Type != html.ElementNode || f.mode == ChromeKeep {
		return false
	}
	if f.semantic(n) {
		return true
	}
	if f.mode >= ChromeStandard {
		return chromePattern.MatchString(Attr(n, "class")) || chromePattern.MatchString(Attr(n, "id"))
	}
	return false
}

func (f *chromeFilter) semantic(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Nav, atom.Aside:
		return true
	case atom.Header, atom.Footer:
		return f.topLevel(n)
	}

	switch Attr(n, "role") {
	case "navigation", "complementary":
		return true
	case "banner", "contentinfo":
		return f.topLevel(n)
	}
	return false
}

// topLevel reports whether n sits directly in body or in its single wrapper.
func (f *chromeFilter) topLevel(n *html.Node) bool {
	return n.Parent != nil && (n.Parent == f.body || (f.wrapper != nil && n.Parent == f.wrapper))
}
