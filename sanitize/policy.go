package sanitize

import (
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html/atom"
)

// Attribute values the whitelist permits.
const (
	LinkRel       = "noopener noreferrer"
	LinkTarget    = "_blank"
	ListTextClass = "li-text"
)

// allowedTags is the closed element whitelist.
var allowedTags = map[atom.Atom]bool{
	atom.P:      true,
	atom.H1:     true,
	atom.H2:     true,
	atom.H3:     true,
	atom.Ul:     true,
	atom.Ol:     true,
	atom.Li:     true,
	atom.B:      true,
	atom.Strong: true,
	atom.I:      true,
	atom.Em:     true,
	atom.A:      true,
	atom.Br:     true,
	atom.Span:   true,
}

// AllowedTags returns the whitelisted tag names.
func AllowedTags() []string {
	tags := make([]string, 0, len(allowedTags))
	for a := range allowedTags {
		tags = append(tags, a.String())
	}
	return tags
}

var (
	absoluteHTTP = regexp.MustCompile(`(?i)^https?://`)
	headingLevel = regexp.MustCompile(`^[123]$`)
)

// IsAbsoluteHTTP reports whether href is an absolute http(s) URL.
func IsAbsoluteHTTP(href string) bool {
	return absoluteHTTP.MatchString(href)
}

// keptHref returns the trimmed href and whether an anchor may keep it. The
// value is not otherwise rewritten.
func keptHref(href string) (string, bool) {
	href = strings.TrimSpace(href)
	return href, IsAbsoluteHTTP(href)
}

// validHeading reports whether v is an accepted data-heading value.
func validHeading(v string) bool {
	return headingLevel.MatchString(v)
}

// guardPolicy mirrors the whitelist as a bluemonday policy. It runs over the
// rebuilt output so the rebuild can never widen what gets through.
func guardPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements("p", "h1", "h2", "h3", "ul", "ol", "li", "b", "strong", "i", "em", "br", "span")
	p.AllowNoAttrs().OnElements("p", "h1", "h2", "h3", "ul", "ol", "li", "b", "strong", "i", "em", "br", "span")

	// hrefs pass through verbatim once the scheme prefix matches.
	p.AllowAttrs("href").Matching(absoluteHTTP).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^` + LinkRel + `$`)).OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^` + LinkTarget + `$`)).OnElements("a")

	p.AllowAttrs("data-heading").Matching(headingLevel).OnElements("li")
	p.AllowAttrs("class").Matching(regexp.MustCompile(`^` + ListTextClass + `$`)).OnElements("span")

	return p
}
