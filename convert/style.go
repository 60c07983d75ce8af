package convert

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/aymerick/douceur/parser"
	"golang.org/x/net/html"

	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
)

var pixelSize = regexp.MustCompile(`(?i)^\s*(\d+(?:\.\d+)?)px\s*$`)

// inlineStyle is the subset of an element's style attribute the converter
// reads.
type inlineStyle struct {
	fontSize  int // points, 0 = unset
	textAlign model.Alignment
}

// parseInlineStyle reads font-size and text-align from n's style attribute.
// Unparseable declarations are ignored.
func parseInlineStyle(n *html.Node) inlineStyle {
	var st inlineStyle

	raw := strings.TrimSpace(htmldoc.Attr(n, "style"))
	if raw == "" {
		return st
	}

	decls, err := parser.ParseDeclarations(raw)
	if err != nil {
		return st
	}

	for _, d := range decls {
		switch strings.ToLower(d.Property) {
		case "font-size":
			st.fontSize = parseFontSize(d.Value)
		case "text-align":
			st.textAlign = model.ParseAlignment(d.Value)
		}
	}
	return st
}

// parseFontSize converts a CSS pixel length to points. Other units yield 0.
func parseFontSize(v string) int {
	m := pixelSize.FindStringSubmatch(v)
	if m == nil {
		return 0
	}
	px, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0
	}
	return model.PixelsToPoints(px)
}
