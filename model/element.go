package model

import "strings"

// Alignment represents paragraph alignment.
type Alignment int

const (
	AlignNone Alignment = iota // inherit the style default
	AlignStart
	AlignCenter
	AlignEnd
	AlignJustify
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignCenter:
		return "center"
	case AlignEnd:
		return "end"
	case AlignJustify:
		return "justify"
	default:
		return "none"
	}
}

// ParseAlignment maps a CSS text-align value to an Alignment.
// Unknown values map to AlignNone.
func ParseAlignment(s string) Alignment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "start":
		return AlignStart
	case "center":
		return AlignCenter
	case "right", "end":
		return AlignEnd
	case "justify":
		return AlignJustify
	default:
		return AlignNone
	}
}

// ListKind classifies a paragraph as a list item.
type ListKind int

const (
	ListNone ListKind = iota
	ListBulleted
	ListNumbered
)

func (k ListKind) String() string {
	switch k {
	case ListBulleted:
		return "bulleted"
	case ListNumbered:
		return "numbered"
	default:
		return "none"
	}
}

// ListInfo holds the list classification of a paragraph.
type ListInfo struct {
	Kind  ListKind
	Level int // zero-based nesting depth
}

// Bulleted returns a bulleted ListInfo at the given level.
func Bulleted(level int) ListInfo { return ListInfo{Kind: ListBulleted, Level: level} }

// Numbered returns a numbered ListInfo at the given level.
func Numbered(level int) ListInfo { return ListInfo{Kind: ListNumbered, Level: level} }

// Inline is the interface for paragraph content. The set of implementations
// is closed: *Run and *Hyperlink.
type Inline interface {
	InlineText() string
	inline()
}

// Run is a contiguous span of text sharing one style.
type Run struct {
	Text  string
	Style Style
}

func (r *Run) InlineText() string { return r.Text }
func (*Run) inline()              {}

// Hyperlink is a link to an absolute http(s) URL. It is rendered with the
// fixed "Hyperlink" style and carries only a point size of its own.
type Hyperlink struct {
	Text string
	URL  string
	Size int // points, 0 = unset
}

func (h *Hyperlink) InlineText() string { return h.Text }
func (*Hyperlink) inline()              {}

// Paragraph is the block-level unit of a document.
type Paragraph struct {
	Inlines    []Inline
	Heading    int // 1-3 from HTML, up to 9 when read from DOCX; 0 otherwise
	Align      Alignment
	IndentLeft int // twentieths of a point, 0 = none
	List       ListInfo
}

// Text returns the concatenated text of all inlines.
func (p *Paragraph) Text() string {
	var sb strings.Builder
	for _, in := range p.Inlines {
		sb.WriteString(in.InlineText())
	}
	return sb.String()
}

// IsHeading reports whether the paragraph carries a heading level.
func (p *Paragraph) IsHeading() bool { return p.Heading > 0 }

// IsList reports whether the paragraph is a list item.
func (p *Paragraph) IsList() bool { return p.List.Kind != ListNone }

// Hyperlinks returns the hyperlinks of the paragraph in order.
func (p *Paragraph) Hyperlinks() []*Hyperlink {
	var links []*Hyperlink
	for _, in := range p.Inlines {
		if h, ok := in.(*Hyperlink); ok {
			links = append(links, h)
		}
	}
	return links
}
