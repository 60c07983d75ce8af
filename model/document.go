package model

import "strings"

// Fixed document configuration shared by every export.
const (
	// NumberingReference names the single numbering definition used by
	// every numbered list.
	NumberingReference = "num"

	// HyperlinkStyleID is the style applied to hyperlink text.
	HyperlinkStyleID = "Hyperlink"

	// HyperlinkColor is the hex RGB color of the Hyperlink style.
	HyperlinkColor = "0000EE"

	// QuoteIndent is the left indent added per block quote, in twips (0.5").
	QuoteIndent = 720

	// DefaultDescription is written to the document properties.
	DefaultDescription = "Generated by richdoc"
)

// Document is the top-level container produced by an export.
type Document struct {
	Metadata    Metadata
	Description string
	Paragraphs  []Paragraph
	Numbering   NumberingDef
	Styles      []ParagraphStyle
}

// NumberingDef is a multi-level numbering definition.
type NumberingDef struct {
	Reference string
	Levels    []NumberingLevel
}

// NumberingLevel describes one level of a numbering definition.
type NumberingLevel struct {
	Level  int
	Format string // decimal, bullet, ...
	Text   string // e.g. "%1."
}

// MaxLevel returns the deepest level defined, or -1 if none.
func (n NumberingDef) MaxLevel() int {
	deepest := -1
	for _, l := range n.Levels {
		if l.Level > deepest {
			deepest = l.Level
		}
	}
	return deepest
}

// StyleKind is what a named style applies to.
type StyleKind int

const (
	StyleParagraph StyleKind = iota // applied with pStyle
	StyleCharacter                  // applied with rStyle, for run-level styles
)

func (k StyleKind) String() string {
	if k == StyleCharacter {
		return "character"
	}
	return "paragraph"
}

// ParagraphStyle is a named style definition. Kind says whether paragraphs
// or runs reference it; BasedOn only applies to paragraph styles.
type ParagraphStyle struct {
	ID        string
	Name      string
	Kind      StyleKind
	BasedOn   string
	Color     string // hex RGB
	Underline bool
}

// DefaultNumbering returns the numbering definition every export carries:
// three decimal levels "%1.", "%2.", "%3.".
func DefaultNumbering() NumberingDef {
	return NumberingDef{
		Reference: NumberingReference,
		Levels: []NumberingLevel{
			{Level: 0, Format: "decimal", Text: "%1."},
			{Level: 1, Format: "decimal", Text: "%2."},
			{Level: 2, Format: "decimal", Text: "%3."},
		},
	}
}

// HyperlinkStyle returns the fixed Hyperlink style. Hyperlink text is a run
// inside an ordinary paragraph, so the style is referenced per run and is a
// character style in the package.
func HyperlinkStyle() ParagraphStyle {
	return ParagraphStyle{
		ID:        HyperlinkStyleID,
		Name:      HyperlinkStyleID,
		Kind:      StyleCharacter,
		BasedOn:   "Normal",
		Color:     HyperlinkColor,
		Underline: true,
	}
}

// NewDocument creates a document with the fixed numbering and style
// configuration. An empty paragraph list becomes a single empty paragraph.
func NewDocument(meta Metadata, paragraphs []Paragraph) *Document {
	if len(paragraphs) == 0 {
		paragraphs = []Paragraph{{}}
	}
	return &Document{
		Metadata:    meta,
		Description: DefaultDescription,
		Paragraphs:  paragraphs,
		Numbering:   DefaultNumbering(),
		Styles:      []ParagraphStyle{HyperlinkStyle()},
	}
}

// Style returns the paragraph style with the given ID, or nil.
func (d *Document) Style(id string) *ParagraphStyle {
	for i := range d.Styles {
		if d.Styles[i].ID == id {
			return &d.Styles[i]
		}
	}
	return nil
}

// Text returns the text of all paragraphs joined by newlines.
func (d *Document) Text() string {
	texts := make([]string, len(d.Paragraphs))
	for i := range d.Paragraphs {
		texts[i] = d.Paragraphs[i].Text()
	}
	return strings.Join(texts, "\n")
}

// Headings returns the paragraphs that carry a heading level.
func (d *Document) Headings() []Paragraph {
	var out []Paragraph
	for _, p := range d.Paragraphs {
		if p.IsHeading() {
			out = append(out, p)
		}
	}
	return out
}

// TableOfContents returns headings organized as a document outline.
func (d *Document) TableOfContents() []TOCEntry {
	var toc []TOCEntry
	for i, p := range d.Paragraphs {
		if !p.IsHeading() {
			continue
		}
		toc = append(toc, TOCEntry{
			Level:     p.Heading,
			Text:      p.Text(),
			Paragraph: i,
		})
	}
	return toc
}

// TOCEntry represents an entry in the table of contents
type TOCEntry struct {
	Level     int    // Heading level
	Text      string // Heading text
	Paragraph int    // Index into Document.Paragraphs
}
