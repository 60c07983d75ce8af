package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/tsawler/richdoc/model"
)

// Application is written to docProps/app.xml.
const Application = "richdoc"

// Writer serializes documents into DOCX packages.
type Writer struct {
	now    func() time.Time
	logger *slog.Logger
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithClock sets the time source for the created and modified properties.
func WithClock(now func() time.Time) WriterOption {
	return func(w *Writer) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) WriterOption {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// NewWriter creates a Writer.
func NewWriter(opts ...WriterOption) *Writer {
	w := &Writer{
		now:    time.Now,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

var defaultWriter = NewWriter()

// Write serializes doc to out using the default Writer.
func Write(out io.Writer, doc *model.Document) error {
	return defaultWriter.Write(out, doc)
}

// Bytes serializes doc using the default Writer.
func Bytes(doc *model.Document) ([]byte, error) {
	return defaultWriter.Bytes(doc)
}

// Bytes serializes doc into memory.
func (w *Writer) Bytes(doc *model.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := w.Write(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// part is one file in the package.
type part struct {
	name string
	body any
}

// Write serializes doc as a DOCX package. The package is assembled in
// memory and copied to out only when every part succeeded.
func (w *Writer) Write(out io.Writer, doc *model.Document) error {
	if doc == nil {
		return fmt.Errorf("docx: nil document")
	}

	body, links := w.buildDocument(doc)
	stamp := w.now().UTC().Format(time.RFC3339)

	parts := []part{
		{"[Content_Types].xml", contentTypes()},
		{"_rels/.rels", packageRels()},
		{"docProps/core.xml", corePropertiesOut{
			XmlnsCP:     nsCP,
			XmlnsDC:     nsDC,
			XmlnsDCT:    nsDCTerms,
			XmlnsXSI:    nsXSI,
			Title:       doc.Metadata.Title,
			Creator:     doc.Metadata.Author,
			Description: doc.Description,
			Created:     w3cDate{Type: "dcterms:W3CDTF", Value: stamp},
			Modified:    w3cDate{Type: "dcterms:W3CDTF", Value: stamp},
		}},
		{"docProps/app.xml", appPropertiesOut{Xmlns: nsExtended, Application: Application}},
		{"word/document.xml", body},
		{"word/styles.xml", buildStyles(doc)},
		{"word/numbering.xml", buildNumbering(doc.Numbering)},
		{"word/_rels/document.xml.rels", documentRels(links)},
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, p := range parts {
		if err := writePart(zw, p); err != nil {
			return fmt.Errorf("docx: writing %s: %w", p.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("docx: closing archive: %w", err)
	}

	w.logger.Debug("docx written",
		"paragraphs", len(doc.Paragraphs),
		"hyperlinks", len(links.order),
		"bytes", buf.Len())

	if _, err := buf.WriteTo(out); err != nil {
		return fmt.Errorf("docx: writing output: %w", err)
	}
	return nil
}

func writePart(zw *zip.Writer, p part) error {
	f, err := zw.Create(p.name)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(f, xml.Header); err != nil {
		return err
	}
	return xml.NewEncoder(f).Encode(p.body)
}

// linkTable assigns one relationship ID per distinct URL.
type linkTable struct {
	ids   map[string]string
	order []string
}

// first relationship ID available to hyperlinks; rId1 and rId2 are taken by
// styles and numbering.
const firstLinkRel = 3

func (t *linkTable) id(url string) string {
	if t.ids == nil {
		t.ids = make(map[string]string)
	}
	if id, ok := t.ids[url]; ok {
		return id
	}
	id := "rId" + strconv.Itoa(firstLinkRel+len(t.order))
	t.ids[url] = id
	t.order = append(t.order, url)
	return id
}

func documentRels(links *linkTable) relationshipsOut {
	rels := relationshipsOut{
		Xmlns: nsRelationships,
		Relationships: []relationshipOut{
			{ID: "rId1", Type: relTypeStyles, Target: "styles.xml"},
			{ID: "rId2", Type: relTypeNumbering, Target: "numbering.xml"},
		},
	}
	for _, url := range links.order {
		rels.Relationships = append(rels.Relationships, relationshipOut{
			ID:         links.ids[url],
			Type:       relTypeHyperlink,
			Target:     url,
			TargetMode: "External",
		})
	}
	return rels
}

func (w *Writer) buildDocument(doc *model.Document) (documentOut, *linkTable) {
	links := &linkTable{}
	out := documentOut{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body:   bodyOut{SectPr: letterSection()},
	}

	paragraphs := doc.Paragraphs
	if len(paragraphs) == 0 {
		paragraphs = []model.Paragraph{{}}
	}
	for i := range paragraphs {
		out.Body.Paragraphs = append(out.Body.Paragraphs, buildParagraph(&paragraphs[i], links))
	}
	return out, links
}

func buildParagraph(p *model.Paragraph, links *linkTable) paragraphOut {
	props := &paragraphPropsOut{}
	empty := true

	switch {
	case p.Heading > 0:
		level := min(p.Heading, len(headingSizes))
		props.Style = &valOut{Val: "Heading" + strconv.Itoa(level)}
		empty = false
	case p.IsList():
		props.Style = &valOut{Val: "ListParagraph"}
		empty = false
	}

	if p.IsList() {
		numID := bulletNumID
		if p.List.Kind == model.ListNumbered {
			numID = numberedNumID
		}
		props.NumPr = &numPrOut{
			ILvl:  valOut{Val: strconv.Itoa(min(max(p.List.Level, 0), maxListLevel))},
			NumID: valOut{Val: numID},
		}
	}

	if p.IndentLeft > 0 {
		props.Indent = &indentOut{Left: strconv.Itoa(p.IndentLeft)}
		empty = false
	}

	if jc := justification(p.Align); jc != "" {
		props.Jc = &valOut{Val: jc}
		empty = false
	}

	out := paragraphOut{}
	if !empty {
		out.Props = props
	}

	for _, in := range p.Inlines {
		switch v := in.(type) {
		case *model.Run:
			out.Content = append(out.Content, buildRun(v.Text, v.Style, ""))
		case *model.Hyperlink:
			run := buildRun(v.Text, model.Style{Size: v.Size}, model.HyperlinkStyleID)
			out.Content = append(out.Content, &hyperlinkOut{
				ID:      links.id(v.URL),
				History: "1",
				Runs:    []runOut{*run},
			})
		}
	}
	return out
}

func buildRun(text string, st model.Style, charStyle string) *runOut {
	run := &runOut{Text: textOut{Space: "preserve", Value: text}}

	props := &runPropsOut{}
	set := false
	if charStyle != "" {
		props.Style = &valOut{Val: charStyle}
		set = true
	}
	if st.Bold {
		props.Bold = &emptyOut{}
		set = true
	}
	if st.Italic {
		props.Italic = &emptyOut{}
		set = true
	}
	if st.Size > 0 {
		props.Size = halfPoints(st.Size)
		props.SizeCS = halfPoints(st.Size)
		set = true
	}
	if set {
		run.Props = props
	}
	return run
}

// justification maps an Alignment to its w:jc value.
func justification(a model.Alignment) string {
	switch a {
	case model.AlignStart:
		return "left"
	case model.AlignCenter:
		return "center"
	case model.AlignEnd:
		return "right"
	case model.AlignJustify:
		return "both"
	default:
		return ""
	}
}
