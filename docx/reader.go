package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tsawler/richdoc/model"
)

// ErrMissingPart is returned when a required package part is absent.
var ErrMissingPart = errors.New("missing required part")

const relTypeHyperlink = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"

// Reader provides access to DOCX document content.
type Reader struct {
	closer     io.Closer
	files      map[string]*zip.File
	document   *documentXML
	styles     *StyleResolver
	numbering  *NumberingResolver
	links      map[string]string // relationship ID -> external URL
	coreProps  *corePropertiesXML
	appProps   *appPropertiesXML
	paragraphs []model.Paragraph
}

// Open opens a DOCX file for reading.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}

	r, err := newReader(&zr.Reader)
	if err != nil {
		zr.Close()
		return nil, err
	}
	r.closer = zr
	return r, nil
}

// OpenReader reads a DOCX package from ra.
func OpenReader(ra io.ReaderAt, size int64) (*Reader, error) {
	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("opening ZIP archive: %w", err)
	}
	return newReader(zr)
}

// OpenBytes reads a DOCX package held in memory.
func OpenBytes(data []byte) (*Reader, error) {
	return OpenReader(bytes.NewReader(data), int64(len(data)))
}

func newReader(zr *zip.Reader) (*Reader, error) {
	r := &Reader{
		files: make(map[string]*zip.File, len(zr.File)),
		links: make(map[string]string),
	}
	for _, f := range zr.File {
		r.files[f.Name] = f
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	if err := r.parseRelationships(); err != nil {
		return nil, fmt.Errorf("parsing relationships: %w", err)
	}

	// Styles and numbering are optional; a broken part degrades to none.
	r.styles = NewStyleResolver(r.parseStyles())
	r.numbering = NewNumberingResolver(r.parseNumbering())

	if err := r.parseDocument(); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}

	r.parseCoreProperties()
	r.parseAppProperties()

	return r, nil
}

// Close releases resources associated with the Reader.
func (r *Reader) Close() error {
	if r.closer != nil {
		err := r.closer.Close()
		r.closer = nil
		return err
	}
	return nil
}

// validate checks that required DOCX parts exist.
func (r *Reader) validate() error {
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		if _, ok := r.files[name]; !ok {
			return fmt.Errorf("%w: %s", ErrMissingPart, name)
		}
	}
	return nil
}

// getFileContent reads the content of a file from the ZIP archive.
func (r *Reader) getFileContent(name string) ([]byte, error) {
	f, ok := r.files[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingPart, name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// Paragraphs returns the document's paragraphs in order.
func (r *Reader) Paragraphs() []model.Paragraph {
	return r.paragraphs
}

// Text returns the text of every paragraph joined by newlines.
func (r *Reader) Text() string {
	texts := make([]string, len(r.paragraphs))
	for i := range r.paragraphs {
		texts[i] = r.paragraphs[i].Text()
	}
	return strings.Join(texts, "\n")
}

// Metadata returns the title and author from docProps/core.xml.
func (r *Reader) Metadata() model.Metadata {
	if r.coreProps == nil {
		return model.Metadata{}
	}
	return model.Metadata{
		Title:  strings.TrimSpace(r.coreProps.Title),
		Author: strings.TrimSpace(r.coreProps.Creator),
	}
}

// Application returns the producing application from docProps/app.xml.
func (r *Reader) Application() string {
	if r.appProps == nil {
		return ""
	}
	return r.appProps.Application
}

// Document returns a model.Document representation of the DOCX content.
func (r *Reader) Document() *model.Document {
	doc := model.NewDocument(r.Metadata(), r.paragraphs)
	if r.coreProps != nil {
		doc.Description = r.coreProps.Description
	}
	return doc
}

// parseRelationships collects external hyperlink targets.
func (r *Reader) parseRelationships() error {
	data, err := r.getFileContent("word/_rels/document.xml.rels")
	if err != nil {
		// Relationships file is optional
		return nil
	}

	var rels relationshipsXML
	if err := xml.Unmarshal(data, &rels); err != nil {
		return err
	}
	for _, rel := range rels.Relationships {
		if rel.Type == relTypeHyperlink && strings.EqualFold(rel.TargetMode, "External") {
			r.links[rel.ID] = rel.Target
		}
	}
	return nil
}

// parseStyles parses the styles definition file.
func (r *Reader) parseStyles() *stylesXML {
	data, err := r.getFileContent("word/styles.xml")
	if err != nil {
		return nil
	}
	styles := &stylesXML{}
	if err := xml.Unmarshal(data, styles); err != nil {
		return nil
	}
	return styles
}

// parseNumbering parses the numbering definitions file.
func (r *Reader) parseNumbering() *numberingXML {
	data, err := r.getFileContent("word/numbering.xml")
	if err != nil {
		return nil
	}
	numbering := &numberingXML{}
	if err := xml.Unmarshal(data, numbering); err != nil {
		return nil
	}
	return numbering
}

// parseDocument parses the main document content.
func (r *Reader) parseDocument() error {
	data, err := r.getFileContent("word/document.xml")
	if err != nil {
		return err
	}

	r.document = &documentXML{}
	if err := xml.Unmarshal(data, r.document); err != nil {
		return fmt.Errorf("unmarshaling document.xml: %w", err)
	}

	if r.document.Body != nil {
		r.paragraphs = r.processElements(r.document.Body.Elements, nil)
	}
	return nil
}

// parseCoreProperties parses Dublin Core metadata.
func (r *Reader) parseCoreProperties() {
	data, err := r.getFileContent("docProps/core.xml")
	if err != nil {
		return
	}
	props := &corePropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.coreProps = props
	}
}

// parseAppProperties parses application metadata.
func (r *Reader) parseAppProperties() {
	data, err := r.getFileContent("docProps/app.xml")
	if err != nil {
		return
	}
	props := &appPropertiesXML{}
	if xml.Unmarshal(data, props) == nil {
		r.appProps = props
	}
}

// processElements converts body elements in order. Tables are read cell by
// cell as plain paragraphs.
func (r *Reader) processElements(elems []bodyElement, out []model.Paragraph) []model.Paragraph {
	for _, el := range elems {
		switch {
		case el.Paragraph != nil:
			out = append(out, r.processParagraph(el.Paragraph))
		case el.Table != nil:
			for _, row := range el.Table.Rows {
				for _, cell := range row.Cells {
					out = r.processElements(cell.Content.Elements, out)
				}
			}
		}
	}
	return out
}

// processParagraph converts a single paragraph.
func (r *Reader) processParagraph(p *paragraphXML) model.Paragraph {
	props := p.Properties
	style := r.styles.Resolve(props.Style.Val)

	para := model.Paragraph{
		Align:      style.Alignment,
		IndentLeft: style.IndentLeft,
	}
	if style.IsHeading {
		para.Heading = style.HeadingLevel
	} else if level := parseOutlineLevel(props.OutlineLvl.Val); props.OutlineLvl.Val != "" && level >= 0 {
		para.Heading = level + 1
	}

	if props.Justification.Val != "" {
		para.Align = parseJustification(props.Justification.Val)
	}
	if left := props.Indent.left(); left != "" {
		para.IndentLeft = parseTwips(left)
	}

	if r.numbering.IsListParagraph(props.NumPr.NumID.Val) {
		level, _ := strconv.Atoi(props.NumPr.ILvl.Val)
		para.List = r.numbering.Resolve(props.NumPr.NumID.Val, max(level, 0))
		// List indentation comes from the numbering definition.
		if props.Indent.left() == "" {
			para.IndentLeft = 0
		}
	}

	for _, c := range p.Content {
		switch {
		case c.Run != nil:
			if c.Run.Text == "" {
				continue
			}
			para.Inlines = append(para.Inlines, &model.Run{
				Text:  c.Run.Text,
				Style: r.styles.ResolveRun(c.Run.Properties),
			})
		case c.Hyperlink != nil:
			para.Inlines = append(para.Inlines, r.processHyperlink(c.Hyperlink)...)
		}
	}

	return para
}

// processHyperlink returns a Hyperlink for external links. Internal anchors
// and links whose relationship is missing read back as plain runs.
func (r *Reader) processHyperlink(h *hyperlinkXML) []model.Inline {
	url, ok := r.links[h.ID]
	if !ok {
		var out []model.Inline
		for i := range h.Runs {
			if h.Runs[i].Text == "" {
				continue
			}
			out = append(out, &model.Run{
				Text:  h.Runs[i].Text,
				Style: r.styles.ResolveRun(h.Runs[i].Properties),
			})
		}
		return out
	}

	link := &model.Hyperlink{URL: url}
	var sb strings.Builder
	for i := range h.Runs {
		sb.WriteString(h.Runs[i].Text)
		if link.Size == 0 {
			link.Size = r.styles.ResolveRun(h.Runs[i].Properties).Size
		}
	}
	link.Text = sb.String()
	if link.Text == "" {
		link.Text = url
	}
	return []model.Inline{link}
}
