package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/tsawler/richdoc/model"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 0, 0, time.UTC)
}

func sampleDocument() *model.Document {
	return model.NewDocument(model.Metadata{Title: "Plan", Author: "Ana"}, []model.Paragraph{
		{Heading: 1, Inlines: []model.Inline{&model.Run{Text: "Plan"}}},
		{Inlines: []model.Inline{
			&model.Run{Text: "Read "},
			&model.Hyperlink{Text: "the docs", URL: "https://example.com/docs", Size: 14},
			&model.Run{Text: " first", Style: model.Style{Bold: true, Italic: true, Size: 18}},
		}, Align: model.AlignCenter},
		{List: model.Bulleted(0), Inlines: []model.Inline{&model.Run{Text: "one"}}},
		{List: model.Bulleted(1), Inlines: []model.Inline{&model.Run{Text: "nested"}}},
		{List: model.Numbered(0), Heading: 2, Inlines: []model.Inline{&model.Run{Text: "step"}}},
		{IndentLeft: 720, Inlines: []model.Inline{
			&model.Run{Text: "quoted "},
			&model.Hyperlink{Text: "again", URL: "https://example.com/docs"},
			&model.Hyperlink{Text: "other", URL: "http://other.example"},
		}},
	})
}

func partContent(t *testing.T, data []byte, name string) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("zip.NewReader() error = %v", err)
	}
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatal(err)
		}
		defer rc.Close()
		b, err := io.ReadAll(rc)
		if err != nil {
			t.Fatal(err)
		}
		return string(b)
	}
	t.Fatalf("part %s not found", name)
	return ""
}

func TestWriter_Parts(t *testing.T) {
	data, err := NewWriter(WithClock(fixedClock)).Bytes(sampleDocument())
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	for _, name := range []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"docProps/core.xml",
		"docProps/app.xml",
		"word/document.xml",
		"word/styles.xml",
		"word/numbering.xml",
		"word/_rels/document.xml.rels",
	} {
		if content := partContent(t, data, name); !strings.HasPrefix(content, "<?xml") {
			t.Errorf("%s does not start with an XML header", name)
		}
	}
}

func TestWriter_CoreProperties(t *testing.T) {
	data, err := NewWriter(WithClock(fixedClock)).Bytes(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	core := partContent(t, data, "docProps/core.xml")

	for _, want := range []string{
		"<dc:title>Plan</dc:title>",
		"<dc:creator>Ana</dc:creator>",
		"<dc:description>" + model.DefaultDescription + "</dc:description>",
		`<dcterms:created xsi:type="dcterms:W3CDTF">2024-03-01T12:30:00Z</dcterms:created>`,
	} {
		if !strings.Contains(core, want) {
			t.Errorf("core.xml missing %q\n%s", want, core)
		}
	}
}

func TestWriter_Deterministic(t *testing.T) {
	w := NewWriter(WithClock(fixedClock))
	a, err := w.Bytes(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	b, err := w.Bytes(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	if partContent(t, a, "word/document.xml") != partContent(t, b, "word/document.xml") {
		t.Error("document.xml differs between identical writes")
	}
}

func TestWriter_DocumentMarkup(t *testing.T) {
	data, err := NewWriter(WithClock(fixedClock)).Bytes(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	doc := partContent(t, data, "word/document.xml")

	for _, want := range []string{
		`<w:pStyle w:val="Heading1">`,
		`<w:jc w:val="center">`,
		`<w:t xml:space="preserve">Read </w:t>`,
		`<w:rStyle w:val="Hyperlink">`,
		`<w:sz w:val="28">`,
		`<w:sz w:val="36">`,
		`<w:numPr><w:ilvl w:val="1"></w:ilvl><w:numId w:val="1"></w:numId></w:numPr>`,
		`<w:numPr><w:ilvl w:val="0"></w:ilvl><w:numId w:val="2"></w:numId></w:numPr>`,
		`<w:ind w:left="720">`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document.xml missing %q", want)
		}
	}
}

func TestWriter_StyleKinds(t *testing.T) {
	doc := model.NewDocument(model.Metadata{Title: "T", Author: "A"}, nil)
	doc.Styles = append(doc.Styles, model.ParagraphStyle{ID: "Quote", Name: "Quote", BasedOn: "Normal", Color: "555555"})

	data, err := NewWriter(WithClock(fixedClock)).Bytes(doc)
	if err != nil {
		t.Fatal(err)
	}
	styles := partContent(t, data, "word/styles.xml")

	for _, want := range []string{
		`<w:style w:type="character" w:styleId="Hyperlink"><w:name w:val="Hyperlink"></w:name><w:rPr>`,
		`<w:style w:type="paragraph" w:styleId="Quote"><w:name w:val="Quote"></w:name><w:basedOn w:val="Normal"></w:basedOn>`,
	} {
		if !strings.Contains(styles, want) {
			t.Errorf("styles.xml missing %q", want)
		}
	}
}

func TestWriter_HyperlinkRelationships(t *testing.T) {
	data, err := Bytes(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	rels := partContent(t, data, "word/_rels/document.xml.rels")

	// Two distinct URLs, the repeated one shares its relationship.
	if n := strings.Count(rels, relTypeHyperlink); n != 2 {
		t.Errorf("got %d hyperlink relationships, want 2\n%s", n, rels)
	}
	for _, want := range []string{
		`Id="rId3"`, `Target="https://example.com/docs"`,
		`Id="rId4"`, `Target="http://other.example"`,
		`TargetMode="External"`,
	} {
		if !strings.Contains(rels, want) {
			t.Errorf("rels missing %q", want)
		}
	}
}

func TestWriter_Numbering(t *testing.T) {
	data, err := Bytes(sampleDocument())
	if err != nil {
		t.Fatal(err)
	}
	num := partContent(t, data, "word/numbering.xml")

	for _, want := range []string{
		`<w:lvlText w:val="%1.">`,
		`<w:lvlText w:val="%2.">`,
		`<w:lvlText w:val="%3.">`,
		`<w:numFmt w:val="bullet">`,
		`<w:num w:numId="1"><w:abstractNumId w:val="0">`,
		`<w:num w:numId="2"><w:abstractNumId w:val="1">`,
	} {
		if !strings.Contains(num, want) {
			t.Errorf("numbering.xml missing %q", want)
		}
	}
}

func TestWriter_DeepListReusesLastLevel(t *testing.T) {
	doc := model.NewDocument(model.Metadata{Title: "t", Author: "a"}, []model.Paragraph{
		{List: model.Numbered(5), Inlines: []model.Inline{&model.Run{Text: "deep"}}},
	})
	data, err := Bytes(doc)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(partContent(t, data, "word/document.xml"), `<w:ilvl w:val="2">`) {
		t.Error("level 5 should be written as ilvl 2")
	}
}

func TestWriter_EscapesText(t *testing.T) {
	doc := model.NewDocument(model.Metadata{Title: "A & B", Author: "<me>"}, []model.Paragraph{
		{Inlines: []model.Inline{&model.Run{Text: `1 < 2 & "x"`}}},
	})
	data, err := Bytes(doc)
	if err != nil {
		t.Fatal(err)
	}

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	if got := r.Text(); got != `1 < 2 & "x"` {
		t.Errorf("Text() = %q", got)
	}
	if meta := r.Metadata(); meta.Title != "A & B" || meta.Author != "<me>" {
		t.Errorf("Metadata() = %+v", meta)
	}
}

func TestWriter_NilDocument(t *testing.T) {
	if _, err := Bytes(nil); err == nil {
		t.Error("Bytes(nil) should fail")
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriter_OutputError(t *testing.T) {
	err := Write(failingWriter{}, sampleDocument())
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Write() error = %v, want disk full", err)
	}
}

func TestWriter_EmptyParagraphs(t *testing.T) {
	doc := &model.Document{Metadata: model.Metadata{Title: "t", Author: "a"}}
	data, err := Bytes(doc)
	if err != nil {
		t.Fatal(err)
	}
	r, err := OpenBytes(data)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(r.Paragraphs()); n != 1 {
		t.Errorf("got %d paragraphs, want 1", n)
	}
}

// ============================================================================
// Round trip
// ============================================================================

func TestRoundTrip(t *testing.T) {
	in := sampleDocument()
	data, err := NewWriter(WithClock(fixedClock)).Bytes(in)
	if err != nil {
		t.Fatalf("Bytes() error = %v", err)
	}

	r, err := OpenBytes(data)
	if err != nil {
		t.Fatalf("OpenBytes() error = %v", err)
	}
	defer r.Close()

	out := r.Document()
	if out.Metadata != in.Metadata {
		t.Errorf("Metadata = %+v, want %+v", out.Metadata, in.Metadata)
	}
	if r.Application() != Application {
		t.Errorf("Application() = %q", r.Application())
	}
	if len(out.Paragraphs) != len(in.Paragraphs) {
		t.Fatalf("got %d paragraphs, want %d", len(out.Paragraphs), len(in.Paragraphs))
	}

	for i := range in.Paragraphs {
		want, got := &in.Paragraphs[i], &out.Paragraphs[i]
		if got.Text() != want.Text() {
			t.Errorf("paragraph %d text = %q, want %q", i, got.Text(), want.Text())
		}
		if got.Heading != want.Heading {
			t.Errorf("paragraph %d heading = %d, want %d", i, got.Heading, want.Heading)
		}
		if got.List != want.List {
			t.Errorf("paragraph %d list = %+v, want %+v", i, got.List, want.List)
		}
		if got.Align != want.Align {
			t.Errorf("paragraph %d align = %v, want %v", i, got.Align, want.Align)
		}
		if got.IndentLeft != want.IndentLeft {
			t.Errorf("paragraph %d indent = %d, want %d", i, got.IndentLeft, want.IndentLeft)
		}
		if len(got.Inlines) != len(want.Inlines) {
			t.Errorf("paragraph %d has %d inlines, want %d", i, len(got.Inlines), len(want.Inlines))
		}
	}

	links := out.Paragraphs[1].Hyperlinks()
	if len(links) != 1 || links[0].URL != "https://example.com/docs" || links[0].Size != 14 {
		t.Errorf("hyperlinks = %+v", links)
	}
	last := out.Paragraphs[1].Inlines[2].(*model.Run)
	if last.Style != (model.Style{Bold: true, Italic: true, Size: 18}) {
		t.Errorf("run style = %+v", last.Style)
	}
}

// ============================================================================
// Resolvers
// ============================================================================

func TestNumberingResolver_Resolve(t *testing.T) {
	nr := NewNumberingResolver(&numberingXML{
		AbstractNums: []abstractNumXML{
			{AbstractNumID: "0", Levels: []lvlXML{{ILvl: "0", NumFmt: valXML{Val: "bullet"}}}},
			{AbstractNumID: "1", Levels: []lvlXML{
				{ILvl: "0", NumFmt: valXML{Val: "decimal"}},
				{ILvl: "1", NumFmt: valXML{Val: "lowerRoman"}},
			}},
		},
		Nums: []numXML{
			{NumID: "1", AbstractNumID: valXML{Val: "0"}},
			{NumID: "2", AbstractNumID: valXML{Val: "1"}},
		},
	})

	tests := []struct {
		numID string
		level int
		want  model.ListKind
	}{
		{"1", 0, model.ListBulleted},
		{"2", 0, model.ListNumbered},
		{"2", 1, model.ListNumbered},
		{"2", 5, model.ListBulleted}, // undefined level
		{"9", 0, model.ListBulleted}, // undefined instance
		{"0", 0, model.ListNone},
		{"", 0, model.ListNone},
	}
	for _, tt := range tests {
		got := nr.Resolve(tt.numID, tt.level)
		if got.Kind != tt.want {
			t.Errorf("Resolve(%q, %d) = %v, want %v", tt.numID, tt.level, got.Kind, tt.want)
		}
		if got.Level != tt.level {
			t.Errorf("Resolve(%q, %d) level = %d", tt.numID, tt.level, got.Level)
		}
	}
}

func TestNewStyleResolver_Nil(t *testing.T) {
	sr := NewStyleResolver(nil)
	if s := sr.Resolve("Heading3"); !s.IsHeading || s.HeadingLevel != 3 {
		t.Errorf("Resolve(Heading3) = %+v", s)
	}
	if s := sr.Resolve("Normal"); s.IsHeading {
		t.Error("Normal should not be a heading")
	}
	if s := sr.Resolve(""); s.IsHeading || s.OutlineLevel != -1 {
		t.Errorf("Resolve(\"\") = %+v", s)
	}
}

func TestStyleResolver_CyclicBasedOn(t *testing.T) {
	sr := NewStyleResolver(&stylesXML{Styles: []styleDefXML{
		{StyleID: "A", BasedOn: valXML{Val: "B"}, RPr: runPropsXML{Bold: &onOffXML{}}},
		{StyleID: "B", BasedOn: valXML{Val: "A"}, RPr: runPropsXML{Italic: &onOffXML{}}},
	}})
	s := sr.Resolve("A")
	if !s.Bold || !s.Italic {
		t.Errorf("Resolve(A) = %+v, want bold and italic", s)
	}
}

func TestParseHalfPoints(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"24", 12},
		{"23", 12},
		{"0", 0},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := parseHalfPoints(tt.in); got != tt.want {
			t.Errorf("parseHalfPoints(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
