package docx

import (
	"encoding/xml"
	"strconv"

	"github.com/tsawler/richdoc/model"
)

// Marshalling types. Element names carry their namespace prefix literally;
// the prefixes are declared on each part's root element.

const (
	ctRels      = "application/vnd.openxmlformats-package.relationships+xml"
	ctXML       = "application/xml"
	ctDocument  = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	ctStyles    = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	ctNumbering = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	ctCore      = "application/vnd.openxmlformats-package.core-properties+xml"
	ctApp       = "application/vnd.openxmlformats-officedocument.extended-properties+xml"

	nsContentTypes  = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsRelationships = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsExtended      = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"

	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCore           = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtended       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
)

// [Content_Types].xml

type contentTypesOut struct {
	XMLName   xml.Name         `xml:"Types"`
	Xmlns     string           `xml:"xmlns,attr"`
	Defaults  []defaultTypeOut `xml:"Default"`
	Overrides []overrideOut    `xml:"Override"`
}

type defaultTypeOut struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type overrideOut struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func contentTypes() contentTypesOut {
	return contentTypesOut{
		Xmlns: nsContentTypes,
		Defaults: []defaultTypeOut{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: ctXML},
		},
		Overrides: []overrideOut{
			{PartName: "/word/document.xml", ContentType: ctDocument},
			{PartName: "/word/styles.xml", ContentType: ctStyles},
			{PartName: "/word/numbering.xml", ContentType: ctNumbering},
			{PartName: "/docProps/core.xml", ContentType: ctCore},
			{PartName: "/docProps/app.xml", ContentType: ctApp},
		},
	}
}

// *.rels

type relationshipsOut struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []relationshipOut `xml:"Relationship"`
}

type relationshipOut struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func packageRels() relationshipsOut {
	return relationshipsOut{
		Xmlns: nsRelationships,
		Relationships: []relationshipOut{
			{ID: "rId1", Type: relTypeOfficeDocument, Target: "word/document.xml"},
			{ID: "rId2", Type: relTypeCore, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeExtended, Target: "docProps/app.xml"},
		},
	}
}

// docProps/core.xml and docProps/app.xml

type corePropertiesOut struct {
	XMLName     xml.Name `xml:"cp:coreProperties"`
	XmlnsCP     string   `xml:"xmlns:cp,attr"`
	XmlnsDC     string   `xml:"xmlns:dc,attr"`
	XmlnsDCT    string   `xml:"xmlns:dcterms,attr"`
	XmlnsXSI    string   `xml:"xmlns:xsi,attr"`
	Title       string   `xml:"dc:title"`
	Creator     string   `xml:"dc:creator"`
	Description string   `xml:"dc:description,omitempty"`
	Created     w3cDate  `xml:"dcterms:created"`
	Modified    w3cDate  `xml:"dcterms:modified"`
}

type w3cDate struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

type appPropertiesOut struct {
	XMLName     xml.Name `xml:"Properties"`
	Xmlns       string   `xml:"xmlns,attr"`
	Application string   `xml:"Application"`
}

// word/document.xml

type documentOut struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    bodyOut  `xml:"w:body"`
}

type bodyOut struct {
	Paragraphs []paragraphOut `xml:"w:p"`
	SectPr     sectPrOut      `xml:"w:sectPr"`
}

// sectPrOut is a US Letter page with one-inch margins.
type sectPrOut struct {
	PgSz  pgSzOut  `xml:"w:pgSz"`
	PgMar pgMarOut `xml:"w:pgMar"`
}

type pgSzOut struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type pgMarOut struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
}

func letterSection() sectPrOut {
	return sectPrOut{
		PgSz:  pgSzOut{W: 12240, H: 15840},
		PgMar: pgMarOut{Top: 1440, Right: 1440, Bottom: 1440, Left: 1440},
	}
}

// paragraphOut holds properties and an ordered mix of runs and hyperlinks,
// so it marshals itself.
type paragraphOut struct {
	Props   *paragraphPropsOut
	Content []any // *runOut or *hyperlinkOut
}

func (p paragraphOut) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:p"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if p.Props != nil {
		if err := e.Encode(p.Props); err != nil {
			return err
		}
	}
	for _, c := range p.Content {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// Child order follows the CT_PPr sequence.
type paragraphPropsOut struct {
	XMLName xml.Name   `xml:"w:pPr"`
	Style   *valOut    `xml:"w:pStyle,omitempty"`
	NumPr   *numPrOut  `xml:"w:numPr,omitempty"`
	Indent  *indentOut `xml:"w:ind,omitempty"`
	Jc      *valOut    `xml:"w:jc,omitempty"`
}

type valOut struct {
	Val string `xml:"w:val,attr"`
}

type numPrOut struct {
	ILvl  valOut `xml:"w:ilvl"`
	NumID valOut `xml:"w:numId"`
}

type indentOut struct {
	Left    string `xml:"w:left,attr,omitempty"`
	Hanging string `xml:"w:hanging,attr,omitempty"`
}

type runOut struct {
	XMLName xml.Name     `xml:"w:r"`
	Props   *runPropsOut `xml:"w:rPr,omitempty"`
	Text    textOut      `xml:"w:t"`
}

// Child order follows the CT_RPr sequence.
type runPropsOut struct {
	Style     *valOut   `xml:"w:rStyle,omitempty"`
	Fonts     *fontsOut `xml:"w:rFonts,omitempty"`
	Bold      *emptyOut `xml:"w:b,omitempty"`
	Italic    *emptyOut `xml:"w:i,omitempty"`
	Color     *valOut   `xml:"w:color,omitempty"`
	Size      *valOut   `xml:"w:sz,omitempty"`
	SizeCS    *valOut   `xml:"w:szCs,omitempty"`
	Underline *valOut   `xml:"w:u,omitempty"`
}

type emptyOut struct{}

type fontsOut struct {
	ASCII string `xml:"w:ascii,attr"`
	HAnsi string `xml:"w:hAnsi,attr"`
	Hint  string `xml:"w:hint,attr,omitempty"`
}

type textOut struct {
	Space string `xml:"xml:space,attr"`
	Value string `xml:",chardata"`
}

type hyperlinkOut struct {
	XMLName xml.Name `xml:"w:hyperlink"`
	ID      string   `xml:"r:id,attr"`
	History string   `xml:"w:history,attr"`
	Runs    []runOut `xml:"w:r"`
}

// halfPoints converts a point size to the w:sz value.
func halfPoints(pt int) *valOut {
	return &valOut{Val: strconv.Itoa(pt * 2)}
}

// word/styles.xml

type stylesOut struct {
	XMLName     xml.Name       `xml:"w:styles"`
	XmlnsW      string         `xml:"xmlns:w,attr"`
	DocDefaults docDefaultsOut `xml:"w:docDefaults"`
	Styles      []styleOut     `xml:"w:style"`
}

type docDefaultsOut struct {
	RPr runPropsOut `xml:"w:rPrDefault>w:rPr"`
}

type styleOut struct {
	Type    string       `xml:"w:type,attr"`
	Default string       `xml:"w:default,attr,omitempty"`
	StyleID string       `xml:"w:styleId,attr"`
	Name    valOut       `xml:"w:name"`
	BasedOn *valOut      `xml:"w:basedOn,omitempty"`
	Next    *valOut      `xml:"w:next,omitempty"`
	QFormat *emptyOut    `xml:"w:qFormat,omitempty"`
	PPr     *stylePPrOut `xml:"w:pPr,omitempty"`
	RPr     *runPropsOut `xml:"w:rPr,omitempty"`
}

type stylePPrOut struct {
	KeepNext   *emptyOut   `xml:"w:keepNext,omitempty"`
	Spacing    *spacingOut `xml:"w:spacing,omitempty"`
	Indent     *indentOut  `xml:"w:ind,omitempty"`
	OutlineLvl *valOut     `xml:"w:outlineLvl,omitempty"`
}

type spacingOut struct {
	Before string `xml:"w:before,attr,omitempty"`
	After  string `xml:"w:after,attr,omitempty"`
}

// Heading sizes in points, indexed by level-1.
var headingSizes = [3]int{16, 14, 12}

// DefaultFontSize is the Normal style size in points.
const DefaultFontSize = 11

func buildStyles(doc *model.Document) stylesOut {
	out := stylesOut{
		XmlnsW: nsW,
		DocDefaults: docDefaultsOut{RPr: runPropsOut{
			Fonts:  &fontsOut{ASCII: "Calibri", HAnsi: "Calibri"},
			Size:   halfPoints(DefaultFontSize),
			SizeCS: halfPoints(DefaultFontSize),
		}},
	}

	out.Styles = append(out.Styles, styleOut{
		Type:    "paragraph",
		Default: "1",
		StyleID: "Normal",
		Name:    valOut{Val: "Normal"},
		QFormat: &emptyOut{},
		PPr:     &stylePPrOut{Spacing: &spacingOut{After: "120"}},
	})

	for i, size := range headingSizes {
		level := i + 1
		out.Styles = append(out.Styles, styleOut{
			Type:    "paragraph",
			StyleID: "Heading" + strconv.Itoa(level),
			Name:    valOut{Val: "heading " + strconv.Itoa(level)},
			BasedOn: &valOut{Val: "Normal"},
			Next:    &valOut{Val: "Normal"},
			QFormat: &emptyOut{},
			PPr: &stylePPrOut{
				KeepNext:   &emptyOut{},
				Spacing:    &spacingOut{Before: "240", After: "120"},
				OutlineLvl: &valOut{Val: strconv.Itoa(i)},
			},
			RPr: &runPropsOut{
				Bold:   &emptyOut{},
				Size:   halfPoints(size),
				SizeCS: halfPoints(size),
			},
		})
	}

	out.Styles = append(out.Styles, styleOut{
		Type:    "paragraph",
		StyleID: "ListParagraph",
		Name:    valOut{Val: "List Paragraph"},
		BasedOn: &valOut{Val: "Normal"},
		QFormat: &emptyOut{},
		PPr:     &stylePPrOut{Indent: &indentOut{Left: "720"}},
	})

	for _, ps := range doc.Styles {
		s := styleOut{
			Type:    ps.Kind.String(),
			StyleID: ps.ID,
			Name:    valOut{Val: ps.Name},
			RPr:     &runPropsOut{},
		}
		if ps.BasedOn != "" && ps.Kind == model.StyleParagraph {
			s.BasedOn = &valOut{Val: ps.BasedOn}
		}
		if ps.Color != "" {
			s.RPr.Color = &valOut{Val: ps.Color}
		}
		if ps.Underline {
			s.RPr.Underline = &valOut{Val: "single"}
		}
		out.Styles = append(out.Styles, s)
	}

	return out
}

// word/numbering.xml

type numberingOut struct {
	XMLName      xml.Name         `xml:"w:numbering"`
	XmlnsW       string           `xml:"xmlns:w,attr"`
	AbstractNums []abstractNumOut `xml:"w:abstractNum"`
	Nums         []numOut         `xml:"w:num"`
}

type abstractNumOut struct {
	ID             string   `xml:"w:abstractNumId,attr"`
	MultiLevelType valOut   `xml:"w:multiLevelType"`
	Levels         []lvlOut `xml:"w:lvl"`
}

type lvlOut struct {
	ILvl    string       `xml:"w:ilvl,attr"`
	Start   valOut       `xml:"w:start"`
	NumFmt  valOut       `xml:"w:numFmt"`
	LvlText valOut       `xml:"w:lvlText"`
	LvlJc   valOut       `xml:"w:lvlJc"`
	PPr     lvlPPrOut    `xml:"w:pPr"`
	RPr     *runPropsOut `xml:"w:rPr,omitempty"`
}

type lvlPPrOut struct {
	Indent indentOut `xml:"w:ind"`
}

type numOut struct {
	NumID         string `xml:"w:numId,attr"`
	AbstractNumID valOut `xml:"w:abstractNumId"`
}

// Numbering instances referenced by list paragraphs.
const (
	bulletNumID   = "1"
	numberedNumID = "2"

	// maxListLevel is the deepest level with its own formatting; deeper
	// lists reuse it.
	maxListLevel = 2
)

var bulletGlyphs = [maxListLevel + 1]string{"•", "◦", "▪"}

func listIndent(level int) indentOut {
	return indentOut{Left: strconv.Itoa(720 * (level + 1)), Hanging: "360"}
}

func buildNumbering(def model.NumberingDef) numberingOut {
	bullets := abstractNumOut{ID: "0", MultiLevelType: valOut{Val: "hybridMultilevel"}}
	for lvl, glyph := range bulletGlyphs {
		bullets.Levels = append(bullets.Levels, lvlOut{
			ILvl:    strconv.Itoa(lvl),
			Start:   valOut{Val: "1"},
			NumFmt:  valOut{Val: "bullet"},
			LvlText: valOut{Val: glyph},
			LvlJc:   valOut{Val: "left"},
			PPr:     lvlPPrOut{Indent: listIndent(lvl)},
		})
	}

	numbered := abstractNumOut{ID: "1", MultiLevelType: valOut{Val: "multilevel"}}
	for _, l := range def.Levels {
		if l.Level < 0 || l.Level > maxListLevel {
			continue
		}
		numbered.Levels = append(numbered.Levels, lvlOut{
			ILvl:    strconv.Itoa(l.Level),
			Start:   valOut{Val: "1"},
			NumFmt:  valOut{Val: l.Format},
			LvlText: valOut{Val: l.Text},
			LvlJc:   valOut{Val: "left"},
			PPr:     lvlPPrOut{Indent: listIndent(l.Level)},
		})
	}

	return numberingOut{
		XmlnsW:       nsW,
		AbstractNums: []abstractNumOut{bullets, numbered},
		Nums: []numOut{
			{NumID: bulletNumID, AbstractNumID: valOut{Val: "0"}},
			{NumID: numberedNumID, AbstractNumID: valOut{Val: "1"}},
		},
	}
}
