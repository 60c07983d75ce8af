package docx

import (
	"encoding/xml"
	"strings"
)

// XML namespaces used in DOCX files
const (
	nsW       = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDC      = "http://purl.org/dc/elements/1.1/"
	nsDCTerms = "http://purl.org/dc/terms/"
	nsCP      = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsXSI     = "http://www.w3.org/2001/XMLSchema-instance"
)

// documentXML represents the structure of word/document.xml
type documentXML struct {
	XMLName xml.Name `xml:"document"`
	Body    *bodyXML `xml:"body"`
}

// bodyXML represents the document body. Elements keeps paragraphs and tables
// in document order.
type bodyXML struct {
	Elements []bodyElement
}

// bodyElement is a paragraph or a table; exactly one field is set.
type bodyElement struct {
	Paragraph *paragraphXML
	Table     *tableXML
}

// UnmarshalXML decodes block content in order. Content controls (w:sdt) are
// unwrapped; everything else is skipped.
func (b *bodyXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				var p paragraphXML
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Paragraph: &p})
			case "tbl":
				var tbl tableXML
				if err := d.DecodeElement(&tbl, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, bodyElement{Table: &tbl})
			case "sdt":
				var sdt sdtXML
				if err := d.DecodeElement(&sdt, &t); err != nil {
					return err
				}
				b.Elements = append(b.Elements, sdt.Content.Elements...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// sdtXML represents a block-level content control (<w:sdt>).
type sdtXML struct {
	Content bodyXML `xml:"sdtContent"`
}

// paragraphXML represents a paragraph element (<w:p>).
type paragraphXML struct {
	Properties paragraphPropsXML
	Content    []paragraphContent // runs and hyperlinks in document order
}

// paragraphContent is a run or a hyperlink; exactly one field is set.
type paragraphContent struct {
	Run       *runXML
	Hyperlink *hyperlinkXML
}

// UnmarshalXML decodes paragraph properties and inline content in order.
// Runs inside smart tags and inserted-revision wrappers are lifted out.
func (p *paragraphXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "pPr":
				if err := d.DecodeElement(&p.Properties, &t); err != nil {
					return err
				}
			case "r":
				var r runXML
				if err := d.DecodeElement(&r, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, paragraphContent{Run: &r})
			case "hyperlink":
				var h hyperlinkXML
				if err := d.DecodeElement(&h, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, paragraphContent{Hyperlink: &h})
			case "smartTag", "ins", "customXml":
				var inner paragraphXML
				if err := d.DecodeElement(&inner, &t); err != nil {
					return err
				}
				p.Content = append(p.Content, inner.Content...)
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// paragraphPropsXML represents paragraph properties (<w:pPr>).
type paragraphPropsXML struct {
	Style         styleRefXML       `xml:"pStyle"`
	NumPr         numberingPropsXML `xml:"numPr"`
	Justification justificationXML  `xml:"jc"`
	Indent        indentXML         `xml:"ind"`
	OutlineLvl    outlineLvlXML     `xml:"outlineLvl"`
}

// styleRefXML represents a style reference.
type styleRefXML struct {
	Val string `xml:"val,attr"`
}

// numberingPropsXML represents numbering properties for lists.
type numberingPropsXML struct {
	ILvl  valXML `xml:"ilvl"`
	NumID valXML `xml:"numId"`
}

// valXML is any element whose payload is a single w:val attribute.
type valXML struct {
	Val string `xml:"val,attr"`
}

// justificationXML represents text justification.
type justificationXML struct {
	Val string `xml:"val,attr"` // left, center, right, both
}

// indentXML represents paragraph indentation.
type indentXML struct {
	Left  string `xml:"left,attr"`
	Start string `xml:"start,attr"`
}

// outlineLvlXML represents outline level.
type outlineLvlXML struct {
	Val string `xml:"val,attr"`
}

// runXML represents a text run (<w:r>). Text holds the run's content with
// tabs and breaks expanded in document order.
type runXML struct {
	Properties runPropsXML
	Text       string
}

// UnmarshalXML decodes a run, keeping text, tabs and breaks in order.
func (r *runXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var sb strings.Builder
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "rPr":
				if err := d.DecodeElement(&r.Properties, &t); err != nil {
					return err
				}
			case "t":
				var text textXML
				if err := d.DecodeElement(&text, &t); err != nil {
					return err
				}
				sb.WriteString(text.Value)
			case "tab":
				sb.WriteString("\t")
				if err := d.Skip(); err != nil {
					return err
				}
			case "br", "cr":
				sb.WriteString("\n")
				if err := d.Skip(); err != nil {
					return err
				}
			case "noBreakHyphen":
				sb.WriteString("-")
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			r.Text = sb.String()
			return nil
		}
	}
}

// runPropsXML represents run properties (<w:rPr>).
type runPropsXML struct {
	Style    styleRefXML `xml:"rStyle"`
	Bold     *onOffXML   `xml:"b"`
	Italic   *onOffXML   `xml:"i"`
	FontSize sizeXML     `xml:"sz"`
}

// onOffXML is a toggle property. Presence means on unless val is false.
type onOffXML struct {
	Val string `xml:"val,attr"`
}

// isOn reports the effective value of a toggle, and whether it was set.
func (o *onOffXML) isOn() (on, set bool) {
	if o == nil {
		return false, false
	}
	switch o.Val {
	case "false", "0", "off":
		return false, true
	}
	return true, true
}

// sizeXML represents font size (in half-points).
type sizeXML struct {
	Val string `xml:"val,attr"`
}

// textXML represents text content (<w:t>).
type textXML struct {
	Space string `xml:"space,attr"` // preserve
	Value string `xml:",chardata"`
}

// hyperlinkXML represents a hyperlink.
type hyperlinkXML struct {
	ID     string   `xml:"id,attr"`
	Anchor string   `xml:"anchor,attr"`
	Runs   []runXML `xml:"r"`
}

// tableXML represents a table (<w:tbl>). Only the paragraph content of its
// cells is read.
type tableXML struct {
	Rows []tableRowXML `xml:"tr"`
}

// tableRowXML represents a table row (<w:tr>).
type tableRowXML struct {
	Cells []tableCellXML `xml:"tc"`
}

// tableCellXML represents a table cell (<w:tc>).
type tableCellXML struct {
	Content bodyXML
}

// UnmarshalXML decodes the cell body, which may hold paragraphs and nested
// tables.
func (c *tableCellXML) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return c.Content.UnmarshalXML(d, start)
}
