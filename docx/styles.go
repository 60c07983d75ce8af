package docx

import "encoding/xml"

// stylesXML represents the structure of word/styles.xml
type stylesXML struct {
	XMLName     xml.Name       `xml:"styles"`
	DocDefaults docDefaultsXML `xml:"docDefaults"`
	Styles      []styleDefXML  `xml:"style"`
}

// docDefaultsXML represents document default styles.
type docDefaultsXML struct {
	RPrDefault rPrDefaultXML `xml:"rPrDefault"`
}

// rPrDefaultXML represents default run properties.
type rPrDefaultXML struct {
	RPr runPropsXML `xml:"rPr"`
}

// styleDefXML represents a style definition.
type styleDefXML struct {
	Type    string            `xml:"type,attr"` // paragraph, character, table, numbering
	StyleID string            `xml:"styleId,attr"`
	Default string            `xml:"default,attr"` // "1" if default style
	Name    valXML            `xml:"name"`
	BasedOn valXML            `xml:"basedOn"`
	PPr     paragraphPropsXML `xml:"pPr"`
	RPr     runPropsXML       `xml:"rPr"`
}

// numberingXML represents word/numbering.xml
type numberingXML struct {
	XMLName      xml.Name         `xml:"numbering"`
	AbstractNums []abstractNumXML `xml:"abstractNum"`
	Nums         []numXML         `xml:"num"`
}

// abstractNumXML represents an abstract numbering definition.
type abstractNumXML struct {
	AbstractNumID string   `xml:"abstractNumId,attr"`
	Levels        []lvlXML `xml:"lvl"`
}

// lvlXML represents a numbering level.
type lvlXML struct {
	ILvl    string `xml:"ilvl,attr"`
	NumFmt  valXML `xml:"numFmt"`  // decimal, bullet, lowerLetter, ...
	LvlText valXML `xml:"lvlText"` // e.g. "%1."
}

// numXML represents a numbering instance.
type numXML struct {
	NumID         string `xml:"numId,attr"`
	AbstractNumID valXML `xml:"abstractNumId"`
}

// relationshipsXML represents _rels/*.rels files
type relationshipsXML struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Relationships []relationshipXML `xml:"Relationship"`
}

// relationshipXML represents a single relationship.
type relationshipXML struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr"` // External or empty (internal)
}

// corePropertiesXML represents docProps/core.xml (Dublin Core metadata)
type corePropertiesXML struct {
	XMLName     xml.Name `xml:"coreProperties"`
	Title       string   `xml:"title"`
	Subject     string   `xml:"subject"`
	Creator     string   `xml:"creator"`
	Description string   `xml:"description"`
	Created     string   `xml:"created"`
	Modified    string   `xml:"modified"`
}

// appPropertiesXML represents docProps/app.xml
type appPropertiesXML struct {
	XMLName     xml.Name `xml:"Properties"`
	Application string   `xml:"Application"`
}
