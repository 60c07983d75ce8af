// Package docx reads and writes DOCX (Office Open XML) word-processing
// documents.
//
// The [Writer] serializes a model.Document into a complete package:
//
//	[Content_Types].xml
//	_rels/.rels
//	docProps/core.xml, docProps/app.xml
//	word/document.xml
//	word/styles.xml
//	word/numbering.xml
//	word/_rels/document.xml.rels
//
// Headings map to the built-in Heading1-Heading3 paragraph styles, bulleted
// and numbered lists to two numbering instances, block indentation to a left
// indent in twips and hyperlinks to external relationships.
//
// The [Reader] goes the other way. It preserves the order of runs and
// hyperlinks inside a paragraph, resolves heading levels through the style
// inheritance chain and list kinds through numbering.xml, so a document
// written by the Writer reads back into equivalent paragraphs.
//
//	data, err := docx.Bytes(doc)
//	...
//	r, err := docx.OpenBytes(data)
//	...
//	defer r.Close()
//	for _, p := range r.Paragraphs() {
//	    fmt.Println(p.Heading, p.List, p.Text())
//	}
package docx
