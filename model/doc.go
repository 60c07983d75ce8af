// Package model provides the intermediate representation (IR) shared by the
// HTML converter, the DOCX writer and the DOCX reader.
//
// The IR is deliberately flat: a [Document] is an ordered sequence of
// [Paragraph] values. Everything a word processor knows about a block lives
// on the paragraph itself (heading level, list classification, alignment,
// left indent), and everything it knows about inline text lives on the
// paragraph's [Inline] values.
//
// # Document Structure
//
//	doc := model.NewDocument(model.Metadata{Title: "Notes", Author: "Ana"}, paragraphs)
//	for _, p := range doc.Paragraphs {
//	    fmt.Println(p.Text())
//	}
//
// [NewDocument] installs the fixed numbering definition and the "Hyperlink"
// paragraph style that every exported document carries.
//
// # Inlines
//
// [Inline] is a closed sum type with two variants:
//
//   - [Run] - text with bold, italic and point size
//   - [Hyperlink] - display text plus an absolute http(s) URL
//
// Use a type switch to consume them:
//
//	switch in := inline.(type) {
//	case *model.Run:
//	case *model.Hyperlink:
//	}
//
// # Styles
//
// [Style] is an immutable value. The With methods return modified copies so
// that sibling branches of a tree walk never observe each other's changes.
//
// # Metadata
//
// [Metadata] must carry a non-empty title and author before a document may be
// serialized; see [Metadata.Validate]. [PartialMetadata] models the optional
// fields an importer may return, merged with [Metadata.Merge].
package model
