// Package importer turns a DOCX file into editor HTML and metadata.
//
// Two implementations are provided. Local reads the package in-process with
// the docx reader and renders it with htmldoc. Client posts the file to an
// HTTP import service that answers with the same JSON shape:
//
//	{"html": "...", "metadata": {"title": "...", "author": "..."}, "messages": [...]}
//
// Either way the result is untrusted until Apply runs it through the
// sanitizer and merges its metadata into the editor's current values.
package importer

import (
	"context"
	"io"
	"strings"

	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/sanitize"
)

// Result is what an import collaborator returns.
type Result struct {
	HTML     string                 `json:"html"`
	Metadata *model.PartialMetadata `json:"metadata,omitempty"`
	Messages []string               `json:"messages,omitempty"`
}

// Importer converts a DOCX stream into a Result.
type Importer interface {
	Import(ctx context.Context, filename string, r io.Reader) (*Result, error)
}

// emptyDocument replaces a blank import before sanitizing.
const emptyDocument = "<p></p>"

// Apply sanitizes res.HTML and merges the valid metadata fields of res into
// current. A nil sanitizer uses the package default.
func Apply(res *Result, current model.Metadata, s *sanitize.Sanitizer) (string, model.Metadata) {
	if res == nil {
		res = &Result{}
	}

	raw := res.HTML
	if strings.TrimSpace(raw) == "" {
		raw = emptyDocument
	}

	var clean string
	if s != nil {
		clean = s.Sanitize(raw)
	} else {
		clean = sanitize.Sanitize(raw)
	}

	return clean, current.Merge(res.Metadata)
}
