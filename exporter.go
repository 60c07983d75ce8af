package richdoc

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/tsawler/richdoc/convert"
	"github.com/tsawler/richdoc/docx"
	"github.com/tsawler/richdoc/format"
	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/sanitize"
	"github.com/tsawler/richdoc/wordcount"
)

// Exporter provides a fluent interface for turning editor HTML into a DOCX
// document. Each configuration method returns a new Exporter, so a partly
// configured Exporter can be shared and reused.
type Exporter struct {
	html    string
	options ExportOptions

	// Accumulated error (fail-fast)
	err error
}

// FromHTML returns an Exporter for the given editor HTML.
//
// Example:
//
//	data, err := richdoc.FromHTML(html).Title("Minutes").Author("Ana").Bytes()
func FromHTML(html string) *Exporter {
	return &Exporter{html: html, options: defaultOptions()}
}

// Open reads an HTML file and returns an Exporter for it. Files that are
// not HTML by extension or content fail at the terminal call.
//
// A complete page (doctype or <html> root) is reduced to its body with
// navigation, banners, sidebars and footers removed, and its <title> and
// author meta tag become Defaults.
//
// Example:
//
//	err := richdoc.Open("notes.html").Title("Notes").Author("Ana").Save("notes.docx")
func Open(filename string) *Exporter {
	e := &Exporter{options: defaultOptions()}

	data, err := os.ReadFile(filename)
	if err != nil {
		e.err = fmt.Errorf("richdoc: %w", err)
		return e
	}
	if format.Detect(filename) != format.HTML && format.DetectFromMagic(data) != format.HTML {
		e.err = fmt.Errorf("%w: %s is not HTML", ErrUnsupportedFormat, filename)
		return e
	}
	e.html = string(data)

	if htmldoc.IsDocument(e.html) {
		page, err := htmldoc.ReadPage(bytes.NewReader(data), htmldoc.ChromeStandard)
		if err != nil {
			e.err = fmt.Errorf("richdoc: %s: %w", filename, err)
			return e
		}
		if e.html, err = page.HTML(); err != nil {
			e.err = fmt.Errorf("richdoc: %s: %w", filename, err)
			return e
		}
		m := page.Metadata()
		e.options.defaults = metadataOptions{title: m.Title, author: m.Author}
	}
	return e
}

func (e *Exporter) clone() *Exporter {
	return &Exporter{
		html:    e.html,
		options: e.options.clone(),
		err:     e.err,
	}
}

// ============================================================================
// Configuration Methods (return new Exporter instance)
// ============================================================================

// Title sets the document title.
func (e *Exporter) Title(title string) *Exporter {
	next := e.clone()
	next.options.meta.title = title
	return next
}

// Author sets the document author.
func (e *Exporter) Author(author string) *Exporter {
	next := e.clone()
	next.options.meta.author = author
	return next
}

// Metadata sets title and author together.
func (e *Exporter) Metadata(m model.Metadata) *Exporter {
	next := e.clone()
	next.options.meta = metadataOptions{title: m.Title, author: m.Author}
	return next
}

// Defaults sets the title and author used when Title, Author or Metadata
// leave a field empty. Defaults already present, such as those Open read
// from a page's head, are kept.
func (e *Exporter) Defaults(m model.Metadata) *Exporter {
	next := e.clone()
	next.options.defaults = next.options.defaults.or(metadataOptions{title: m.Title, author: m.Author})
	return next
}

// SkipSanitize feeds the HTML to the converter as-is. Use it only for input
// that already went through sanitize.Sanitize.
func (e *Exporter) SkipSanitize() *Exporter {
	next := e.clone()
	next.options.skipSanitize = true
	return next
}

// Logger sets the logger passed to every pipeline stage. A nil logger is
// ignored.
func (e *Exporter) Logger(l *slog.Logger) *Exporter {
	next := e.clone()
	if l != nil {
		next.options.logger = l
	}
	return next
}

// Clock sets the time source for the document's created and modified
// properties. A nil function is ignored.
func (e *Exporter) Clock(now func() time.Time) *Exporter {
	next := e.clone()
	if now != nil {
		next.options.now = now
	}
	return next
}

// ============================================================================
// Terminal Methods
// ============================================================================

func (e *Exporter) metadata() model.Metadata {
	m := e.options.meta.or(e.options.defaults)
	return model.Metadata{Title: m.title, Author: m.author}
}

// HTML returns the HTML the converter will see: sanitized unless
// SkipSanitize was set.
func (e *Exporter) HTML() (string, error) {
	if e.err != nil {
		return "", e.err
	}
	if e.options.skipSanitize {
		return e.html, nil
	}
	return sanitize.New(sanitize.WithLogger(e.options.logger)).Sanitize(e.html), nil
}

// Paragraphs returns the converted paragraphs without validating metadata.
func (e *Exporter) Paragraphs() ([]model.Paragraph, error) {
	clean, err := e.HTML()
	if err != nil {
		return nil, err
	}
	paragraphs, err := convert.New(convert.WithLogger(e.options.logger)).Paragraphs(clean)
	if err != nil {
		return nil, fmt.Errorf("richdoc: %w", err)
	}
	return paragraphs, nil
}

// Document validates the metadata and builds the document model.
func (e *Exporter) Document() (*model.Document, error) {
	if e.err != nil {
		return nil, e.err
	}

	meta := e.metadata()
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMetadata, err)
	}

	paragraphs, err := e.Paragraphs()
	if err != nil {
		return nil, err
	}
	return model.NewDocument(meta, paragraphs), nil
}

// Bytes serializes the document as a DOCX package.
func (e *Exporter) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteTo writes the DOCX package to w. Nothing is written unless the
// whole package was built.
func (e *Exporter) WriteTo(w io.Writer) (int64, error) {
	doc, err := e.Document()
	if err != nil {
		return 0, err
	}

	data, err := docx.NewWriter(
		docx.WithLogger(e.options.logger),
		docx.WithClock(e.options.now),
	).Bytes(doc)
	if err != nil {
		return 0, fmt.Errorf("richdoc: %w", err)
	}

	n, err := w.Write(data)
	if err != nil {
		return int64(n), fmt.Errorf("richdoc: %w", err)
	}
	e.options.logger.Debug("exported docx", "paragraphs", len(doc.Paragraphs), "bytes", n)
	return int64(n), nil
}

// Save writes the DOCX package to filename. The file is written through a
// temporary sibling and renamed, so a failed export leaves no partial file.
func (e *Exporter) Save(filename string) error {
	data, err := e.Bytes()
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(filename), ".richdoc-*.docx")
	if err != nil {
		return fmt.Errorf("richdoc: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("richdoc: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("richdoc: writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("richdoc: writing %s: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return fmt.Errorf("richdoc: writing %s: %w", filename, err)
	}
	return nil
}

// WordCount returns the number of words the editor shows for the HTML.
func (e *Exporter) WordCount() (int, error) {
	clean, err := e.HTML()
	if err != nil {
		return 0, err
	}
	n, err := wordcount.CountHTML(clean)
	if err != nil {
		return 0, fmt.Errorf("richdoc: %w", err)
	}
	return n, nil
}
