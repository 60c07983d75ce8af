// Package richdoc converts rich-text editor HTML to DOCX and back.
//
// Basic usage:
//
//	data, err := richdoc.Export(html, model.Metadata{Title: "Minutes", Author: "Ana"})
//	if err != nil {
//	    // handle error
//	}
//
// With options:
//
//	err := richdoc.FromHTML(html).
//	    Title("Minutes").
//	    Author("Ana").
//	    Logger(logger).
//	    Save("minutes.docx")
//
// Importing goes the other way, through an importer.Importer:
//
//	html, meta, err := richdoc.ImportFile(ctx, "minutes.docx", current, nil)
//
// The lower-level sanitize, convert, docx and htmldoc packages are also
// available for finer control.
package richdoc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/tsawler/richdoc/format"
	"github.com/tsawler/richdoc/importer"
	"github.com/tsawler/richdoc/model"
)

var (
	// ErrInvalidMetadata is returned when title or author is empty. The
	// underlying *model.ValidationError is wrapped alongside it.
	ErrInvalidMetadata = errors.New("richdoc: invalid metadata")

	// ErrUnsupportedFormat is returned when an input is not the expected
	// HTML or DOCX format.
	ErrUnsupportedFormat = errors.New("richdoc: unsupported format")
)

// Export sanitizes html, converts it and serializes the result as a DOCX
// package. Nothing is produced unless every step succeeds.
func Export(html string, meta model.Metadata) ([]byte, error) {
	return FromHTML(html).Metadata(meta).Bytes()
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	data := richdoc.Must(richdoc.Export(html, meta))
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// Import runs imp over r, then sanitizes the returned HTML and merges its
// metadata into current. A nil imp reads the DOCX in-process.
func Import(ctx context.Context, filename string, r io.Reader, current model.Metadata, imp importer.Importer) (string, model.Metadata, error) {
	if imp == nil {
		imp = importer.NewLocal(nil)
	}
	res, err := imp.Import(ctx, filename, r)
	if err != nil {
		return "", current, err
	}
	html, meta := importer.Apply(res, current, nil)
	return html, meta, nil
}

// ImportFile opens filename, checks that it is a DOCX package and imports it
// with imp.
func ImportFile(ctx context.Context, filename string, current model.Metadata, imp importer.Importer) (string, model.Metadata, error) {
	f, err := os.Open(filename)
	if err != nil {
		return "", current, fmt.Errorf("richdoc: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", current, fmt.Errorf("richdoc: %w", err)
	}
	kind, err := format.DetectFromReader(f, info.Size())
	if err != nil {
		return "", current, fmt.Errorf("richdoc: detecting format of %s: %w", filename, err)
	}
	if kind != format.DOCX {
		return "", current, fmt.Errorf("%w: %s is %s, want DOCX", ErrUnsupportedFormat, filename, kind)
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", current, fmt.Errorf("richdoc: %w", err)
	}

	return Import(ctx, filename, f, current, imp)
}
