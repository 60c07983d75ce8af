package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/tsawler/richdoc/docx"
	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
)

// Local imports DOCX files in-process.
type Local struct {
	logger *slog.Logger
}

// NewLocal creates a Local importer. A nil logger discards output.
func NewLocal(logger *slog.Logger) *Local {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Local{logger: logger}
}

// Import reads the whole stream, parses it as a DOCX package and renders
// its paragraphs as editor HTML. Title and author are reported only when
// the package carries them.
func (l *Local) Import(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("importer: reading %s: %w", filename, err)
	}

	dr, err := docx.OpenBytes(data)
	if err != nil {
		return nil, fmt.Errorf("importer: opening %s: %w", filename, err)
	}
	defer dr.Close()

	doc := dr.Document()
	out, err := htmldoc.Render(doc)
	if err != nil {
		return nil, fmt.Errorf("importer: rendering %s: %w", filename, err)
	}

	res := &Result{HTML: out, Metadata: partial(doc.Metadata)}
	if app := dr.Application(); app != "" {
		res.Messages = append(res.Messages, "created by "+app)
	}

	l.logger.Debug("docx imported",
		"file", filename,
		"paragraphs", len(doc.Paragraphs),
		"bytes", len(data))
	return res, nil
}

func partial(m model.Metadata) *model.PartialMetadata {
	var p model.PartialMetadata
	if m.Title != "" {
		p.Title = &m.Title
	}
	if m.Author != "" {
		p.Author = &m.Author
	}
	if p.Title == nil && p.Author == nil {
		return nil
	}
	return &p
}
