package richdoc

import (
	"io"
	"log/slog"
	"time"
)

// ExportOptions holds configuration for an export.
type ExportOptions struct {
	meta     metadataOptions
	defaults metadataOptions // used where meta is empty

	// Processing options
	skipSanitize bool // input is already whitelist-conformant

	logger *slog.Logger
	now    func() time.Time
}

type metadataOptions struct {
	title  string
	author string
}

// or fills the empty fields of m from fallback.
func (m metadataOptions) or(fallback metadataOptions) metadataOptions {
	if m.title == "" {
		m.title = fallback.title
	}
	if m.author == "" {
		m.author = fallback.author
	}
	return m
}

// defaultOptions returns the default export options.
func defaultOptions() ExportOptions {
	return ExportOptions{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:    time.Now,
	}
}

// clone returns a copy of ExportOptions. Every field is a value or an
// immutable reference, so a plain copy is independent.
func (o ExportOptions) clone() ExportOptions {
	return ExportOptions{
		meta:         o.meta,
		defaults:     o.defaults,
		skipSanitize: o.skipSanitize,
		logger:       o.logger,
		now:          o.now,
	}
}
