// Package format detects whether an input is editor HTML or a DOCX package.
package format

import (
	"archive/zip"
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Format represents a supported document format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// HTML indicates an HTML document or editor fragment.
	HTML
	// DOCX indicates a Microsoft Word (.docx) document.
	DOCX
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case HTML:
		return "HTML"
	case DOCX:
		return "DOCX"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case HTML:
		return ".html"
	case DOCX:
		return ".docx"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".html", ".htm", ".xhtml":
		return HTML
	case ".docx":
		return DOCX
	default:
		return Unknown
	}
}

var zipMagic = []byte{0x50, 0x4B, 0x03, 0x04}

// fragmentTags are the block elements an editor fragment can start with.
var fragmentTags = []string{
	"<P", "<H1", "<H2", "<H3", "<UL", "<OL", "<LI", "<BLOCKQUOTE", "<DIV", "<BODY",
}

// DetectFromMagic checks leading bytes. A ZIP archive reports Unknown
// because the package contents must be inspected; use DetectFromReader.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, zipMagic) {
		return Unknown
	}
	if looksLikeHTML(data) {
		return HTML
	}
	return Unknown
}

// looksLikeHTML accepts full documents and editor fragments.
func looksLikeHTML(data []byte) bool {
	data = bytes.TrimLeft(data, " \t\r\n")
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(data) == 0 || data[0] != '<' {
		return false
	}

	upper := strings.ToUpper(string(data[:min(len(data), 512)]))
	switch {
	case strings.HasPrefix(upper, "<!DOCTYPE HTML"), strings.HasPrefix(upper, "<HTML"):
		return true
	case strings.HasPrefix(upper, "<?XML"):
		return strings.Contains(upper, "<HTML")
	}

	for _, tag := range fragmentTags {
		if !strings.HasPrefix(upper, tag) {
			continue
		}
		if len(upper) == len(tag) {
			return true
		}
		switch upper[len(tag)] {
		case '>', ' ', '/', '\t', '\n':
			return true
		}
	}
	return false
}

// DetectFromReader inspects content. ZIP archives are opened to tell a
// DOCX package from other ZIP files.
func DetectFromReader(r io.ReaderAt, size int64) (Format, error) {
	magic := make([]byte, 512)
	n, err := r.ReadAt(magic, 0)
	if err != nil && err != io.EOF {
		return Unknown, err
	}
	magic = magic[:n]

	if bytes.HasPrefix(magic, zipMagic) {
		return detectZIPFormat(r, size)
	}
	if looksLikeHTML(magic) {
		return HTML, nil
	}
	return Unknown, nil
}

// detectZIPFormat reports DOCX when the archive has both the content types
// part and the main document part.
func detectZIPFormat(r io.ReaderAt, size int64) (Format, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return Unknown, err
	}

	var contentTypes, document bool
	for _, f := range zr.File {
		switch f.Name {
		case "[Content_Types].xml":
			contentTypes = true
		case "word/document.xml":
			document = true
		}
	}
	if contentTypes && document {
		return DOCX, nil
	}
	return Unknown, nil
}
