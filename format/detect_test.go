package format

import (
	"archive/zip"
	"bytes"
	"testing"
)

func TestFormat_String(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{HTML, "HTML"},
		{DOCX, "DOCX"},
		{Unknown, "Unknown"},
		{Format(99), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.format.String(); got != tt.want {
			t.Errorf("Format(%d).String() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestFormat_Extension(t *testing.T) {
	tests := []struct {
		format Format
		want   string
	}{
		{HTML, ".html"},
		{DOCX, ".docx"},
		{Unknown, ""},
	}

	for _, tt := range tests {
		if got := tt.format.Extension(); got != tt.want {
			t.Errorf("Format(%d).Extension() = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestDetect(t *testing.T) {
	tests := []struct {
		filename string
		want     Format
	}{
		{"notes.docx", DOCX},
		{"notes.DOCX", DOCX},
		{"notes.Docx", DOCX},
		{"notes.html", HTML},
		{"notes.HTML", HTML},
		{"notes.htm", HTML},
		{"notes.xhtml", HTML},
		{"notes.pdf", Unknown},
		{"notes.txt", Unknown},
		{"notes", Unknown},
		{"", Unknown},
		{"/path/to/file.docx", DOCX},
		{"/path/to/file.html", HTML},
	}

	for _, tt := range tests {
		if got := Detect(tt.filename); got != tt.want {
			t.Errorf("Detect(%q) = %v, want %v", tt.filename, got, tt.want)
		}
	}
}

func TestDetectFromMagic(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want Format
	}{
		{"ZIP needs inspection", []byte{0x50, 0x4B, 0x03, 0x04, 0x00, 0x00}, Unknown},
		{"DOCTYPE", []byte("<!DOCTYPE html>\n<html>"), HTML},
		{"html tag", []byte("<html><head>"), HTML},
		{"whitespace before DOCTYPE", []byte("  \n  <!DOCTYPE HTML PUBLIC"), HTML},
		{"XHTML", []byte(`<?xml version="1.0"?><html xmlns="http://www.w3.org/1999/xhtml">`), HTML},
		{"XML without html", []byte(`<?xml version="1.0"?><feed>`), Unknown},
		{"editor paragraph", []byte("<p>Hello</p>"), HTML},
		{"editor heading", []byte("<h2 style=\"text-align: center\">T</h2>"), HTML},
		{"editor list", []byte("<ul><li>a</li></ul>"), HTML},
		{"byte order mark", []byte("\xef\xbb\xbf<p>x</p>"), HTML},
		{"tag prefix only", []byte("<pre>code</pre>"), Unknown},
		{"bare tag", []byte("<p"), HTML},
		{"empty", []byte{}, Unknown},
		{"short", []byte{0x50, 0x4B}, Unknown},
		{"text", []byte("Hello, World!"), Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFromMagic(tt.data); got != tt.want {
				t.Errorf("DetectFromMagic() = %v, want %v", got, tt.want)
			}
		})
	}
}

func zipWith(t *testing.T, names ...string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
		if _, err := w.Write([]byte("<x/>")); err != nil {
			t.Fatalf("Write(%q) error = %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	return buf.Bytes()
}

func TestDetectFromReader(t *testing.T) {
	tests := []struct {
		name string
		data func(t *testing.T) []byte
		want Format
	}{
		{
			name: "docx package",
			data: func(t *testing.T) []byte {
				return zipWith(t, "[Content_Types].xml", "_rels/.rels", "word/document.xml")
			},
			want: DOCX,
		},
		{
			name: "zip without document part",
			data: func(t *testing.T) []byte {
				return zipWith(t, "[Content_Types].xml", "xl/workbook.xml")
			},
			want: Unknown,
		},
		{
			name: "document part without content types",
			data: func(t *testing.T) []byte { return zipWith(t, "word/document.xml") },
			want: Unknown,
		},
		{
			name: "html document",
			data: func(*testing.T) []byte {
				return []byte("<!DOCTYPE html>\n<html><head><title>T</title></head><body></body></html>")
			},
			want: HTML,
		},
		{
			name: "editor fragment",
			data: func(*testing.T) []byte { return []byte("<blockquote><p>q</p></blockquote>") },
			want: HTML,
		},
		{
			name: "plain text",
			data: func(*testing.T) []byte { return []byte("Hello, World! This is plain text.") },
			want: Unknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data(t)
			got, err := DetectFromReader(bytes.NewReader(data), int64(len(data)))
			if err != nil {
				t.Fatalf("DetectFromReader() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DetectFromReader() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDetectFromReader_CorruptZIP(t *testing.T) {
	data := append([]byte{0x50, 0x4B, 0x03, 0x04}, bytes.Repeat([]byte{0xFF}, 32)...)
	if _, err := DetectFromReader(bytes.NewReader(data), int64(len(data))); err == nil {
		t.Error("DetectFromReader() on corrupt archive expected error")
	}
}
