package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/richdoc/docx"
	"github.com/tsawler/richdoc/model"
	"github.com/tsawler/richdoc/sanitize"
)

func strPtr(s string) *string { return &s }

func TestApply(t *testing.T) {
	current := model.Metadata{Title: "Draft", Author: "Ana"}

	tests := []struct {
		name     string
		res      *Result
		wantHTML string
		wantMeta model.Metadata
	}{
		{
			name:     "nil result",
			res:      nil,
			wantHTML: sanitize.EmptyDocument,
			wantMeta: current,
		},
		{
			name:     "empty html",
			res:      &Result{HTML: "  "},
			wantHTML: sanitize.EmptyDocument,
			wantMeta: current,
		},
		{
			name:     "html is sanitized",
			res:      &Result{HTML: `<p onclick="x()">Hi<script>alert(1)</script></p>`},
			wantHTML: "<p>Hi</p>",
			wantMeta: current,
		},
		{
			name: "valid fields merge",
			res: &Result{
				HTML:     "<p>x</p>",
				Metadata: &model.PartialMetadata{Title: strPtr("Report")},
			},
			wantHTML: "<p>x</p>",
			wantMeta: model.Metadata{Title: "Report", Author: "Ana"},
		},
		{
			name: "blank fields are ignored",
			res: &Result{
				HTML:     "<p>x</p>",
				Metadata: &model.PartialMetadata{Title: strPtr(" "), Author: strPtr("Bo")},
			},
			wantHTML: "<p>x</p>",
			wantMeta: model.Metadata{Title: "Draft", Author: "Bo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			html, meta := Apply(tt.res, current, nil)
			assert.Equal(t, tt.wantHTML, html)
			assert.Equal(t, tt.wantMeta, meta)
		})
	}
}

func TestApply_CustomSanitizer(t *testing.T) {
	html, _ := Apply(&Result{HTML: `<a href="javascript:x()">t</a>`}, model.Metadata{}, sanitize.New())
	assert.Equal(t, "<span>t</span>", html)
}

func sampleDOCX(t *testing.T) []byte {
	t.Helper()
	doc := model.NewDocument(model.Metadata{Title: "Minutes", Author: "Ana"}, []model.Paragraph{
		{Heading: 1, Inlines: []model.Inline{&model.Run{Text: "Agenda"}}},
		{List: model.Bulleted(0), Inlines: []model.Inline{&model.Run{Text: "one"}}},
		{Inlines: []model.Inline{&model.Hyperlink{Text: "site", URL: "https://example.com/"}}},
	})
	data, err := docx.Bytes(doc)
	require.NoError(t, err)
	return data
}

func TestLocal_Import(t *testing.T) {
	res, err := NewLocal(nil).Import(context.Background(), "minutes.docx", bytes.NewReader(sampleDOCX(t)))
	require.NoError(t, err)

	assert.Equal(t, `<h1>Agenda</h1><ul><li>one</li></ul><p><a href="https://example.com/">site</a></p>`, res.HTML)
	require.NotNil(t, res.Metadata)
	assert.Equal(t, "Minutes", *res.Metadata.Title)
	assert.Equal(t, "Ana", *res.Metadata.Author)
	assert.Equal(t, []string{"created by " + docx.Application}, res.Messages)

	html, meta := Apply(res, model.Metadata{Title: "old", Author: "old"}, nil)
	assert.Contains(t, html, `<a href="https://example.com/" rel="noopener noreferrer" target="_blank">site</a>`)
	assert.Equal(t, model.Metadata{Title: "Minutes", Author: "Ana"}, meta)
}

func TestLocal_ImportInvalid(t *testing.T) {
	_, err := NewLocal(nil).Import(context.Background(), "bad.docx", strings.NewReader("not a zip"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.docx")
}

func TestLocal_ImportCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewLocal(nil).Import(ctx, "x.docx", bytes.NewReader(sampleDOCX(t)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPartial(t *testing.T) {
	assert.Nil(t, partial(model.Metadata{}))

	p := partial(model.Metadata{Author: "Ana"})
	require.NotNil(t, p)
	assert.Nil(t, p.Title)
	assert.Equal(t, "Ana", *p.Author)
}

func TestClient_Import(t *testing.T) {
	payload := []byte("PK fake docx")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/docx/import", r.URL.Path)

		f, hdr, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		defer f.Close()
		got, _ := io.ReadAll(f)
		assert.Equal(t, payload, got)
		assert.Equal(t, "notes.docx", hdr.Filename)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"html":     "<p>Imported</p>",
			"metadata": map[string]string{"title": "Notes"},
			"messages": []string{"Unsupported element: table"},
		})
	}))
	defer server.Close()

	c := NewClient(server.URL+"/", WithHTTPClient(server.Client()))
	res, err := c.Import(context.Background(), "/tmp/notes.docx", bytes.NewReader(payload))
	require.NoError(t, err)

	assert.Equal(t, "<p>Imported</p>", res.HTML)
	require.NotNil(t, res.Metadata)
	assert.Equal(t, "Notes", *res.Metadata.Title)
	assert.Nil(t, res.Metadata.Author)
	assert.Equal(t, []string{"Unsupported element: table"}, res.Messages)
}

func TestClient_HTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"with body", http.StatusUnprocessableEntity, "bad file\n", "HTTP 422 - bad file"},
		{"empty body", http.StatusInternalServerError, "", "HTTP 500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			_, err := NewClient(server.URL).Import(context.Background(), "a.docx", strings.NewReader("x"))
			require.Error(t, err)

			var httpErr *HTTPError
			require.True(t, errors.As(err, &httpErr))
			assert.Equal(t, tt.status, httpErr.StatusCode)
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestClient_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, "<html>")
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Import(context.Background(), "a.docx", strings.NewReader("x"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding response")
}

func TestNewClient_DefaultBaseURL(t *testing.T) {
	assert.Equal(t, DefaultBaseURL, NewClient("").baseURL)
}

func TestImplementsImporter(t *testing.T) {
	var _ Importer = (*Local)(nil)
	var _ Importer = (*Client)(nil)
}
