package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultBaseURL is the import service address used when none is configured.
const DefaultBaseURL = "http://127.0.0.1:8000"

const importPath = "/docx/import"

// maxErrorBody bounds how much of a failed response is kept in HTTPError.
const maxErrorBody = 4 << 10

// HTTPError is returned when the import service answers with a non-2xx status.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	msg := "HTTP " + strconv.Itoa(e.StatusCode)
	if e.Body != "" {
		msg += " - " + e.Body
	}
	return msg
}

// Client imports DOCX files through a remote HTTP service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient creates a Client for the service at baseURL. An empty baseURL
// selects DefaultBaseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Import posts the file as the multipart field "file" and decodes the JSON
// answer.
func (c *Client) Import(ctx context.Context, filename string, r io.Reader) (*Result, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("importer: building request: %w", err)
	}
	if _, err := io.Copy(fw, r); err != nil {
		return nil, fmt.Errorf("importer: reading %s: %w", filename, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("importer: building request: %w", err)
	}

	url := c.baseURL + importPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("importer: building request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("posting docx", "url", url, "file", filename, "bytes", body.Len())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("importer: posting %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, fmt.Errorf("importer: decoding response: %w", err)
	}

	c.logger.Debug("docx imported", "file", filename, "messages", len(res.Messages))
	return &res, nil
}
