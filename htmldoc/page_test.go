package htmldoc

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/cascadia"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
  <title> Quarterly Minutes </title>
  <meta name="Author" content="Ana Lima">
  <meta property="og:title" content="Minutes">
</head>
<body>
  <header><h1>Site name</h1></header>
  <nav><a href="/">Home</a></nav>
  <div class="breadcrumbs"><a href="/docs">Docs</a></div>
  <main>
    <h1>Minutes</h1>
    <p>Opened at nine.</p>
    <aside>Related links</aside>
  </main>
  <footer>Copyright</footer>
</body>
</html>`

func readSample(t *testing.T, mode ChromeMode) *Page {
	t.Helper()
	page, err := ReadPage(strings.NewReader(samplePage), mode)
	require.NoError(t, err)
	return page
}

func queryAll(t *testing.T, page *Page, selector string) []*html.Node {
	t.Helper()
	sel := cascadia.MustCompile(selector)
	var found []*html.Node
	for _, n := range page.Body {
		if sel.Match(n) {
			found = append(found, n)
		}
		found = append(found, cascadia.QueryAll(n, sel)...)
	}
	return found
}

func TestReadPage_Head(t *testing.T) {
	page := readSample(t, ChromeKeep)

	assert.Equal(t, "Quarterly Minutes", page.Title)
	assert.Equal(t, "Ana Lima", page.Meta["author"])
	assert.Equal(t, "Minutes", page.Meta["og:title"])

	meta := page.Metadata()
	assert.Equal(t, "Quarterly Minutes", meta.Title)
	assert.Equal(t, "Ana Lima", meta.Author)
}

func TestReadPage_ChromeModes(t *testing.T) {
	tests := []struct {
		name     string
		mode     ChromeMode
		excluded int
		absent   []string
		present  []string
	}{
		{
			name:    "keep",
			mode:    ChromeKeep,
			present: []string{"header", "nav", "div.breadcrumbs", "aside", "footer", "main h1"},
		},
		{
			name:     "semantic",
			mode:     ChromeSemantic,
			excluded: 4,
			absent:   []string{"header", "nav", "aside", "footer"},
			present:  []string{"div.breadcrumbs", "main h1", "main p"},
		},
		{
			name:     "standard",
			mode:     ChromeStandard,
			excluded: 5,
			absent:   []string{"header", "nav", "div.breadcrumbs", "aside", "footer"},
			present:  []string{"main h1", "main p"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := readSample(t, tt.mode)
			assert.Equal(t, tt.excluded, page.Excluded)
			for _, sel := range tt.absent {
				assert.Empty(t, queryAll(t, page, sel), "selector %q", sel)
			}
			for _, sel := range tt.present {
				assert.NotEmpty(t, queryAll(t, page, sel), "selector %q", sel)
			}
		})
	}
}

func TestReadPage_HTML(t *testing.T) {
	page := readSample(t, ChromeStandard)

	out, err := page.HTML()
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Minutes</h1>")
	assert.Contains(t, out, "<p>Opened at nine.</p>")
	assert.NotContains(t, out, "Copyright")
	assert.NotContains(t, out, "Home")
	assert.NotContains(t, out, "<body")
}

func TestChromeFilter_TopLevelOnly(t *testing.T) {
	const doc = `<html><body><div id="page">
<header>Banner</header>
<article><header><h2>Post title</h2></header><p>text</p>
<footer>posted today</footer></article>
<div role="contentinfo">legal</div>
</div></body></html>`

	page, err := ReadPage(strings.NewReader(doc), ChromeSemantic)
	require.NoError(t, err)

	out, err := page.HTML()
	require.NoError(t, err)
	assert.NotContains(t, out, "Banner")
	assert.NotContains(t, out, "legal")
	assert.Contains(t, out, "Post title")
	assert.Contains(t, out, "posted today")
	assert.Equal(t, 2, page.Excluded)
}

func TestChromeFilter_Roles(t *testing.T) {
	const doc = `<html><body>
<div role="navigation">menu</div>
<section><div role="complementary">extra</div><p>body</p></section>
<section><div role="banner">inner banner</div></section>
</body></html>`

	page, err := ReadPage(strings.NewReader(doc), ChromeSemantic)
	require.NoError(t, err)

	out, err := page.HTML()
	require.NoError(t, err)
	assert.NotContains(t, out, "menu")
	assert.NotContains(t, out, "extra")
	assert.Contains(t, out, "inner banner")
	assert.Contains(t, out, "body")
}

func TestChromePattern(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{"nav", true},
		{"main-nav", true},
		{"site-footer", true},
		{"sidebar left", true},
		{"Widget", true},
		{"canvas", false},
		{"navigator", false},
		{"content", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, chromePattern.MatchString(tt.value))
		})
	}
}

func TestIsDocument(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want bool
	}{
		{"doctype", "<!DOCTYPE html><html></html>", true},
		{"lowercase doctype", "  <!doctype html>\n<p>x</p>", true},
		{"html tag", "<html lang=\"en\"><body></body></html>", true},
		{"leading comment", "<!-- saved page -->\n<html>", true},
		{"head only", "<head><title>x</title></head>", true},
		{"fragment", "<p>hello</p>", false},
		{"html in text", "<p>&lt;html&gt;</p><html>", false},
		{"htmlish tag", "<htmlfoo>", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDocument(tt.in))
		})
	}
}

func TestOpenPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(path, []byte(samplePage), 0o644))

	page, err := OpenPage(path, ChromeStandard)
	require.NoError(t, err)
	assert.Equal(t, "Quarterly Minutes", page.Title)

	_, err = OpenPage(filepath.Join(t.TempDir(), "absent.html"), ChromeKeep)
	assert.Error(t, err)
}
