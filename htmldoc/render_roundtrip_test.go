package htmldoc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/richdoc/convert"
	"github.com/tsawler/richdoc/htmldoc"
	"github.com/tsawler/richdoc/model"
)

func TestRender_ConvertRoundTrip(t *testing.T) {
	in := []model.Paragraph{
		{Heading: 1, Inlines: []model.Inline{&model.Run{Text: "Title"}}},
		{Align: model.AlignJustify, Inlines: []model.Inline{
			&model.Run{Text: "plain "},
			&model.Run{Text: "strong", Style: model.Style{Bold: true, Size: 18}},
			&model.Hyperlink{Text: "site", URL: "https://example.com", Size: 12},
		}},
		{List: model.Bulleted(0), Inlines: []model.Inline{&model.Run{Text: "one"}}},
		{List: model.Bulleted(1), Inlines: []model.Inline{&model.Run{Text: "two"}}},
		{List: model.Numbered(0), Heading: 3, Inlines: []model.Inline{&model.Run{Text: "three"}}},
		{IndentLeft: 1440, Inlines: []model.Inline{&model.Run{Text: "quoted"}}},
	}

	out, err := htmldoc.Render(&model.Document{Paragraphs: in})
	require.NoError(t, err)

	got, err := convert.Paragraphs(out)
	require.NoError(t, err)
	require.Len(t, got, len(in), "html: %s", out)

	for i := range in {
		assert.Equal(t, in[i].Text(), got[i].Text(), "paragraph %d", i)
		assert.Equal(t, in[i].Heading, got[i].Heading, "paragraph %d", i)
		assert.Equal(t, in[i].List, got[i].List, "paragraph %d", i)
		assert.Equal(t, in[i].Align, got[i].Align, "paragraph %d", i)
		assert.Equal(t, in[i].IndentLeft, got[i].IndentLeft, "paragraph %d", i)
	}
	assert.Equal(t, in[1].Inlines, got[1].Inlines)
}
