// Package wordcount counts the words an editor user sees.
//
// Text is normalized first: no-break spaces become spaces, zero-width
// characters disappear, whitespace runs collapse and the result is
// NFC-composed. Words are then found with Unicode word segmentation
// (UAX #29); a segment counts when it holds at least one letter or digit,
// so punctuation and emoji do not.
package wordcount

import (
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/richdoc/htmldoc"
)

var invisible = strings.NewReplacer(
	"\u00a0", " ", // no-break space
	"\u200b", "", // zero width space
	"\u200c", "", // zero width non-joiner
	"\u200d", "", // zero width joiner
	"\ufeff", "", // byte order mark
)

// Normalize prepares text for counting.
func Normalize(text string) string {
	text = invisible.Replace(text)
	text = strings.Join(strings.Fields(text), " ")
	return norm.NFC.String(text)
}

// Count returns the number of words in text.
func Count(text string) int {
	text = Normalize(text)
	if text == "" {
		return 0
	}

	n := 0
	tokens := words.FromString(text)
	for tokens.Next() {
		if isWord(tokens.Value()) {
			n++
		}
	}
	return n
}

// CountHTML counts the words of an HTML fragment's visible text. Block
// boundaries and line breaks separate words; script-like content is
// ignored.
func CountHTML(fragment string) (int, error) {
	nodes, err := htmldoc.ParseString(nil, fragment)
	if err != nil {
		return 0, err
	}
	return Count(htmldoc.VisibleText(nodes)), nil
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
