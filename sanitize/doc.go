// Package sanitize restricts freeform rich-text markup to the closed set of
// tags and attributes the document converter understands.
//
// # Whitelist
//
// Elements: p, h1, h2, h3, ul, ol, li, b, strong, i, em, a, br, span.
//
// Attributes:
//   - a: href (absolute http or https URLs only, kept verbatim apart from
//     surrounding whitespace), plus a forced
//     rel="noopener noreferrer" and target="_blank"
//   - li: data-heading, only when its value is "1", "2" or "3"
//   - span: class, only when its value is exactly "li-text"
//
// Everything else is dropped. The li/span extensions encode a list item that
// renders as a heading, which the output format cannot express natively.
//
// # Degradation
//
// Sanitize never fails. Elements outside the whitelist are unwrapped so
// their content survives (<div>, <table> or <font> simply disappear around
// their text). Anchors with any other scheme become a plain <span> holding
// the anchor's text. Script-like elements (<script>, <style>, <template>
// and friends) are dropped together with their content.
//
// The output is never empty: when nothing survives, the result is a single
// paragraph holding a line break, "<p><br/></p>".
//
// # Purity
//
// The sanitizer builds a new node tree rather than editing the parsed one,
// and the rendered result passes through a bluemonday policy that mirrors
// the whitelist. Sanitize is idempotent:
//
//	sanitize.Sanitize(sanitize.Sanitize(x)) == sanitize.Sanitize(x)
//
// A Sanitizer is safe for concurrent use.
package sanitize
