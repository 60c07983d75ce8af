// Package convert turns sanitized rich-text HTML into the paragraph sequence
// of a model.Document.
//
// The converter walks the node tree recursively. Block elements dispatch on a
// closed set of kinds:
//
//   - h1, h2, h3: one heading paragraph
//   - blockquote: adds 720 twips of left indent to every descendant paragraph
//   - ul, ol: one list paragraph per direct <li>, nested lists recurse and get
//     their level from tree depth
//   - p, div and anything else: one plain paragraph
//
// Inside a block, inline content is flattened into runs while a model.Style
// value is carried down the tree: <b>/<strong> turn bold on, <i>/<em> turn
// italic on, and an inline "font-size: Npx" sets the point size for
// descendants. Anchors with an absolute http(s) href become hyperlinks;
// anything else degrades to a plain run.
//
// Input is expected to satisfy the sanitize package's whitelist. The
// converter never fails on such input; it only reports errors from the
// injected HTML parser.
package convert
