package docx

import (
	"strconv"
	"strings"

	"github.com/tsawler/richdoc/model"
)

// ResolvedStyle contains the resolved properties of a style definition,
// merged along its basedOn chain.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table

	// Heading info
	IsHeading    bool
	HeadingLevel int // 1-9, 0 if not a heading
	OutlineLevel int // 0-8, -1 if no style in the chain sets one

	// Paragraph properties
	Alignment  model.Alignment
	IndentLeft int // twips

	// Run properties. Size is 0 unless some style in the chain sets it.
	Bold   bool
	Italic bool
	Size   int // points
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles   map[string]*styleDefXML
	resolved map[string]*ResolvedStyle
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:   make(map[string]*styleDefXML),
		resolved: make(map[string]*ResolvedStyle),
	}

	if styles == nil {
		return sr
	}

	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
	}

	return sr
}

// Resolve returns the resolved style for the given style ID. Unknown IDs
// still resolve Word's built-in heading names.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		return &ResolvedStyle{OutlineLevel: -1}
	}

	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	resolved := &ResolvedStyle{ID: styleID, OutlineLevel: -1}

	styleDef, ok := sr.styles[styleID]
	if !ok {
		resolved.IsHeading, resolved.HeadingLevel = detectBuiltInHeading(styleID)
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Name = styleDef.Name.Val
	resolved.Type = styleDef.Type

	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			applyStyleDef(resolved, def)
		}
	}

	resolved.IsHeading, resolved.HeadingLevel = detectHeading(styleDef, resolved)

	sr.resolved[styleID] = resolved
	return resolved
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...)

		def, ok := sr.styles[current]
		if !ok {
			break
		}
		current = def.BasedOn.Val
	}

	return chain
}

// applyStyleDef applies a style definition's explicit properties.
func applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.PPr
	if ppr.Justification.Val != "" {
		resolved.Alignment = parseJustification(ppr.Justification.Val)
	}
	if left := ppr.Indent.left(); left != "" {
		resolved.IndentLeft = parseTwips(left)
	}
	if ppr.OutlineLvl.Val != "" {
		resolved.OutlineLevel = parseOutlineLevel(ppr.OutlineLvl.Val)
	}

	rpr := def.RPr
	if on, set := rpr.Bold.isOn(); set {
		resolved.Bold = on
	}
	if on, set := rpr.Italic.isOn(); set {
		resolved.Italic = on
	}
	if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
		resolved.Size = size
	}
}

// detectHeading determines if a paragraph style represents a heading.
func detectHeading(def *styleDefXML, resolved *ResolvedStyle) (bool, int) {
	if isHeading, level := detectBuiltInHeading(def.StyleID); isHeading {
		return true, level
	}

	if def.Type != "" && def.Type != "paragraph" {
		return false, 0
	}

	// Style names like "heading 2"
	name := strings.ToLower(def.Name.Val)
	if strings.HasPrefix(name, "heading") {
		for i := 1; i <= 9; i++ {
			if strings.Contains(name, strconv.Itoa(i)) {
				return true, i
			}
		}
		return true, 1
	}

	if resolved.OutlineLevel >= 0 {
		return true, resolved.OutlineLevel + 1
	}

	// Large bold custom styles in documents without proper heading styles
	if resolved.Bold && resolved.Size >= 14 {
		return true, estimateHeadingLevel(resolved.Size)
	}

	return false, 0
}

var builtInHeadings = map[string]int{
	"heading1": 1, "heading2": 2, "heading3": 3,
	"heading4": 4, "heading5": 5, "heading6": 6,
	"heading7": 7, "heading8": 8, "heading9": 9,
	"title": 1, "subtitle": 2,
}

// detectBuiltInHeading checks for Word's built-in heading style IDs.
func detectBuiltInHeading(styleID string) (bool, int) {
	if level, ok := builtInHeadings[strings.ToLower(styleID)]; ok {
		return true, level
	}
	return false, 0
}

// estimateHeadingLevel estimates heading level from font size.
func estimateHeadingLevel(size int) int {
	switch {
	case size >= 24:
		return 1
	case size >= 18:
		return 2
	default:
		return 3
	}
}

// ResolveRun computes a run's style from its character style (rStyle) and
// direct formatting. Paragraph style formatting is not inherited, so heading
// text reads back as plain runs.
func (sr *StyleResolver) ResolveRun(props runPropsXML) model.Style {
	var st model.Style

	if props.Style.Val != "" {
		cs := sr.Resolve(props.Style.Val)
		st = model.Style{Bold: cs.Bold, Italic: cs.Italic, Size: cs.Size}
	}

	if on, set := props.Bold.isOn(); set {
		st.Bold = on
	}
	if on, set := props.Italic.isOn(); set {
		st.Italic = on
	}
	if size := parseHalfPoints(props.FontSize.Val); size > 0 {
		st.Size = size
	}
	return st
}

// left returns the left indent, preferring the logical "start" attribute.
func (ind indentXML) left() string {
	if ind.Start != "" {
		return ind.Start
	}
	return ind.Left
}

// parseJustification maps a w:jc value to an Alignment.
func parseJustification(v string) model.Alignment {
	switch v {
	case "left", "start":
		return model.AlignStart
	case "center":
		return model.AlignCenter
	case "right", "end":
		return model.AlignEnd
	case "both", "distribute":
		return model.AlignJustify
	default:
		return model.AlignNone
	}
}

// parseHalfPoints parses a size in half-points to whole points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) int {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || val <= 0 {
		return 0
	}
	return (val + 1) / 2
}

// parseTwips parses a length in twips. Invalid values yield 0.
func parseTwips(s string) int {
	val, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return val
}

// parseOutlineLevel parses an outline level string, returning -1 when it is
// not a body heading level (0-8).
func parseOutlineLevel(s string) int {
	level, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || level < 0 || level > 8 {
		return -1
	}
	return level
}
