package docx

import (
	"strconv"

	"github.com/tsawler/richdoc/model"
)

// NumberingResolver resolves numbering definitions from numbering.xml.
type NumberingResolver struct {
	abstractNums map[string]*abstractNumXML // abstractNumId -> definition
	numMappings  map[string]string          // numId -> abstractNumId
}

// NewNumberingResolver creates a resolver from parsed numbering.xml.
func NewNumberingResolver(numbering *numberingXML) *NumberingResolver {
	nr := &NumberingResolver{
		abstractNums: make(map[string]*abstractNumXML),
		numMappings:  make(map[string]string),
	}

	if numbering == nil {
		return nr
	}

	for i := range numbering.AbstractNums {
		an := &numbering.AbstractNums[i]
		nr.abstractNums[an.AbstractNumID] = an
	}

	for _, num := range numbering.Nums {
		nr.numMappings[num.NumID] = num.AbstractNumID.Val
	}

	return nr
}

// IsListParagraph reports whether numbering properties make a paragraph a
// list item. numId 0 explicitly removes numbering.
func (nr *NumberingResolver) IsListParagraph(numID string) bool {
	return numID != "" && numID != "0"
}

// Resolve returns the list classification for a numId and level. Unknown
// definitions and bullet formats are bulleted; every other numFmt
// (decimal, letters, roman) is numbered.
func (nr *NumberingResolver) Resolve(numID string, level int) model.ListInfo {
	info := model.ListInfo{Kind: model.ListNone, Level: level}
	if !nr.IsListParagraph(numID) {
		return info
	}
	info.Kind = model.ListBulleted

	abstractID, ok := nr.numMappings[numID]
	if !ok {
		return info
	}
	abstractNum, ok := nr.abstractNums[abstractID]
	if !ok {
		return info
	}

	levelStr := strconv.Itoa(level)
	for _, lvl := range abstractNum.Levels {
		if lvl.ILvl != levelStr {
			continue
		}
		switch lvl.NumFmt.Val {
		case "bullet", "none", "":
			info.Kind = model.ListBulleted
		default:
			info.Kind = model.ListNumbered
		}
		break
	}

	return info
}
