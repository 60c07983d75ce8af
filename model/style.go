package model

import "math"

// Font size bounds in points.
const (
	MinFontSize = 8
	MaxFontSize = 96
)

// Style is the run-level style accumulated during a tree walk.
// The zero value is plain text with no explicit size.
type Style struct {
	Bold   bool
	Italic bool
	Size   int // points, 0 = unset
}

// WithBold returns a copy of s with bold ORed in.
func (s Style) WithBold(b bool) Style {
	s.Bold = s.Bold || b
	return s
}

// WithItalic returns a copy of s with italic ORed in.
func (s Style) WithItalic(i bool) Style {
	s.Italic = s.Italic || i
	return s
}

// WithSize returns a copy of s with the size replaced, unless size is 0.
func (s Style) WithSize(size int) Style {
	if size > 0 {
		s.Size = size
	}
	return s
}

// PixelsToPoints converts a CSS pixel size to whole points at 96 px/inch,
// clamped to [MinFontSize, MaxFontSize].
func PixelsToPoints(px float64) int {
	pt := int(math.Round(px * 72 / 96))
	if pt < MinFontSize {
		return MinFontSize
	}
	if pt > MaxFontSize {
		return MaxFontSize
	}
	return pt
}

// PointsToPixels converts points back to whole CSS pixels.
func PointsToPixels(pt int) int {
	return int(math.Round(float64(pt) * 96 / 72))
}
