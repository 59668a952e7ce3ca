// Package surface defines the drawing capability the dial renderer draws on.
//
// The interface is shaped after cairo: a current path built with MoveTo,
// LineTo, Arc and Rectangle is consumed by Stroke or Fill, and a graphics
// state (colour, line width, cap, font, transform) is pushed with Save and
// popped with Restore. Coordinates are points (1/72 in); angles are radians
// measured from +x towards +y, with y growing downwards.
package surface

import "seehuhn.de/go/geom/matrix"

// LineCap 线帽样式。
type LineCap int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

// FontSlant 字体倾斜。
type FontSlant int

const (
	SlantNormal FontSlant = iota
	SlantItalic
	SlantOblique
)

// FontWeight 字重。
type FontWeight int

const (
	WeightNormal FontWeight = iota
	WeightBold
)

// TextExtents 是文本在当前字体与字号下的测量结果（pt）。
type TextExtents struct {
	Width  float64
	Height float64
}

// Surface is the set of drawing operations consumed by the face and page renderers.
type Surface interface {
	SetSourceRGBA(r, g, b, a float64)
	SetLineWidth(w float64)
	SetLineCap(c LineCap)

	MoveTo(x, y float64)
	LineTo(x, y float64)
	// Arc adds a circular arc from angle1 to angle2 (increasing angle). If the
	// path has a current point, a line joins it to the start of the arc.
	Arc(xc, yc, radius, angle1, angle2 float64)
	Rectangle(x, y, w, h float64)
	Stroke()
	Fill()

	// SelectFontFace fails when the named font cannot be resolved.
	SelectFontFace(family string, slant FontSlant, weight FontWeight) error
	SetFontSize(size float64)
	TextExtents(s string) TextExtents
	// ShowText draws s with its baseline origin at the current point and
	// clears the current path.
	ShowText(s string)

	Save()
	Restore()
	Translate(tx, ty float64)
	Rotate(angle float64)
	// Transform composes m onto the current transform; m is applied first.
	Transform(m matrix.Matrix)

	// Err reports the first backend error, if any.
	Err() error
}
