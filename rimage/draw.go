// Package rimage renders plans to raster images.
package rimage

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"github.com/golang/geo/r2"
	"golang.org/x/image/font/gofont/goregular"
)

var font *truetype.Font

// init sets up the fonts we want to use.
func init() {
	var err error
	font, err = truetype.Parse(goregular.TTF)
	if err != nil {
		panic(err)
	}
}

// Font returns the font we use for drawing.
func Font() *truetype.Font {
	return font
}

// DrawString writes a string to the given context with its top left corner at p.
func DrawString(dc *gg.Context, text string, p r2.Point, c color.Color, size float64) {
	dc.SetFontFace(truetype.NewFace(Font(), &truetype.Options{Size: size}))
	dc.SetColor(c)
	dc.DrawStringWrapped(text, p.X, p.Y, 0, 0, float64(dc.Width()), 1, gg.AlignLeft)
}

// DrawSegment strokes a single line between two pixel positions.
func DrawSegment(dc *gg.Context, from, to r2.Point, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawLine(from.X, from.Y, to.X, to.Y)
	dc.Stroke()
}

// DrawRectangleEmpty draws the outline of the rectangle spanned by two pixel corners.
func DrawRectangleEmpty(dc *gg.Context, lo, hi r2.Point, c color.Color, width float64) {
	dc.SetColor(c)
	dc.SetLineWidth(width)
	dc.DrawRectangle(lo.X, lo.Y, hi.X-lo.X, hi.Y-lo.Y)
	dc.Stroke()
}
