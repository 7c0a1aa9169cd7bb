// Package particles implements the proximity-linked particle field drawn
// behind the risk monitor: a fixed population of drifting points, the edges
// between nearby points, and the frame loop that redraws both.
package particles

import "image/color"

// Surface is the 2-D raster the field paints on.
type Surface interface {
	// Clear erases the whole surface.
	Clear()
	// FillCircle paints a filled circle of radius r centred on (x, y).
	FillCircle(x, y, r float64, c color.Color)
	// StrokeLine paints a straight line of the given width.
	StrokeLine(x0, y0, x1, y1, width float64, c color.Color)
}

// Discard is a Surface that draws nothing. Headless runs use it.
var Discard Surface = discard{}

type discard struct{}

func (discard) Clear() {}
func (discard) FillCircle(x, y, r float64, c color.Color) {}
func (discard) StrokeLine(x0, y0, x1, y1, w float64, c color.Color) {}
