// Package render draws the particle field onto Ebitengine images.
package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Screen adapts an *ebiten.Image to the particles.Surface contract.
type Screen struct {
	img        *ebiten.Image
	background color.Color
	backdrop   *Backdrop
}

// NewScreen wraps img. Clear fills it with background and, when backdrop is
// non-nil, paints the noise haze over it.
func NewScreen(img *ebiten.Image, background color.Color, backdrop *Backdrop) *Screen {
	return &Screen{img: img, background: background, backdrop: backdrop}
}

// Clear implements particles.Surface.
func (s *Screen) Clear() {
	s.img.Fill(s.background)
	if s.backdrop != nil {
		s.backdrop.Paint(s.img)
	}
}

// FillCircle implements particles.Surface.
func (s *Screen) FillCircle(x, y, r float64, c color.Color) {
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), c, true)
}

// StrokeLine implements particles.Surface.
func (s *Screen) StrokeLine(x0, y0, x1, y1, width float64, c color.Color) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c, true)
}
