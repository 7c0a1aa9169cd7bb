package render

import (
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Noise parameters
const (
	noiseAlpha = 2.0
	noiseBeta  = 2.0
	noiseOcts  = 3
)

// Backdrop is a slowly drifting Perlin haze painted in square cells.
type Backdrop struct {
	noise *perlin.Perlin
	cell  int
	scale float64 // Noise units per pixel
	speed float64 // Noise units per frame along the time axis
	alpha float64 // Peak opacity
	color color.NRGBA
	t     float64
}

// NewBackdrop creates a haze with the given cell size in pixels.
func NewBackdrop(seed int64, cell int, scale, speed, alpha float64, c color.NRGBA) *Backdrop {
	return &Backdrop{
		noise: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOcts, seed),
		cell:  cell,
		scale: scale,
		speed: speed,
		alpha: alpha,
		color: c,
	}
}

// Intensity returns the haze strength in [0, 1] at pixel (x, y) for the
// current phase.
func (b *Backdrop) Intensity(x, y float64) float64 {
	n := b.noise.Noise3D(x*b.scale, y*b.scale, b.t)
	v := (n + 1) / 2
	return math.Max(0, math.Min(1, v))
}

// Advance moves the haze one frame along its time axis.
func (b *Backdrop) Advance() {
	b.t += b.speed
}

// Paint draws one frame of haze over dst and advances the phase.
func (b *Backdrop) Paint(dst *ebiten.Image) {
	bounds := dst.Bounds()
	size := float32(b.cell)
	for y := bounds.Min.Y; y < bounds.Max.Y; y += b.cell {
		for x := bounds.Min.X; x < bounds.Max.X; x += b.cell {
			c := b.color
			c.A = uint8(b.alpha * b.Intensity(float64(x), float64(y)) * 255)
			if c.A == 0 {
				continue
			}
			vector.DrawFilledRect(dst, float32(x), float32(y), size, size, c, false)
		}
	}
	b.Advance()
}
