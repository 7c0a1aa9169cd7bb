package particles

import "log/slog"

// Binding keeps the field's bounds equal to the host surface size and
// reseeds the field whenever that size changes.
type Binding struct {
	field   *Field
	vp      Viewport
	resizes int
}

// Bind attaches field to a surface of the given size. The field is not
// seeded until the loop starts or the surface is resized.
func Bind(field *Field, width, height int) *Binding {
	return &Binding{
		field: field,
		vp:    Viewport{Width: float64(width), Height: float64(height)},
	}
}

// Viewport returns the current surface size.
func (b *Binding) Viewport() Viewport {
	return b.vp
}

// Resizes returns how many reseeds resizing has caused.
func (b *Binding) Resizes() int {
	return b.resizes
}

// Resize records a new surface size and reseeds the field. Existing
// particles are dropped, not rescaled. An unchanged size is ignored and
// reports false.
func (b *Binding) Resize(width, height int) bool {
	vp := Viewport{Width: float64(width), Height: float64(height)}
	if vp == b.vp {
		return false
	}
	b.vp = vp
	if vp.Empty() {
		return false
	}
	b.field.Initialize(vp)
	b.resizes++
	slog.Debug("viewport resized", "width", width, "height", height)
	return true
}
