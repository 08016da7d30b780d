package rangeslider

// labelRowOffset is how far below the track centre the label sits.
const labelRowOffset = 1

// Handle is one of the two draggable markers. Values returned by Slider.In
// and Slider.Out are copies; mutating them has no effect on the slider.
type Handle struct {
	kind  Selection
	value float64
	label string

	// filled in by Slider.glyphed
	position float64
	trackY   float64
	radius   float64
}

// Kind reports whether this is the in or the out handle.
func (h Handle) Kind() Selection { return h.kind }

// Value is the handle's domain value.
func (h Handle) Value() float64 { return h.value }

// Position is the handle's track coordinate.
func (h Handle) Position() float64 { return h.position }

// Label is the formatted value as last rendered.
func (h Handle) Label() string { return h.label }

// Glyph is the presentation of a handle, derived from its value and the
// current formatter.
type Glyph struct {
	Center  Point
	Outer   Rect
	Inner   Rect
	Label   string
	LabelAt Point
}

// Glyph computes the outer ring, inner disc and label placement.
func (h Handle) Glyph() Glyph {
	c := Point{X: h.position, Y: h.trackY}
	inner := h.radius / 2
	return Glyph{
		Center:  c,
		Outer:   Rect{X0: c.X - h.radius, Y0: c.Y - h.radius, X1: c.X + h.radius, Y1: c.Y + h.radius},
		Inner:   Rect{X0: c.X - inner, Y0: c.Y - inner, X1: c.X + inner, Y1: c.Y + inner},
		Label:   h.label,
		LabelAt: Point{X: c.X, Y: c.Y + labelRowOffset},
	}
}
