// Package rangeslider implements a two-handle range selector on a
// horizontal track.
//
// The slider knows nothing about a particular UI toolkit. A host forwards
// pointer events (OnPointerMove, OnPointerPress, OnPointerDrag,
// OnPointerRelease) in widget-local coordinates and polls InAndOut when it
// needs the selection.
package rangeslider

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidDomain is returned when min/max are not finite or max <= min.
	ErrInvalidDomain = errors.New("invalid slider domain")
	// ErrInvalidGeometry is returned when the track would have no usable span.
	ErrInvalidGeometry = errors.New("invalid slider geometry")
)

const (
	DefaultWidth        = 60
	DefaultHeight       = 3
	DefaultHandleRadius = 2
)

// Selection identifies which handle a pointer interaction applies to.
type Selection int

const (
	SelectNone Selection = iota
	SelectIn
	SelectOut
	// SelectBoth means the pointer is over both handles' boxes. The drag
	// target is resolved on the first drag step.
	SelectBoth
)

func (s Selection) String() string {
	switch s {
	case SelectIn:
		return "in"
	case SelectOut:
		return "out"
	case SelectBoth:
		return "both"
	default:
		return "none"
	}
}

// Slider is the range selection widget. It is not safe for concurrent use;
// the host's event loop is expected to deliver events one at a time.
type Slider struct {
	min, max float64
	geom     geometry
	display  Display
	styles   Styles

	in, out Handle

	selected Selection
	pressed  bool
}

// Option configures a Slider at construction.
type Option func(*Slider)

// WithSize sets the widget size in cells (pixels).
func WithSize(width, height int) Option {
	return func(s *Slider) {
		s.geom.width = float64(width)
		s.geom.height = float64(height)
	}
}

// WithHandleRadius sets the handle radius, which is also the margin kept
// between the track ends and the widget edges.
func WithHandleRadius(r float64) Option {
	return func(s *Slider) { s.geom.radius = r }
}

// WithDisplay sets the label formatter.
func WithDisplay(d Display) Option {
	return func(s *Slider) {
		if d != nil {
			s.display = d
		}
	}
}

// WithStyles overrides the lipgloss styles used by View.
func WithStyles(st Styles) Option {
	return func(s *Slider) { s.styles = st }
}

// New builds a slider over [min, max] with the in handle at min and the out
// handle at max.
func New(min, max float64, opts ...Option) (*Slider, error) {
	s := &Slider{
		geom: geometry{
			width:  DefaultWidth,
			height: DefaultHeight,
			radius: DefaultHandleRadius,
		},
		display: FixedDisplay,
		styles:  DefaultStyles(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := validateDomain(min, max); err != nil {
		return nil, err
	}
	if err := s.geom.validate(); err != nil {
		return nil, err
	}
	s.geom.layout()
	s.min, s.max = min, max
	s.in = Handle{kind: SelectIn}
	s.out = Handle{kind: SelectOut}
	s.reset()
	return s, nil
}

func validateDomain(min, max float64) error {
	if math.IsNaN(min) || math.IsInf(min, 0) || math.IsNaN(max) || math.IsInf(max, 0) {
		return fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidDomain, min, max)
	}
	if max <= min {
		return fmt.Errorf("%w: max %v must be greater than min %v", ErrInvalidDomain, max, min)
	}
	return nil
}

// reset puts both handles on the domain extremes and drops any selection.
func (s *Slider) reset() {
	s.in.value = s.min
	s.out.value = s.max
	s.selected = SelectNone
	s.pressed = false
	s.relabel()
}

func (s *Slider) relabel() {
	s.in.label = s.display(s.in.value)
	s.out.label = s.display(s.out.value)
}

// Bounds returns the current domain.
func (s *Slider) Bounds() (min, max float64) { return s.min, s.max }

// Width returns the widget width in cells.
func (s *Slider) Width() int { return int(s.geom.width) }

// Height returns the widget height in cells.
func (s *Slider) Height() int { return int(s.geom.height) }

// Track returns the left and right ends of the track.
func (s *Slider) Track() (left, right float64) { return s.geom.left, s.geom.right }

// Position maps a domain value to a track coordinate.
func (s *Slider) Position(v float64) float64 {
	g := s.geom
	return g.left + (g.right-g.left)*(v-s.min)/(s.max-s.min)
}

// Value maps a track coordinate to a domain value.
func (s *Slider) Value(p float64) float64 {
	g := s.geom
	return s.min + (s.max-s.min)*(p-g.left)/(g.right-g.left)
}

// In returns the in handle.
func (s *Slider) In() Handle { return s.glyphed(s.in) }

// Out returns the out handle.
func (s *Slider) Out() Handle { return s.glyphed(s.out) }

func (s *Slider) glyphed(h Handle) Handle {
	h.position = s.Position(h.value)
	h.trackY = s.geom.y
	h.radius = s.geom.radius
	return h
}

// InAndOut returns a snapshot of the selected range.
func (s *Slider) InAndOut() (in, out float64) {
	return s.in.value, s.out.value
}

// Selected returns the handle a drag would currently apply to.
func (s *Slider) Selected() Selection { return s.selected }

// Hovering reports whether the pointer is over a handle, i.e. whether the
// host should show a grab cursor.
func (s *Slider) Hovering() bool { return s.selected != SelectNone }

// Dragging reports whether an explicit press is holding the selection.
func (s *Slider) Dragging() bool { return s.pressed && s.selected != SelectNone }

// HitTest classifies a pointer coordinate against both handle boxes.
func (s *Slider) HitTest(x, y float64) Selection {
	onIn := s.geom.box(s.Position(s.in.value)).contains(x, y)
	onOut := s.geom.box(s.Position(s.out.value)).contains(x, y)
	switch {
	case onIn && onOut:
		return SelectBoth
	case onIn:
		return SelectIn
	case onOut:
		return SelectOut
	default:
		return SelectNone
	}
}

// OnPointerMove handles pointer motion with no button held. The hover
// candidate is re-evaluated on every call and becomes the drag target if a
// drag starts without an explicit press.
func (s *Slider) OnPointerMove(x, y float64) Selection {
	s.pressed = false
	s.selected = s.HitTest(x, y)
	return s.selected
}

// OnPointerPress hit-tests once and holds the result until release.
func (s *Slider) OnPointerPress(x, y float64) Selection {
	s.selected = s.HitTest(x, y)
	s.pressed = true
	return s.selected
}

// OnPointerRelease ends a drag. The coordinate is re-evaluated as hover.
func (s *Slider) OnPointerRelease(x, y float64) Selection {
	return s.OnPointerMove(x, y)
}

// OnPointerDrag applies one drag step at x. It reports whether a handle was
// targeted; with no selection the event is ignored.
func (s *Slider) OnPointerDrag(x, _ float64) bool {
	if s.selected == SelectNone {
		return false
	}
	x = clamp(x, s.geom.left, s.geom.right)
	if s.selected == SelectBoth {
		// Overlapping handles: follow the direction the pointer pulls.
		if x > s.Position(s.out.value) {
			s.selected = SelectOut
		} else {
			s.selected = SelectIn
		}
	}
	switch s.selected {
	case SelectIn:
		if x >= s.Position(s.out.value) {
			s.in.value = s.out.value
		} else {
			s.in.value = s.valueAt(x)
		}
		s.in.label = s.display(s.in.value)
	case SelectOut:
		if x <= s.Position(s.in.value) {
			s.out.value = s.in.value
		} else {
			s.out.value = s.valueAt(x)
		}
		s.out.label = s.display(s.out.value)
	}
	return true
}

// valueAt maps x to a value, absorbing rounding at the track ends.
func (s *Slider) valueAt(x float64) float64 {
	return clamp(s.Value(x), s.min, s.max)
}

// ChangeMinMax rebinds the domain. Old values carry no meaning in a new
// domain, so both handles are reset to the new extremes.
func (s *Slider) ChangeMinMax(min, max float64) error {
	if err := validateDomain(min, max); err != nil {
		return err
	}
	s.min, s.max = min, max
	s.reset()
	return nil
}

// ChangeDisplay swaps the label formatter and re-renders both labels.
// A nil display restores FixedDisplay.
func (s *Slider) ChangeDisplay(d Display) {
	if d == nil {
		d = FixedDisplay
	}
	s.display = d
	s.relabel()
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
