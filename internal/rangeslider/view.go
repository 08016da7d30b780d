package rangeslider

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the lipgloss styles used by View.
type Styles struct {
	Track      lipgloss.Style
	Outer      lipgloss.Style
	OuterHover lipgloss.Style
	Inner      lipgloss.Style
	Label      lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Track:      lipgloss.NewStyle().Foreground(lipgloss.Color("#476b6b")),
		Outer:      lipgloss.NewStyle().Foreground(lipgloss.Color("#c2d6d6")),
		OuterHover: lipgloss.NewStyle().Foreground(lipgloss.Color("#e8f0f0")).Bold(true),
		Inner:      lipgloss.NewStyle().Foreground(lipgloss.Color("#5c8a8a")),
		Label:      lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

type paint int

const (
	paintBlank paint = iota
	paintTrack
	paintOuter
	paintOuterHover
	paintInner
	paintLabel
)

type cell struct {
	r rune
	p paint
}

type canvas struct {
	w, h  int
	cells [][]cell
}

func newCanvas(w, h int) *canvas {
	c := &canvas{w: w, h: h, cells: make([][]cell, h)}
	for i := range c.cells {
		row := make([]cell, w)
		for j := range row {
			row[j] = cell{r: ' '}
		}
		c.cells[i] = row
	}
	return c
}

func (c *canvas) set(x, y int, r rune, p paint) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.cells[y][x] = cell{r: r, p: p}
}

func (c *canvas) text(x, y int, s string, p paint) {
	for i, r := range []rune(s) {
		c.set(x+i, y, r, p)
	}
}

func (c *canvas) render(st Styles) string {
	style := func(p paint) *lipgloss.Style {
		switch p {
		case paintTrack:
			return &st.Track
		case paintOuter:
			return &st.Outer
		case paintOuterHover:
			return &st.OuterHover
		case paintInner:
			return &st.Inner
		case paintLabel:
			return &st.Label
		}
		return nil
	}
	lines := make([]string, 0, c.h)
	for _, row := range c.cells {
		var b strings.Builder
		for i := 0; i < len(row); {
			j := i
			var run strings.Builder
			for j < len(row) && row[j].p == row[i].p {
				run.WriteRune(row[j].r)
				j++
			}
			if s := style(row[i].p); s != nil {
				b.WriteString(s.Render(run.String()))
			} else {
				b.WriteString(run.String())
			}
			i = j
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}

// View renders the track, both handles and their labels.
func (s *Slider) View() string {
	w, h := s.Width(), s.Height()
	c := newCanvas(w, h)
	row := clampInt(int(s.geom.y), 0, h-1)

	for x := round(s.geom.left); x <= round(s.geom.right); x++ {
		c.set(x, row, '━', paintTrack)
	}

	in, out := s.In().Glyph(), s.Out().Glyph()
	s.drawHandle(c, in, s.selected == SelectIn || s.selected == SelectBoth)
	s.drawHandle(c, out, s.selected == SelectOut || s.selected == SelectBoth)

	labelRow := clampInt(int(in.LabelAt.Y), 0, h-1)
	if labelRow == row {
		return c.render(s.styles)
	}
	inX, outX := placeLabels(w, round(in.LabelAt.X), round(out.LabelAt.X), in.Label, out.Label)
	c.text(inX, labelRow, in.Label, paintLabel)
	c.text(outX, labelRow, out.Label, paintLabel)
	return c.render(s.styles)
}

func (s *Slider) drawHandle(c *canvas, g Glyph, hot bool) {
	row := clampInt(int(g.Center.Y), 0, c.h-1)
	x := round(g.Center.X)
	ring := paintOuter
	if hot {
		ring = paintOuterHover
	}
	if s.geom.radius >= 1 {
		c.set(x-1, row, '(', ring)
		c.set(x+1, row, ')', ring)
	}
	c.set(x, row, '●', paintInner)
}

// placeLabels centres each label under its handle, keeps both inside the
// widget and pushes them apart when they would collide.
func placeLabels(width, inC, outC int, inLabel, outLabel string) (int, int) {
	inW, outW := len([]rune(inLabel)), len([]rune(outLabel))
	inX := clampInt(inC-inW/2, 0, max(0, width-inW))
	outX := clampInt(outC-outW/2, 0, max(0, width-outW))
	if outX < inX+inW+1 {
		outX = inX + inW + 1
		if outX+outW > width {
			outX = max(0, width-outW)
			inX = max(0, outX-1-inW)
		}
	}
	return inX, outX
}

func round(v float64) int { return int(math.Round(v)) }

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
