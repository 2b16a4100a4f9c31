package imagepkg

import (
	"image/color"
	"math"

	"github.com/srwiley/rasterx"
)

// Paint is what a path is filled with.
type Paint interface {
	source(m rasterx.Matrix2D) interface{}
}

type solid struct{ c color.Color }

func (p solid) source(rasterx.Matrix2D) interface{} { return p.c }

// Solid paints a single color.
func Solid(c color.Color) Paint { return solid{c} }

// LinearGradient runs from (X0,Y0) to (X1,Y1) in user space. Stops are spread
// evenly over [0,1] in order.
type LinearGradient struct {
	X0, Y0, X1, Y1 float64
	Stops          []color.NRGBA
}

func NewLinearGradient(x0, y0, x1, y1 float64, stops ...color.NRGBA) LinearGradient {
	return LinearGradient{X0: x0, Y0: y0, X1: x1, Y1: y1, Stops: stops}
}

// At returns the gradient color at position t, clamped to [0,1].
func (g LinearGradient) At(t float64) color.NRGBA {
	n := len(g.Stops)
	switch n {
	case 0:
		return color.NRGBA{}
	case 1:
		return g.Stops[0]
	}
	t = math.Max(0, math.Min(1, t))
	pos := t * float64(n-1)
	i := int(pos)
	if i >= n-1 {
		return g.Stops[n-1]
	}
	return lerpColor(g.Stops[i], g.Stops[i+1], pos-float64(i))
}

func (g LinearGradient) source(m rasterx.Matrix2D) interface{} {
	x0, y0 := m.Transform(g.X0, g.Y0)
	x1, y1 := m.Transform(g.X1, g.Y1)
	dx, dy := x1-x0, y1-y0
	den := dx*dx + dy*dy
	return rasterx.ColorFunc(func(x, y int) color.Color {
		if den == 0 {
			return g.At(0)
		}
		t := ((float64(x)+0.5-x0)*dx + (float64(y)+0.5-y0)*dy) / den
		return g.At(t)
	})
}

func lerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerp(a.R, b.R, t),
		G: lerp(a.G, b.G, t),
		B: lerp(a.B, b.B, t),
		A: lerp(a.A, b.A, t),
	}
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}
