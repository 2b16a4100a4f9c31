package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// Surface is a raster canvas with a path builder and a transform stack.
// Path coordinates are user space; they are mapped through the current
// transform when added. Nothing on a Surface fails: degenerate input is an
// empty draw.
type Surface struct {
	img    *image.RGBA
	filler *rasterx.Filler
	dasher *rasterx.Dasher
	m      rasterx.Matrix2D
	stack  []rasterx.Matrix2D
	path   []subpath
	dirty  image.Rectangle
}

type subpath struct {
	pts    []point
	closed bool
}

type point struct{ x, y float64 }

func (p point) fixed() fixed.Point26_6 {
	return fixed.Point26_6{X: fixed.Int26_6(math.Round(p.x * 64)), Y: fixed.Int26_6(math.Round(p.y * 64))}
}

// StrokeStyle describes a stroked path. A nil Dash strokes a solid line.
type StrokeStyle struct {
	Color color.Color
	Width float64
	Dash  []float64
}

// NewSurface returns a fully transparent canvas of the given size.
func NewSurface(width, height int) *Surface {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	return &Surface{
		img:    img,
		filler: rasterx.NewFiller(width, height, scanner),
		dasher: rasterx.NewDasher(width, height, scanner),
		m:      rasterx.Identity,
	}
}

func (s *Surface) Width() int  { return s.img.Bounds().Dx() }
func (s *Surface) Height() int { return s.img.Bounds().Dy() }

// Image exposes the pixel buffer.
func (s *Surface) Image() *image.RGBA { return s.img }

// Save pushes the current transform.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.m)
}

// Restore pops the transform pushed by the matching Save.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		return
	}
	s.m = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Scoped runs fn between a Save and its Restore.
func (s *Surface) Scoped(fn func()) {
	s.Save()
	defer s.Restore()
	fn()
}

func (s *Surface) Translate(x, y float64) {
	s.m = s.m.Translate(x, y)
}

func (s *Surface) Rotate(theta float64) {
	s.m = s.m.Rotate(theta)
}

func (s *Surface) BeginPath() {
	s.path = s.path[:0]
}

func (s *Surface) MoveTo(x, y float64) {
	s.path = append(s.path, subpath{pts: []point{s.apply(x, y)}})
}

func (s *Surface) LineTo(x, y float64) {
	if len(s.path) == 0 {
		s.MoveTo(x, y)
		return
	}
	sp := &s.path[len(s.path)-1]
	sp.pts = append(sp.pts, s.apply(x, y))
}

func (s *Surface) ClosePath() {
	if len(s.path) > 0 {
		s.path[len(s.path)-1].closed = true
	}
}

// Rect adds a closed rectangle subpath.
func (s *Surface) Rect(x, y, w, h float64) {
	if w <= 0 || h <= 0 {
		return
	}
	s.MoveTo(x, y)
	s.LineTo(x+w, y)
	s.LineTo(x+w, y+h)
	s.LineTo(x, y+h)
	s.ClosePath()
}

// Circle adds a closed circle subpath.
func (s *Surface) Circle(cx, cy, r float64) {
	s.Ellipse(cx, cy, r, r)
}

// Ellipse adds a closed axis-aligned ellipse subpath (in user space).
func (s *Surface) Ellipse(cx, cy, rx, ry float64) {
	if rx <= 0 || ry <= 0 {
		return
	}
	n := int(math.Ceil(math.Max(rx, ry) * 1.5))
	if n < 24 {
		n = 24
	}
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		x, y := cx+rx*math.Cos(a), cy+ry*math.Sin(a)
		if i == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.ClosePath()
}

// Fill fills the current path with the nonzero winding rule.
func (s *Surface) Fill(p Paint) {
	f := s.filler
	f.Clear()
	drew := false
	for _, sp := range s.path {
		if !addSubpath(f, sp) {
			continue
		}
		s.markPoints(sp.pts, 1)
		drew = true
	}
	if drew {
		f.SetColor(p.source(s.m))
		f.Draw()
	}
	f.Clear()
}

// FillEvenOdd fills the current path with the even-odd rule: a pixel is
// painted when it lies inside an odd number of subpaths. Each subpath is
// taken as a simple outline.
//
// The rasterizer only accumulates nonzero coverage, so every subpath gets its
// own coverage mask and the masks are combined exclusively.
func (s *Surface) FillEvenOdd(p Paint) {
	var acc *image.Alpha
	var area image.Rectangle
	for _, sp := range s.path {
		cov := coverageMask(s.img.Bounds(), []subpath{sp})
		if cov == nil {
			continue
		}
		if acc == nil {
			acc = cov
		} else {
			xorCoverage(acc, cov)
		}
		area = area.Union(pointBounds(sp.pts, 1).Intersect(s.img.Bounds()))
	}
	if acc == nil || area.Empty() {
		return
	}

	w, h := s.Width(), s.Height()
	paint := image.NewRGBA(s.img.Bounds())
	f := rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, paint, paint.Bounds()))
	addSubpath(f, rectSubpath(area))
	f.SetColor(p.source(s.m))
	f.Draw()

	draw.DrawMask(s.img, area, paint, area.Min, acc, area.Min, draw.Over)
	s.mark(area)
}

// coverageMask rasterizes the subpaths with nonzero winding into an alpha
// mask the size of bounds. It returns nil when no subpath has an area.
func coverageMask(bounds image.Rectangle, sps []subpath) *image.Alpha {
	w, h := bounds.Dx(), bounds.Dy()
	mask := image.NewAlpha(bounds)
	f := rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, mask, bounds))
	drew := false
	for _, sp := range sps {
		if addSubpath(f, sp) {
			drew = true
		}
	}
	if !drew {
		return nil
	}
	f.SetColor(color.Opaque)
	f.Draw()
	return mask
}

// xorCoverage folds b into a so overlapping coverage cancels out.
func xorCoverage(a, b *image.Alpha) {
	for i, bv := range b.Pix {
		x, y := int(a.Pix[i]), int(bv)
		v := x + y - 2*x*y/255
		if v < 0 {
			v = 0
		} else if v > 255 {
			v = 255
		}
		a.Pix[i] = uint8(v)
	}
}

func addSubpath(f *rasterx.Filler, sp subpath) bool {
	if len(sp.pts) < 3 {
		return false
	}
	f.Start(sp.pts[0].fixed())
	for _, pt := range sp.pts[1:] {
		f.Line(pt.fixed())
	}
	f.Stop(true)
	return true
}

func rectSubpath(r image.Rectangle) subpath {
	x0, y0, x1, y1 := float64(r.Min.X), float64(r.Min.Y), float64(r.Max.X), float64(r.Max.Y)
	return subpath{pts: []point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}}, closed: true}
}

// Stroke strokes every subpath of the current path.
func (s *Surface) Stroke(st StrokeStyle) {
	if st.Width <= 0 || st.Color == nil {
		return
	}
	d := s.dasher
	d.Clear()
	d.SetStroke(fixed.Int26_6(math.Round(st.Width*64)), 4<<6,
		rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.MiterClip, st.Dash, 0)
	drew := false
	for _, sp := range s.path {
		if len(sp.pts) < 2 {
			continue
		}
		d.Start(sp.pts[0].fixed())
		for _, pt := range sp.pts[1:] {
			d.Line(pt.fixed())
		}
		d.Stop(sp.closed)
		s.markPoints(sp.pts, st.Width)
		drew = true
	}
	if drew {
		d.SetColor(st.Color)
		d.Draw()
	}
	d.Clear()
}

// DrawImage composites img with its top-left corner at (x, y), device space.
func (s *Surface) DrawImage(img image.Image, x, y int) {
	b := img.Bounds()
	r := image.Rect(x, y, x+b.Dx(), y+b.Dy())
	draw.Draw(s.img, r, img, b.Min, draw.Over)
	s.mark(r)
}

func (s *Surface) apply(x, y float64) point {
	tx, ty := s.m.Transform(x, y)
	return point{tx, ty}
}

func (s *Surface) markPoints(pts []point, pad float64) {
	s.mark(pointBounds(pts, pad))
}

// pointBounds is the pixel rectangle covering pts grown by pad.
func pointBounds(pts []point, pad float64) image.Rectangle {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	return image.Rect(
		int(math.Floor(minX-pad)), int(math.Floor(minY-pad)),
		int(math.Ceil(maxX+pad))+1, int(math.Ceil(maxY+pad))+1,
	)
}

func (s *Surface) mark(r image.Rectangle) {
	r = r.Intersect(s.img.Bounds())
	if r.Empty() {
		return
	}
	s.dirty = s.dirty.Union(r)
}
