package banner

import (
	"fmt"
	"image/color"
	"math"

	imagepkg "github.com/youruser/eidbanner/internal/image"
)

type Style int

const (
	StyleClassic Style = iota + 1
	StyleLantern
	StyleStarry
	StyleGeometric
)

// Phase is the position within one animation loop, in [0,1).
type Phase float64

// PhaseAt is the phase of frame i out of n.
func PhaseAt(i, n int) Phase {
	if n <= 0 {
		return 0
	}
	return Phase(float64(i) / float64(n))
}

// radians returns phase*π*k, the argument of every periodic motif term.
func (p Phase) radians(k float64) float64 {
	return float64(p) * math.Pi * k
}

// Theme is one background style. Implementations hold no mutable state, so a
// single value serves every request.
type Theme interface {
	Style() Style
	Name() string
	// Background lists the gradient stops, top-left to bottom-right.
	Background() []color.NRGBA
	// DrawMotifs draws the decorative layer. Every time-varying parameter is
	// derived from phase.
	DrawMotifs(s *imagepkg.Surface, phase Phase)
}

var (
	gold        = imagepkg.MustHex("#FFD700")
	goldenrod   = imagepkg.MustHex("#DAA520")
	orange      = imagepkg.MustHex("#FFA500")
	tomato      = imagepkg.MustHex("#FF6347")
	saddleBrown = imagepkg.MustHex("#8B4513")
	silver      = imagepkg.MustHex("#C0C0C0")
	white       = imagepkg.MustHex("#FFFFFF")
	black       = imagepkg.MustHex("#000000")
	placeholder = imagepkg.MustHex("#4A4A4A")
)

func hexStops(values ...string) []color.NRGBA {
	stops := make([]color.NRGBA, len(values))
	for i, v := range values {
		stops[i] = imagepkg.MustHex(v)
	}
	return stops
}

func copyStops(stops []color.NRGBA) []color.NRGBA {
	return append([]color.NRGBA(nil), stops...)
}

var registry = []Theme{
	classicTheme{stops: hexStops("#1a1a2e", "#16213e", "#0f3460")},
	lanternTheme{stops: hexStops("#2c1810", "#4a2c17", "#6b3410")},
	starryTheme{stops: hexStops("#0f0f23", "#1a1a3e", "#2e2e5a")},
	geometricTheme{stops: hexStops("#1e3a5f", "#2e5a8f", "#4e7abf")},
}

// LookupTheme maps a style number to its theme. There is no fallback theme.
func LookupTheme(style int) (Theme, error) {
	for _, t := range registry {
		if int(t.Style()) == style {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w (got %d)", ErrInvalidStyle, style)
}

// Themes returns the registered themes in style order.
func Themes() []Theme {
	return append([]Theme(nil), registry...)
}

type classicTheme struct{ stops []color.NRGBA }

func (classicTheme) Style() Style                { return StyleClassic }
func (classicTheme) Name() string                { return "classic" }
func (t classicTheme) Background() []color.NRGBA { return copyStops(t.stops) }

func (classicTheme) DrawMotifs(s *imagepkg.Surface, p Phase) {
	w, h := float64(s.Width()), float64(s.Height())

	moonX := 150 + math.Sin(p.radians(2))*10
	s.WithShadow(imagepkg.Shadow{Color: gold, Blur: 20}, func(l *imagepkg.Surface) {
		l.BeginPath()
		crescent(l, moonX, 100, 40)
		l.FillEvenOdd(imagepkg.Solid(gold))
	})

	s.WithShadow(imagepkg.Shadow{Color: white, Blur: 10}, func(l *imagepkg.Surface) {
		l.BeginPath()
		for i := 0; i < 15; i++ {
			fi := float64(i)
			x := math.Mod(fi*53+float64(p)*50, w)
			y := 50 + math.Sin(p.radians(2)+fi)*30
			star(l, x, y, 3+math.Sin(p.radians(4)+fi)*2, 5)
		}
		l.Fill(imagepkg.Solid(white))
	})

	s.BeginPath()
	s.Rect(20, 20, w-40, h-40)
	s.Stroke(imagepkg.StrokeStyle{Color: goldenrod, Width: 3, Dash: []float64{10, 5}})
}

type lanternTheme struct{ stops []color.NRGBA }

func (lanternTheme) Style() Style                { return StyleLantern }
func (lanternTheme) Name() string                { return "lantern" }
func (t lanternTheme) Background() []color.NRGBA { return copyStops(t.stops) }

func (lanternTheme) DrawMotifs(s *imagepkg.Surface, p Phase) {
	w := float64(s.Width())

	for i := 0; i < 5; i++ {
		fi := float64(i)
		x := 100 + fi*120
		y := 120 + math.Sin(p.radians(2)+fi*0.5)*20
		lantern(s, x, y, 30+math.Sin(p.radians(4)+fi)*5)
	}

	s.BeginPath()
	for i := 0; i < 20; i++ {
		fi := float64(i)
		x := math.Mod(fi*40+float64(p)*100, w)
		y := 300 + math.Sin(p.radians(3)+fi)*50
		s.Circle(x, y, 2+math.Sin(p.radians(6)+fi))
	}
	s.Fill(imagepkg.Solid(gold))
}

type starryTheme struct{ stops []color.NRGBA }

func (starryTheme) Style() Style                { return StyleStarry }
func (starryTheme) Name() string                { return "starry" }
func (t starryTheme) Background() []color.NRGBA { return copyStops(t.stops) }

func (starryTheme) DrawMotifs(s *imagepkg.Surface, p Phase) {
	w, h := float64(s.Width()), float64(s.Height())

	s.WithShadow(imagepkg.Shadow{Color: white, Blur: 15}, func(l *imagepkg.Surface) {
		for i := 0; i < 30; i++ {
			fi := float64(i)
			x := math.Mod(fi*27, w)
			y := math.Mod(fi*13, h)
			opacity := 0.3 + math.Sin(p.radians(6)+fi*0.5)*0.7
			l.BeginPath()
			star(l, x, y, 2+math.Sin(p.radians(8)+fi)*3, 5)
			l.Fill(imagepkg.Solid(imagepkg.WithAlpha(white, opacity)))
		}
	})

	moonX := w/2 + math.Cos(p.radians(2))*100
	s.WithShadow(imagepkg.Shadow{Color: silver, Blur: 25}, func(l *imagepkg.Surface) {
		l.BeginPath()
		l.Circle(moonX, 80, 35)
		l.Fill(imagepkg.Solid(silver))
	})
}

type geometricTheme struct{ stops []color.NRGBA }

func (geometricTheme) Style() Style                { return StyleGeometric }
func (geometricTheme) Name() string                { return "geometric" }
func (t geometricTheme) Background() []color.NRGBA { return copyStops(t.stops) }

func (geometricTheme) DrawMotifs(s *imagepkg.Surface, p Phase) {
	w, h := float64(s.Width()), float64(s.Height())

	for i := 0; i < 6; i++ {
		fi := float64(i)
		rotation := p.radians(2) + fi*math.Pi/3
		s.Scoped(func() {
			s.Translate(100+fi*120, 200)
			s.Rotate(rotation)
			medallion(s, 0, 0, 40)
		})
	}

	s.BeginPath()
	for x := 0.0; x < w; x += 5 {
		y := h/2 + math.Sin((x+float64(p)*100)*0.02)*30
		if x == 0 {
			s.MoveTo(x, y)
		} else {
			s.LineTo(x, y)
		}
	}
	s.Stroke(imagepkg.StrokeStyle{Color: goldenrod, Width: 2})
}
