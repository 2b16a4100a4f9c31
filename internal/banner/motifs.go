package banner

import (
	"math"

	imagepkg "github.com/youruser/eidbanner/internal/image"
)

// star adds a star outline with the given number of points. The inner
// radius is half the outer one.
func star(s *imagepkg.Surface, x, y, radius float64, points int) {
	if radius <= 0 || points < 2 {
		return
	}
	step := math.Pi / float64(points)
	for i := 0; i < 2*points; i++ {
		r := radius
		if i%2 == 1 {
			r = radius * 0.5
		}
		a := float64(i) * step
		if i == 0 {
			s.MoveTo(x+r*math.Cos(a), y+r*math.Sin(a))
		} else {
			s.LineTo(x+r*math.Cos(a), y+r*math.Sin(a))
		}
	}
	s.ClosePath()
}

// crescent adds two overlapping circles; fill it even-odd.
func crescent(s *imagepkg.Surface, x, y, radius float64) {
	s.Circle(x, y, radius)
	s.Circle(x+radius*0.6, y-radius*0.2, radius*0.8)
}

func lantern(s *imagepkg.Surface, x, y, size float64) {
	body := imagepkg.NewLinearGradient(x-size/2, y-size, x+size/2, y+size, gold, orange, tomato)
	s.BeginPath()
	s.Ellipse(x, y, size*0.6, size)
	s.Fill(body)

	s.BeginPath()
	for _, k := range []float64{-0.3, 0, 0.3} {
		s.MoveTo(x-size*0.6, y+size*k)
		s.LineTo(x+size*0.6, y+size*k)
	}
	s.Stroke(imagepkg.StrokeStyle{Color: saddleBrown, Width: 3})
}

// medallion strokes an eight-spoke ring.
func medallion(s *imagepkg.Surface, x, y, size float64) {
	s.BeginPath()
	for i := 0; i < 8; i++ {
		a := float64(i) * math.Pi / 4
		s.MoveTo(x+math.Cos(a)*size*0.3, y+math.Sin(a)*size*0.3)
		s.LineTo(x+math.Cos(a)*size*0.7, y+math.Sin(a)*size*0.7)
	}
	s.Circle(x, y, size*0.5)
	s.Stroke(imagepkg.StrokeStyle{Color: goldenrod, Width: 2})
}
