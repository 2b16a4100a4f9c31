package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// Shadow is a blurred, tinted copy of drawn content placed under it. A shadow
// colored like the content reads as a glow.
type Shadow struct {
	Color   color.NRGBA
	Blur    float64
	OffsetX int
	OffsetY int
}

// WithShadow draws fn into a layer that shares the current transform, then
// composites the layer's shadow followed by the layer itself. The shadow
// applies only to what fn draws.
func (s *Surface) WithShadow(sh Shadow, fn func(layer *Surface)) {
	layer := NewSurface(s.Width(), s.Height())
	layer.m = s.m
	fn(layer)
	if layer.dirty.Empty() {
		return
	}

	if sh.Color.A > 0 {
		// canvas semantics: blur is twice the gaussian sigma
		sigma := sh.Blur / 2
		pad := int(math.Ceil(sigma*3)) + 1
		r := layer.dirty.Inset(-pad).Intersect(layer.img.Bounds())
		region := imaging.Crop(layer.img, r)
		if sigma > 0 {
			region = imaging.Blur(region, sigma)
		}
		tint(region, sh.Color)
		dst := r.Add(image.Pt(sh.OffsetX, sh.OffsetY))
		draw.Draw(s.img, dst, region, image.Point{}, draw.Over)
		s.mark(dst)
	}

	draw.Draw(s.img, layer.dirty, layer.img, layer.dirty.Min, draw.Over)
	s.mark(layer.dirty)
}

// tint replaces the color of every pixel with c, scaling alpha by c.A.
func tint(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3]) * uint32(c.A) / 255
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, uint8(a)
	}
}
