package imagepkg

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"github.com/srwiley/rasterx"
)

// PrepareAvatar scales img to a size x size square. It is done once per
// request and the result is shared read-only by every frame.
func PrepareAvatar(img image.Image, size int) image.Image {
	return imaging.Resize(img, size, size, imaging.Lanczos)
}

// DrawImageCircle draws img centered on (cx, cy) in device space, clipped to
// a circle of radius r. The image is drawn at its own size.
func (s *Surface) DrawImageCircle(img image.Image, cx, cy, r float64) {
	if img == nil || r <= 0 {
		return
	}
	clip := &Surface{m: rasterx.Identity}
	clip.Circle(cx, cy, r)
	mask := coverageMask(s.img.Bounds(), clip.path)
	if mask == nil {
		return
	}

	b := img.Bounds()
	origin := image.Pt(int(math.Round(cx))-b.Dx()/2, int(math.Round(cy))-b.Dy()/2)
	dst := image.Rectangle{Min: origin, Max: origin.Add(b.Size())}
	draw.DrawMask(s.img, dst, img, b.Min, mask, dst.Min, draw.Over)
	s.mark(dst)
}
