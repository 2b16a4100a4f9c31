package imagepkg

import (
	"image"
	"image/color"
	"sort"
)

const cubeBits = 5

type bucket struct {
	key     int
	count   uint64
	r, g, b uint64
}

// Quantize maps an opaque img onto at most 256 colors picked by popularity
// over a 15-bit color cube. sample is the pixel stride used to build the
// histogram: 1 looks at every pixel, larger values are faster and coarser.
// The result depends only on the pixels and sample.
func Quantize(img *image.RGBA, sample int) *image.Paletted {
	if sample < 1 {
		sample = 1
	}
	bounds := img.Bounds()
	hist := make([]bucket, 1<<(3*cubeBits))

	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if n%sample == 0 {
				o := img.PixOffset(x, y)
				r, g, b := img.Pix[o], img.Pix[o+1], img.Pix[o+2]
				h := &hist[cubeKey(r, g, b)]
				h.count++
				h.r += uint64(r)
				h.g += uint64(g)
				h.b += uint64(b)
			}
			n++
		}
	}

	used := make([]bucket, 0, 1024)
	for k, h := range hist {
		if h.count > 0 {
			h.key = k
			used = append(used, h)
		}
	}
	sort.Slice(used, func(i, j int) bool {
		if used[i].count != used[j].count {
			return used[i].count > used[j].count
		}
		return used[i].key < used[j].key
	})
	if len(used) > 256 {
		used = used[:256]
	}

	pal := make(color.Palette, 0, 256)
	for _, h := range used {
		pal = append(pal, color.RGBA{
			R: uint8(h.r / h.count),
			G: uint8(h.g / h.count),
			B: uint8(h.b / h.count),
			A: 0xff,
		})
	}
	if len(pal) == 0 {
		pal = append(pal, color.RGBA{A: 0xff})
	}

	lut := make([]int16, len(hist))
	for i := range lut {
		lut[i] = -1
	}
	dst := image.NewPaletted(bounds, pal)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			o := img.PixOffset(x, y)
			k := cubeKey(img.Pix[o], img.Pix[o+1], img.Pix[o+2])
			if lut[k] < 0 {
				lut[k] = int16(nearest(pal, k))
			}
			dst.Pix[dst.PixOffset(x, y)] = uint8(lut[k])
		}
	}
	return dst
}

func cubeKey(r, g, b uint8) int {
	return int(r>>(8-cubeBits))<<(2*cubeBits) | int(g>>(8-cubeBits))<<cubeBits | int(b>>(8-cubeBits))
}

// nearest returns the palette index closest to the center of cube cell k.
func nearest(pal color.Palette, k int) int {
	const mask = 1<<cubeBits - 1
	const half = 1 << (7 - cubeBits)
	r := int(k>>(2*cubeBits)&mask)<<(8-cubeBits) | half
	g := int(k>>cubeBits&mask)<<(8-cubeBits) | half
	b := int(k&mask)<<(8-cubeBits) | half

	best, bestDist := 0, -1
	for i, c := range pal {
		pc := c.(color.RGBA)
		dr, dg, db := r-int(pc.R), g-int(pc.G), b-int(pc.B)
		d := dr*dr + dg*dg + db*db
		if bestDist < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
