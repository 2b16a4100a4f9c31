package imagepkg

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	qrcode "github.com/skip2/go-qrcode"
)

// GenerateQRImage returns a size x size QR code for text. The encoder picks
// its own size when the requested one is too small, so the result is scaled
// back to size.
func GenerateQRImage(text string, size int) (image.Image, error) {
	q, err := qrcode.New(text, qrcode.Medium)
	if err != nil {
		return nil, err
	}
	q.ForegroundColor = color.Black
	q.BackgroundColor = color.White
	img := q.Image(size)
	if b := img.Bounds(); b.Dx() != size || b.Dy() != size {
		return imaging.Resize(img, size, size, imaging.NearestNeighbor), nil
	}
	return img, nil
}
