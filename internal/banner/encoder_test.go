package banner

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func frame(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestGIFEncoder(t *testing.T) {
	enc := NewGIFEncoder()
	enc.Start(EncoderOptions{LoopCount: 0, Delay: 100 * time.Millisecond, Quality: 10})
	colors := []color.RGBA{{R: 255, A: 255}, {G: 255, A: 255}, {B: 255, A: 255}}
	for _, c := range colors {
		require.NoError(t, enc.PushFrame(frame(16, 8, c)))
	}
	data, err := enc.Finish()
	require.NoError(t, err)

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, anim.Image, 3)
	assert.Equal(t, []int{10, 10, 10}, anim.Delay)
	assert.Equal(t, 0, anim.LoopCount)
	for i, c := range colors {
		r, g, b, _ := anim.Image[i].At(4, 4).RGBA()
		assert.Equal(t, [3]uint32{uint32(c.R) * 0x101, uint32(c.G) * 0x101, uint32(c.B) * 0x101}, [3]uint32{r, g, b})
	}
}

func TestGIFEncoderPlaysOnce(t *testing.T) {
	enc := NewGIFEncoder()
	enc.Start(EncoderOptions{LoopCount: -1, Delay: 40 * time.Millisecond})
	require.NoError(t, enc.PushFrame(frame(4, 4, color.RGBA{A: 255})))
	data, err := enc.Finish()
	require.NoError(t, err)

	anim, err := gif.DecodeAll(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, -1, anim.LoopCount)
	assert.Equal(t, []int{4}, anim.Delay)
}

func TestGIFEncoderFrameErrors(t *testing.T) {
	enc := NewGIFEncoder()
	enc.Start(EncoderOptions{})
	assert.Error(t, enc.PushFrame(nil))
	require.NoError(t, enc.PushFrame(frame(4, 4, color.RGBA{A: 255})))
	assert.Error(t, enc.PushFrame(frame(5, 4, color.RGBA{A: 255})))

	empty := NewGIFEncoder()
	empty.Start(EncoderOptions{})
	_, err := empty.Finish()
	assert.Error(t, err)
}

func TestGIFEncoderLifecycle(t *testing.T) {
	f := frame(2, 2, color.RGBA{A: 255})

	assert.Panics(t, func() { _ = NewGIFEncoder().PushFrame(f) }, "push before start")
	assert.Panics(t, func() { _, _ = NewGIFEncoder().Finish() }, "finish before start")

	twice := NewGIFEncoder()
	twice.Start(EncoderOptions{})
	assert.Panics(t, func() { twice.Start(EncoderOptions{}) }, "start twice")

	done := NewGIFEncoder()
	done.Start(EncoderOptions{})
	require.NoError(t, done.PushFrame(f))
	_, err := done.Finish()
	require.NoError(t, err)
	assert.Panics(t, func() { _, _ = done.Finish() }, "finish twice")
	assert.Panics(t, func() { _ = done.PushFrame(f) }, "push after finish")
	assert.NotPanics(t, done.Abandon)
	assert.Panics(t, func() { _, _ = done.Finish() }, "abandon does not reopen")

	dropped := NewGIFEncoder()
	dropped.Start(EncoderOptions{})
	require.NoError(t, dropped.PushFrame(f))
	dropped.Abandon()
	assert.Nil(t, dropped.anim)
	assert.Panics(t, func() { _ = dropped.PushFrame(f) }, "push after abandon")
	assert.Panics(t, func() { _, _ = dropped.Finish() }, "finish after abandon")
}

func TestGIFEncoderClampsQuality(t *testing.T) {
	low := NewGIFEncoder()
	low.Start(EncoderOptions{Quality: -3})
	assert.Equal(t, 1, low.opts.Quality)

	high := NewGIFEncoder()
	high.Start(EncoderOptions{Quality: 99})
	assert.Equal(t, 30, high.opts.Quality)
}
