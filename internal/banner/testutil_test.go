package banner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	imagepkg "github.com/youruser/eidbanner/internal/image"
)

func defaultOptions() Options {
	return Options{
		Width:      800,
		Height:     400,
		Frames:     20,
		FrameDelay: 100 * time.Millisecond,
		LoopCount:  0,
		Quality:    10,
	}
}

func testFonts(t *testing.T) *imagepkg.FontSet {
	t.Helper()
	fs, err := imagepkg.LoadFonts(imagepkg.FontOptions{})
	require.NoError(t, err)
	return fs
}

func testFaces(t *testing.T) *imagepkg.Faces {
	t.Helper()
	faces, err := testFonts(t).NewFaces(TitleSizes)
	require.NoError(t, err)
	t.Cleanup(faces.Close)
	return faces
}

func solidPNG(t *testing.T, size int, c color.NRGBA) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// countingSource answers every fetch with result and counts calls.
type countingSource struct {
	mu     sync.Mutex
	calls  int
	result imagepkg.FetchResult
	inner  AvatarSource
}

func (c *countingSource) Fetch(ctx context.Context, url string) imagepkg.FetchResult {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	if c.inner != nil {
		return c.inner.Fetch(ctx, url)
	}
	return c.result
}

func (c *countingSource) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

// recordingEncoder keeps copies of pushed frames. failAt >= 0 makes that
// push fail.
type recordingEncoder struct {
	opts      EncoderOptions
	started   bool
	finished  bool
	abandoned bool
	frames    []*image.RGBA
	failAt    int
}

func newRecordingEncoder() *recordingEncoder { return &recordingEncoder{failAt: -1} }

func (e *recordingEncoder) Start(opts EncoderOptions) {
	e.opts = opts
	e.started = true
}

func (e *recordingEncoder) PushFrame(frame *image.RGBA) error {
	if e.finished {
		panic("push after finish")
	}
	if len(e.frames) == e.failAt {
		return errors.New("encoder full")
	}
	cp := image.NewRGBA(frame.Bounds())
	copy(cp.Pix, frame.Pix)
	e.frames = append(e.frames, cp)
	return nil
}

func (e *recordingEncoder) Finish() ([]byte, error) {
	if e.finished {
		panic("finish twice")
	}
	e.finished = true
	return []byte{byte(len(e.frames))}, nil
}

func (e *recordingEncoder) Abandon() { e.abandoned = true }
