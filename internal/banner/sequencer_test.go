package banner

import (
	"errors"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	imagepkg "github.com/youruser/eidbanner/internal/image"
)

func smallSequence(frames int) SequenceOptions {
	return SequenceOptions{Frames: frames, Width: 8, Height: 4, Encoder: EncoderOptions{Quality: 10}}
}

// indexRenderer paints the frame index, recovered from phase, into the red
// channel of every pixel.
func indexRenderer(n int, phases *[]Phase) FrameRenderer {
	return FrameRendererFunc(func(s *imagepkg.Surface, p Phase) error {
		*phases = append(*phases, p)
		s.BeginPath()
		s.Rect(0, 0, float64(s.Width()), float64(s.Height()))
		s.Fill(imagepkg.Solid(color.NRGBA{R: uint8(float64(p)*float64(n) + 0.5), A: 255}))
		return nil
	})
}

func TestSequencerFrameOrder(t *testing.T) {
	enc := newRecordingEncoder()
	seq := NewSequencer(enc, smallSequence(20))
	var phases []Phase

	data, err := seq.Run(indexRenderer(20, &phases))
	require.NoError(t, err)
	assert.Equal(t, []byte{20}, data)
	assert.Equal(t, StateFinalized, seq.State())

	require.Len(t, enc.frames, 20)
	require.Len(t, phases, 20)
	for i, f := range enc.frames {
		assert.Equal(t, PhaseAt(i, 20), phases[i])
		assert.Equal(t, uint8(i), f.RGBAAt(3, 2).R, "frame %d", i)
	}
	assert.True(t, enc.finished)
	assert.False(t, enc.abandoned)
}

func TestSequencerFreshSurfacePerFrame(t *testing.T) {
	enc := newRecordingEncoder()
	seq := NewSequencer(enc, smallSequence(3))
	first := true
	_, err := seq.Run(FrameRendererFunc(func(s *imagepkg.Surface, _ Phase) error {
		for _, b := range s.Image().Pix {
			if b != 0 {
				return errors.New("surface reused")
			}
		}
		if first {
			s.BeginPath()
			s.Rect(0, 0, 8, 4)
			s.Fill(imagepkg.Solid(color.White))
			first = false
		}
		return nil
	}))
	require.NoError(t, err)
}

func TestSequencerAbandonsOnRenderFailure(t *testing.T) {
	enc := newRecordingEncoder()
	seq := NewSequencer(enc, smallSequence(10))
	boom := errors.New("boom")
	calls := 0

	data, err := seq.Run(FrameRendererFunc(func(*imagepkg.Surface, Phase) error {
		calls++
		if calls == 4 {
			return boom
		}
		return nil
	}))
	assert.Nil(t, data)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.True(t, errors.Is(err, boom))

	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, 3, genErr.Frame)
	assert.Equal(t, "render", genErr.Op)

	assert.Equal(t, StateAbandoned, seq.State())
	assert.True(t, enc.abandoned)
	assert.False(t, enc.finished)
	assert.Len(t, enc.frames, 3)
	assert.Equal(t, 4, calls)
}

func TestSequencerAbandonsOnPanic(t *testing.T) {
	enc := newRecordingEncoder()
	seq := NewSequencer(enc, smallSequence(5))

	_, err := seq.Run(FrameRendererFunc(func(_ *imagepkg.Surface, p Phase) error {
		if p > 0.5 {
			panic("bad motif")
		}
		return nil
	}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGenerationFailed))
	assert.Contains(t, err.Error(), "bad motif")
	assert.True(t, enc.abandoned)
	assert.False(t, enc.finished)
}

func TestSequencerAbandonsOnPushFailure(t *testing.T) {
	enc := newRecordingEncoder()
	enc.failAt = 2
	seq := NewSequencer(enc, smallSequence(5))

	_, err := seq.Run(FrameRendererFunc(func(*imagepkg.Surface, Phase) error { return nil }))
	var genErr *GenerationError
	require.True(t, errors.As(err, &genErr))
	assert.Equal(t, "encode", genErr.Op)
	assert.Equal(t, 2, genErr.Frame)
	assert.True(t, enc.abandoned)
	assert.False(t, enc.finished)
}

func TestSequencerRunsOnce(t *testing.T) {
	seq := NewSequencer(newRecordingEncoder(), smallSequence(2))
	noop := FrameRendererFunc(func(*imagepkg.Surface, Phase) error { return nil })

	_, err := seq.Run(noop)
	require.NoError(t, err)
	_, err = seq.Run(noop)
	assert.ErrorIs(t, err, ErrSequencerDone)
	assert.Equal(t, StateFinalized, seq.State())
}

func TestSequencerRejectsBadConfig(t *testing.T) {
	enc := newRecordingEncoder()
	seq := NewSequencer(enc, smallSequence(0))
	_, err := seq.Run(FrameRendererFunc(func(*imagepkg.Surface, Phase) error { return nil }))
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.False(t, enc.started)
	assert.Equal(t, StateAbandoned, seq.State())
	assert.Equal(t, "abandoned", seq.State().String())
}
