package banner

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"time"

	imagepkg "github.com/youruser/eidbanner/internal/image"
)

// EncoderOptions configure an animation. LoopCount follows image/gif: 0
// loops forever, -1 plays once. Quality is the palette sampling stride,
// 1 (best) to 30.
type EncoderOptions struct {
	LoopCount int
	Delay     time.Duration
	Quality   int
}

// SequentialEncoder accepts frames in display order and produces one
// container. Misusing the lifecycle panics.
type SequentialEncoder interface {
	Start(opts EncoderOptions)
	PushFrame(frame *image.RGBA) error
	Finish() ([]byte, error)
	// Abandon discards everything pushed so far.
	Abandon()
}

type encoderState int

const (
	encoderIdle encoderState = iota
	encoderStarted
	encoderFinished
	encoderAbandoned
)

func (s encoderState) String() string {
	switch s {
	case encoderIdle:
		return "idle"
	case encoderStarted:
		return "started"
	case encoderFinished:
		return "finished"
	default:
		return "abandoned"
	}
}

// GIFEncoder is a SequentialEncoder producing an animated GIF. Frames are
// quantized as they are pushed; the caller's buffer is never retained.
type GIFEncoder struct {
	state encoderState
	opts  EncoderOptions
	anim  *gif.GIF
	size  image.Point
}

func NewGIFEncoder() *GIFEncoder {
	return &GIFEncoder{}
}

func (e *GIFEncoder) Start(opts EncoderOptions) {
	if e.state != encoderIdle {
		panic(fmt.Sprintf("banner: gif encoder Start while %s", e.state))
	}
	if opts.Quality < 1 {
		opts.Quality = 1
	}
	if opts.Quality > 30 {
		opts.Quality = 30
	}
	e.opts = opts
	e.anim = &gif.GIF{LoopCount: opts.LoopCount}
	e.state = encoderStarted
}

func (e *GIFEncoder) PushFrame(frame *image.RGBA) error {
	if e.state != encoderStarted {
		panic(fmt.Sprintf("banner: gif encoder PushFrame while %s", e.state))
	}
	if frame == nil {
		return errors.New("nil frame")
	}
	size := frame.Bounds().Size()
	if len(e.anim.Image) == 0 {
		e.size = size
	} else if size != e.size {
		return fmt.Errorf("frame size %v differs from first frame %v", size, e.size)
	}
	e.anim.Image = append(e.anim.Image, imagepkg.Quantize(frame, e.opts.Quality))
	e.anim.Delay = append(e.anim.Delay, int(e.opts.Delay/(10*time.Millisecond)))
	return nil
}

func (e *GIFEncoder) Finish() ([]byte, error) {
	if e.state != encoderStarted {
		panic(fmt.Sprintf("banner: gif encoder Finish while %s", e.state))
	}
	anim := e.anim
	e.anim = nil
	e.state = encoderFinished
	if len(anim.Image) == 0 {
		return nil, errors.New("no frames to encode")
	}
	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, anim); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (e *GIFEncoder) Abandon() {
	if e.state == encoderFinished {
		return
	}
	e.anim = nil
	e.state = encoderAbandoned
}
