package banner

import (
	"fmt"

	"github.com/sirupsen/logrus"
	imagepkg "github.com/youruser/eidbanner/internal/image"
	"github.com/youruser/eidbanner/internal/logger"
	"github.com/youruser/eidbanner/internal/metrics"
)

// SequencerState is where a Sequencer is in its single run.
type SequencerState int

const (
	StateIdle SequencerState = iota
	StateRendering
	StateFinalized
	StateAbandoned
)

func (s SequencerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRendering:
		return "rendering"
	case StateFinalized:
		return "finalized"
	case StateAbandoned:
		return "abandoned"
	}
	return fmt.Sprintf("SequencerState(%d)", int(s))
}

type SequenceOptions struct {
	Frames  int
	Width   int
	Height  int
	Encoder EncoderOptions
}

// Sequencer renders Frames phases in order and feeds each frame to its
// encoder. It runs once: Idle -> Rendering -> Finalized, or Abandoned when a
// frame fails.
type Sequencer struct {
	opts  SequenceOptions
	enc   SequentialEncoder
	state SequencerState
	log   *logrus.Entry
}

func NewSequencer(enc SequentialEncoder, opts SequenceOptions) *Sequencer {
	return &Sequencer{
		opts: opts,
		enc:  enc,
		log:  logger.WithNamespace("sequencer"),
	}
}

func (q *Sequencer) State() SequencerState { return q.state }

// Run renders frame i at phase i/Frames onto a fresh surface, for i in
// increasing order, and returns the finished container. On any failure the
// encoder is abandoned, never finished, and a *GenerationError is returned.
func (q *Sequencer) Run(r FrameRenderer) ([]byte, error) {
	if q.state != StateIdle {
		return nil, ErrSequencerDone
	}
	n := q.opts.Frames
	if n < 1 || q.opts.Width < 1 || q.opts.Height < 1 {
		q.state = StateAbandoned
		return nil, generationFailed("configure", -1,
			fmt.Errorf("invalid sequence %d frames of %dx%d", n, q.opts.Width, q.opts.Height))
	}

	q.enc.Start(q.opts.Encoder)
	q.state = StateRendering

	for i := 0; i < n; i++ {
		surface := imagepkg.NewSurface(q.opts.Width, q.opts.Height)
		if err := renderFrame(r, surface, PhaseAt(i, n)); err != nil {
			return nil, q.abandon("render", i, err)
		}
		if err := q.enc.PushFrame(surface.Image()); err != nil {
			return nil, q.abandon("encode", i, err)
		}
		metrics.FramesEncoded.Inc()
	}

	data, err := q.enc.Finish()
	if err != nil {
		q.state = StateAbandoned
		return nil, generationFailed("finish", -1, err)
	}
	q.state = StateFinalized
	q.log.Debugf("sequence finalized: %d frames", n)
	return data, nil
}

func (q *Sequencer) abandon(op string, frame int, err error) error {
	q.enc.Abandon()
	q.state = StateAbandoned
	q.log.WithField("frame", frame).Warnf("sequence abandoned during %s: %v", op, err)
	return generationFailed(op, frame, err)
}
