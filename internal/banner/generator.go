package banner

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/youruser/eidbanner/internal/config"
	imagepkg "github.com/youruser/eidbanner/internal/image"
	"github.com/youruser/eidbanner/internal/logger"
	"github.com/youruser/eidbanner/internal/metrics"
)

const (
	ContentTypePNG = "image/png"
	ContentTypeGIF = "image/gif"
)

// AvatarSource fetches avatar bytes. Implementations must not fail: an
// unusable avatar is a NotFound.
type AvatarSource interface {
	Fetch(ctx context.Context, url string) imagepkg.FetchResult
}

// Options are the per-deployment render parameters.
type Options struct {
	Width      int
	Height     int
	Frames     int
	FrameDelay time.Duration
	LoopCount  int
	Quality    int
}

func OptionsFromConfig(c config.BannerConfig) Options {
	return Options{
		Width:      c.Width,
		Height:     c.Height,
		Frames:     c.Frames,
		FrameDelay: c.FrameDelay,
		LoopCount:  c.LoopCount,
		Quality:    c.Quality,
	}
}

// Output is an encoded banner ready to be sent as is.
type Output struct {
	Data        []byte
	ContentType string
	Frames      int
}

// Generator turns a RenderRequest into an Output. It keeps only immutable
// state, so one Generator serves concurrent requests.
type Generator struct {
	opts          Options
	avatars       AvatarSource
	fonts         *imagepkg.FontSet
	scriptCovered bool
	newEncoder    func() SequentialEncoder
	log           *logrus.Entry
}

type GeneratorOption func(*Generator)

// WithEncoderFactory replaces the GIF encoder used for animations.
func WithEncoderFactory(f func() SequentialEncoder) GeneratorOption {
	return func(g *Generator) { g.newEncoder = f }
}

func NewGenerator(opts Options, avatars AvatarSource, fonts *imagepkg.FontSet, options ...GeneratorOption) *Generator {
	g := &Generator{
		opts:          opts,
		avatars:       avatars,
		fonts:         fonts,
		scriptCovered: fonts.ScriptCovers(GreetingScript),
		newEncoder:    func() SequentialEncoder { return NewGIFEncoder() },
		log:           logger.WithNamespace("banner"),
	}
	for _, o := range options {
		o(g)
	}
	if !g.scriptCovered {
		g.log.Warn("no script font covers the greeting, the script title line is omitted")
	}
	return g
}

// Generate validates req, fetches the avatar at most once and renders either a
// PNG at phase 0 or a GIF of opts.Frames frames.
func (g *Generator) Generate(ctx context.Context, req RenderRequest) (*Output, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	theme, err := LookupTheme(req.Style)
	if err != nil {
		return nil, err
	}

	mode := "static"
	if req.Animated {
		mode = "animated"
	}
	log := g.log.WithFields(logrus.Fields{"style": theme.Name(), "mode": mode})
	start := time.Now()

	out, err := g.generate(ctx, theme, req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	elapsed := time.Since(start)
	metrics.RenderDurations.WithLabelValues(mode, outcome).Observe(elapsed.Seconds())

	if err != nil {
		log.Errorf("banner generation failed: %v", err)
		return nil, err
	}
	log.WithField("frames", out.Frames).Infof("banner generated: %s in %s",
		humanize.Bytes(uint64(len(out.Data))), elapsed.Round(time.Millisecond))
	return out, nil
}

func (g *Generator) generate(ctx context.Context, theme Theme, req RenderRequest) (*Output, error) {
	faces, err := g.fonts.NewFaces(TitleSizes)
	if err != nil {
		return nil, generationFailed("load fonts", -1, err)
	}
	defer faces.Close()
	if !g.scriptCovered && faces.Script != nil {
		_ = faces.Script.Close()
		faces.Script = nil
	}

	scene := &Scene{
		Theme:     theme,
		UserName:  req.UserName,
		Avatar:    g.loadAvatar(ctx, req.AvatarURL),
		ShareCode: g.shareCode(req.ShareURL),
		Faces:     faces,
	}

	if req.Animated {
		return g.renderAnimated(scene)
	}
	return g.renderStatic(scene)
}

func (g *Generator) renderStatic(scene *Scene) (*Output, error) {
	s := imagepkg.NewSurface(g.opts.Width, g.opts.Height)
	if err := renderFrame(scene, s, 0); err != nil {
		return nil, generationFailed("render", -1, err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, s.Image()); err != nil {
		return nil, generationFailed("encode png", -1, err)
	}
	return &Output{Data: buf.Bytes(), ContentType: ContentTypePNG, Frames: 1}, nil
}

func (g *Generator) renderAnimated(scene *Scene) (*Output, error) {
	seq := NewSequencer(g.newEncoder(), SequenceOptions{
		Frames: g.opts.Frames,
		Width:  g.opts.Width,
		Height: g.opts.Height,
		Encoder: EncoderOptions{
			LoopCount: g.opts.LoopCount,
			Delay:     g.opts.FrameDelay,
			Quality:   g.opts.Quality,
		},
	})
	data, err := seq.Run(scene)
	if err != nil {
		return nil, err
	}
	return &Output{Data: data, ContentType: ContentTypeGIF, Frames: g.opts.Frames}, nil
}

// loadAvatar is the request's only fetch. Every failure degrades to nil, the
// placeholder.
func (g *Generator) loadAvatar(ctx context.Context, url string) image.Image {
	if url == "" {
		metrics.AvatarFetches.WithLabelValues("absent").Inc()
		return nil
	}
	if g.avatars == nil {
		metrics.AvatarFetches.WithLabelValues("not_found").Inc()
		return nil
	}
	data, ok := g.avatars.Fetch(ctx, url).Bytes()
	if !ok {
		metrics.AvatarFetches.WithLabelValues("not_found").Inc()
		return nil
	}
	img, err := imagepkg.DecodeAvatar(data)
	if err != nil {
		g.log.WithField("url", url).Warnf("avatar decode failed: %v", err)
		metrics.AvatarFetches.WithLabelValues("decode_failed").Inc()
		return nil
	}
	metrics.AvatarFetches.WithLabelValues("found").Inc()
	return imagepkg.PrepareAvatar(img, AvatarSize)
}

func (g *Generator) shareCode(url string) image.Image {
	if url == "" {
		return nil
	}
	img, err := imagepkg.GenerateQRImage(url, ShareCodeSize)
	if err != nil {
		g.log.WithField("url", url).Warnf("share code skipped: %v", err)
		return nil
	}
	return img
}
