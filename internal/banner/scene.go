package banner

import (
	"errors"
	"fmt"
	"image"

	imagepkg "github.com/youruser/eidbanner/internal/image"
)

const (
	// GreetingScript is عيد مبارك in Arabic presentation forms, visual
	// order, so it draws correctly without a shaping engine.
	GreetingScript = "ﻙﺭﺎﺒﻣ ﺪﻴﻋ"
	GreetingLatin  = "EID MUBARAK"
	Blessing       = "May Allah bless you with happiness and peace"

	AvatarSize    = 100
	ShareCodeSize = 80
)

// TitleSizes are the pixel sizes of the title, name and blessing lines.
var TitleSizes = imagepkg.FaceSizes{Title: 48, Name: 24, Body: 16}

// FrameRenderer draws one complete frame for phase.
type FrameRenderer interface {
	RenderFrame(s *imagepkg.Surface, phase Phase) error
}

// FrameRendererFunc adapts a function to FrameRenderer.
type FrameRendererFunc func(s *imagepkg.Surface, phase Phase) error

func (f FrameRendererFunc) RenderFrame(s *imagepkg.Surface, phase Phase) error { return f(s, phase) }

// Scene is everything a frame depends on besides its phase. It is read-only
// once built, so the same Scene renders every frame of a request.
type Scene struct {
	Theme    Theme
	UserName string
	// Avatar is already scaled to AvatarSize; nil draws the placeholder.
	Avatar image.Image
	// ShareCode is an optional QR code pasted bottom-left.
	ShareCode image.Image
	// Faces.Script nil omits the script greeting line.
	Faces *imagepkg.Faces
}

// RenderFrame draws, back to front: background, motifs, avatar, share code,
// text.
func (sc *Scene) RenderFrame(s *imagepkg.Surface, phase Phase) error {
	if sc.Theme == nil {
		return errors.New("scene has no theme")
	}
	if sc.Faces == nil {
		return errors.New("scene has no font faces")
	}
	if phase < 0 || phase >= 1 {
		return fmt.Errorf("phase %v out of [0,1)", float64(phase))
	}
	w, h := float64(s.Width()), float64(s.Height())

	s.BeginPath()
	s.Rect(0, 0, w, h)
	stops := sc.Theme.Background()
	s.Fill(imagepkg.NewLinearGradient(0, 0, w, h, stops...))

	s.Scoped(func() {
		sc.Theme.DrawMotifs(s, phase)
	})

	sc.drawAvatar(s, w)

	if sc.ShareCode != nil {
		s.DrawImage(sc.ShareCode, 40, int(h)-40-ShareCodeSize)
	}

	sc.drawText(s, w, h)
	return nil
}

// AvatarCenter is the avatar circle's center and radius for a canvas width.
func AvatarCenter(width int) (cx, cy, r float64) {
	r = AvatarSize / 2
	return float64(width) - 120 + r, 60 + r, r
}

func (sc *Scene) drawAvatar(s *imagepkg.Surface, w float64) {
	cx, cy, r := AvatarCenter(int(w))
	if sc.Avatar == nil {
		s.BeginPath()
		s.Circle(cx, cy, r)
		s.Fill(imagepkg.Solid(placeholder))
		return
	}
	s.DrawImageCircle(sc.Avatar, cx, cy, r)
	s.BeginPath()
	s.Circle(cx, cy, r)
	s.Stroke(imagepkg.StrokeStyle{Color: goldenrod, Width: 3})
}

func (sc *Scene) drawText(s *imagepkg.Surface, w, h float64) {
	f := sc.Faces
	s.WithShadow(imagepkg.Shadow{Color: black, Blur: 5}, func(l *imagepkg.Surface) {
		if f.Script != nil {
			l.DrawText(GreetingScript, w/2, h/2-40, imagepkg.TextStyle{Face: f.Script, Color: gold, Align: imagepkg.AlignCenter})
		}
		l.DrawText(GreetingLatin, w/2, h/2, imagepkg.TextStyle{Face: f.Title, Color: gold, Align: imagepkg.AlignCenter})
	})
	s.DrawText(sc.UserName, w/2, h/2+40, imagepkg.TextStyle{Face: f.Name, Color: white, Align: imagepkg.AlignCenter})
	s.DrawText(Blessing, w/2, h-60, imagepkg.TextStyle{Face: f.Body, Color: goldenrod, Align: imagepkg.AlignCenter})
}

// renderFrame turns a panic inside r into an error so one bad frame fails
// the request instead of the process.
func renderFrame(r FrameRenderer, s *imagepkg.Surface, phase Phase) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic while rendering: %v", p)
		}
	}()
	return r.RenderFrame(s, phase)
}
