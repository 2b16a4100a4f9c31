package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"os"
	"unicode"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// TextStyle places a line of text relative to its anchor; y is the baseline.
type TextStyle struct {
	Face  font.Face
	Color color.Color
	Align Align
}

// DrawText draws a single line of text in device space.
func (s *Surface) DrawText(text string, x, y float64, st TextStyle) {
	if text == "" || st.Face == nil || st.Color == nil {
		return
	}
	dot := fixed.Point26_6{X: fixed.Int26_6(math.Round(x * 64)), Y: fixed.Int26_6(math.Round(y * 64))}
	switch st.Align {
	case AlignCenter:
		dot.X -= font.MeasureString(st.Face, text) / 2
	case AlignRight:
		dot.X -= font.MeasureString(st.Face, text)
	}
	bounds, _ := font.BoundString(st.Face, text)
	s.mark(image.Rect(
		(dot.X+bounds.Min.X).Floor()-1, (dot.Y+bounds.Min.Y).Floor()-1,
		(dot.X+bounds.Max.X).Ceil()+1, (dot.Y+bounds.Max.Y).Ceil()+1,
	))
	d := &font.Drawer{
		Dst:  s.img,
		Src:  image.NewUniform(st.Color),
		Face: st.Face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// FontOptions lists font files to load. Empty bold and regular paths use the
// embedded Go fonts. An empty script path falls back to the first of
// ScriptCandidates that exists and parses; with none the script font is unset.
type FontOptions struct {
	BoldPath         string
	RegularPath      string
	ScriptPath       string
	ScriptCandidates []string
}

// FontSet holds parsed fonts. It is immutable and may be shared; faces are
// not, so every render asks for its own with NewFaces.
type FontSet struct {
	bold    *opentype.Font
	regular *opentype.Font
	script  *opentype.Font
}

func LoadFonts(opts FontOptions) (*FontSet, error) {
	bold, err := loadFont(opts.BoldPath, gobold.TTF)
	if err != nil {
		return nil, fmt.Errorf("bold font: %w", err)
	}
	regular, err := loadFont(opts.RegularPath, goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("regular font: %w", err)
	}
	fs := &FontSet{bold: bold, regular: regular}
	if opts.ScriptPath != "" {
		if fs.script, err = loadFont(opts.ScriptPath, nil); err != nil {
			return nil, fmt.Errorf("script font: %w", err)
		}
		return fs, nil
	}
	for _, path := range opts.ScriptCandidates {
		if path == "" {
			continue
		}
		if f, err := loadFont(path, nil); err == nil {
			fs.script = f
			break
		}
	}
	return fs, nil
}

func loadFont(path string, fallback []byte) (*opentype.Font, error) {
	data := fallback
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		data = b
	}
	return opentype.Parse(data)
}

// ScriptCovers reports whether the script font has a glyph for every
// non-space rune of text.
func (fs *FontSet) ScriptCovers(text string) bool {
	if fs.script == nil {
		return false
	}
	var buf sfnt.Buffer
	for _, r := range text {
		if unicode.IsSpace(r) {
			continue
		}
		idx, err := fs.script.GlyphIndex(&buf, r)
		if err != nil || idx == 0 {
			return false
		}
	}
	return true
}

// FaceSizes are point sizes at 72 DPI, so they equal pixel sizes.
type FaceSizes struct {
	Title, Name, Body float64
}

// Faces are the per-render font faces. Script is nil when no script font is
// loaded.
type Faces struct {
	Title  font.Face
	Name   font.Face
	Body   font.Face
	Script font.Face
}

func (fs *FontSet) NewFaces(sizes FaceSizes) (*Faces, error) {
	f := &Faces{}
	var err error
	if f.Title, err = newFace(fs.bold, sizes.Title); err != nil {
		return nil, err
	}
	if f.Name, err = newFace(fs.bold, sizes.Name); err != nil {
		f.Close()
		return nil, err
	}
	if f.Body, err = newFace(fs.regular, sizes.Body); err != nil {
		f.Close()
		return nil, err
	}
	if fs.script != nil {
		if f.Script, err = newFace(fs.script, sizes.Title); err != nil {
			f.Close()
			return nil, err
		}
	}
	return f, nil
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

func (f *Faces) Close() {
	for _, face := range []font.Face{f.Title, f.Name, f.Body, f.Script} {
		if face != nil {
			_ = face.Close()
		}
	}
}
