package banner

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	imagepkg "github.com/youruser/eidbanner/internal/image"
)

func TestLookupTheme(t *testing.T) {
	names := map[int]string{1: "classic", 2: "lantern", 3: "starry", 4: "geometric"}
	for style, name := range names {
		th, err := LookupTheme(style)
		require.NoError(t, err)
		assert.Equal(t, name, th.Name())
		assert.Equal(t, Style(style), th.Style())
		assert.Len(t, th.Background(), 3)
	}
	_, err := LookupTheme(5)
	assert.True(t, errors.Is(err, ErrInvalidStyle))
	assert.Len(t, Themes(), 4)
}

func TestPhaseAt(t *testing.T) {
	assert.Equal(t, Phase(0), PhaseAt(0, 20))
	assert.Equal(t, Phase(0.5), PhaseAt(10, 20))
	assert.Equal(t, Phase(0.95), PhaseAt(19, 20))
	assert.Equal(t, Phase(0), PhaseAt(3, 0))
}

func TestClassicCrescentIsCut(t *testing.T) {
	s := imagepkg.NewSurface(800, 400)
	classicTheme{}.DrawMotifs(s, 0)
	img := s.Image()

	// (125,100) is only inside the outer disc, (180,92) inside both
	body, hole := img.RGBAAt(125, 100), img.RGBAAt(180, 92)
	assert.Equal(t, color.RGBA{R: 255, G: 215, A: 255}, body)
	assert.Less(t, hole.A, uint8(200))
}

func TestBackgroundIsACopy(t *testing.T) {
	for _, th := range Themes() {
		stops := th.Background()
		want := stops[0]
		stops[0] = color.NRGBA{}
		assert.Equal(t, want, th.Background()[0], th.Name())
	}
}

func TestMotifsStayOnCanvas(t *testing.T) {
	for _, th := range Themes() {
		for _, p := range []Phase{0, 0.25, 0.5, 0.999} {
			s := imagepkg.NewSurface(800, 400)
			assert.NotPanics(t, func() { th.DrawMotifs(s, p) }, th.Name())
		}
	}
}

func TestMotifsDependOnPhase(t *testing.T) {
	for _, th := range Themes() {
		a := imagepkg.NewSurface(800, 400)
		b := imagepkg.NewSurface(800, 400)
		th.DrawMotifs(a, 0)
		th.DrawMotifs(b, 0.25)
		assert.NotEqual(t, a.Image().Pix, b.Image().Pix, th.Name())
	}
}

func TestRenderIsPure(t *testing.T) {
	faces := testFaces(t)

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 12
	properties := gopter.NewProperties(parameters)

	properties.Property("identical inputs render identical frames", prop.ForAll(
		func(style int, phase float64, name string) bool {
			th, err := LookupTheme(style)
			if err != nil {
				return false
			}
			sc := &Scene{Theme: th, UserName: name, Faces: faces}
			a := imagepkg.NewSurface(320, 160)
			b := imagepkg.NewSurface(320, 160)
			if sc.RenderFrame(a, Phase(phase)) != nil || sc.RenderFrame(b, Phase(phase)) != nil {
				return false
			}
			return bytes.Equal(a.Image().Pix, b.Image().Pix)
		},
		gen.IntRange(1, 4),
		gen.Float64Range(0, 0.999),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
