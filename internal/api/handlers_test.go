package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gavv/httpexpect/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/youruser/eidbanner/internal/banner"
	"github.com/youruser/eidbanner/internal/config"
)

type fakeGenerator struct {
	mu    sync.Mutex
	calls []banner.RenderRequest
	out   *banner.Output
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, req banner.RenderRequest) (*banner.Output, error) {
	f.mu.Lock()
	f.calls = append(f.calls, req)
	f.mu.Unlock()
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return f.out, f.err
}

func newTestServer(t *testing.T, gen BannerGenerator) *httpexpect.Expect {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := config.Default()
	srv := httptest.NewServer(NewRouter(NewHandler(gen, time.Hour), cfg.CORS))
	t.Cleanup(srv.Close)
	return httpexpect.Default(t, srv.URL)
}

func TestHealth(t *testing.T) {
	e := newTestServer(t, &fakeGenerator{})
	e.GET("/api/health").Expect().
		Status(http.StatusOK).
		JSON().Object().HasValue("status", "ok")
}

func TestCreateBannerDefaults(t *testing.T) {
	gen := &fakeGenerator{out: &banner.Output{Data: []byte("png"), ContentType: banner.ContentTypePNG, Frames: 1}}
	e := newTestServer(t, gen)

	resp := e.POST("/api/banner").WithJSON(map[string]interface{}{}).Expect().
		Status(http.StatusOK)
	resp.Header("Content-Type").IsEqual("image/png")
	resp.Header("Cache-Control").IsEqual("public, max-age=3600")
	resp.Header(requestIDHeader).NotEmpty()
	resp.Body().IsEqual("png")

	require.Len(t, gen.calls, 1)
	assert.Equal(t, 1, gen.calls[0].Style)
	assert.Equal(t, "User", gen.calls[0].UserName)
	assert.Equal(t, "high", gen.calls[0].Quality)
	assert.False(t, gen.calls[0].Animated)
}

func TestCreateBannerAnimated(t *testing.T) {
	gen := &fakeGenerator{out: &banner.Output{Data: []byte("GIF89a"), ContentType: banner.ContentTypeGIF, Frames: 20}}
	e := newTestServer(t, gen)

	e.POST("/api/banner").
		WithHeader(requestIDHeader, "abc").
		WithJSON(map[string]interface{}{
			"style":     2,
			"userName":  "Aisha",
			"avatarUrl": "http://example.com/a.png",
			"animated":  true,
		}).
		Expect().
		Status(http.StatusOK).
		HasContentType("image/gif").
		Header(requestIDHeader).IsEqual("abc")

	require.Len(t, gen.calls, 1)
	assert.Equal(t, "Aisha", gen.calls[0].UserName)
	assert.Equal(t, "http://example.com/a.png", gen.calls[0].AvatarURL)
	assert.True(t, gen.calls[0].Animated)
}

func TestCreateBannerValidation(t *testing.T) {
	e := newTestServer(t, &fakeGenerator{})

	e.POST("/api/banner").WithJSON(map[string]interface{}{"style": 5}).Expect().
		Status(http.StatusBadRequest).
		JSON().Object().Value("error").String().Contains(banner.ErrInvalidStyle.Error())

	long := make([]rune, 51)
	for i := range long {
		long[i] = 'a'
	}
	e.POST("/api/banner").WithJSON(map[string]interface{}{"userName": string(long)}).Expect().
		Status(http.StatusBadRequest).
		JSON().Object().HasValue("error", banner.ErrUserNameTooLong.Error())

	e.POST("/api/banner").WithText("{not json").WithHeader("Content-Type", "application/json").Expect().
		Status(http.StatusBadRequest).
		JSON().Object().ContainsKey("error")
}

func TestCreateBannerFailure(t *testing.T) {
	gen := &fakeGenerator{err: &banner.GenerationError{Op: "encode", Frame: 3, Err: errors.New("boom")}}
	e := newTestServer(t, gen)

	obj := e.POST("/api/banner").WithJSON(map[string]interface{}{"animated": true}).Expect().
		Status(http.StatusInternalServerError).
		JSON().Object()
	obj.HasValue("error", "Failed to generate banner")
	obj.Value("message").String().Contains("boom")
}

func TestMethodNotAllowed(t *testing.T) {
	e := newTestServer(t, &fakeGenerator{})
	e.GET("/api/banner").Expect().
		Status(http.StatusMethodNotAllowed).
		JSON().Object().HasValue("error", "Method not allowed")
}

func TestCORSPreflight(t *testing.T) {
	e := newTestServer(t, &fakeGenerator{})
	e.OPTIONS("/api/banner").
		WithHeader("Origin", "http://example.com").
		WithHeader("Access-Control-Request-Method", "POST").
		Expect().
		Status(http.StatusOK).
		Header("Access-Control-Allow-Origin").IsEqual("*")
}

func TestOptionsWithoutOrigin(t *testing.T) {
	e := newTestServer(t, &fakeGenerator{})
	resp := e.OPTIONS("/api/banner").Expect().Status(http.StatusOK)
	resp.Header("Access-Control-Allow-Origin").IsEqual("*")
	resp.Header("Access-Control-Allow-Methods").IsEqual("GET, POST, OPTIONS")
	resp.Header("Access-Control-Allow-Headers").IsEqual("Content-Type")
	resp.Body().IsEmpty()
}

func TestMetricsEndpoint(t *testing.T) {
	e := newTestServer(t, &fakeGenerator{})
	e.GET("/api/health").Expect().Status(http.StatusOK)
	e.GET("/metrics").Expect().
		Status(http.StatusOK).
		Body().Contains("http_all_total_duration")
}
