package imagepkg

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"net/url"
	"time"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"github.com/sirupsen/logrus"
	"github.com/youruser/eidbanner/internal/logger"
	"github.com/youruser/eidbanner/internal/util"

	// webp avatars are common on social platforms
	_ "golang.org/x/image/webp"
)

const DefaultFetchTimeout = 10 * time.Second

// FetchResult is either Found with the fetched bytes or NotFound with the
// reason the fetch was given up.
type FetchResult struct {
	data   []byte
	found  bool
	reason string
}

func Found(data []byte) FetchResult { return FetchResult{data: data, found: true} }

func NotFound(reason string) FetchResult { return FetchResult{reason: reason} }

// Bytes returns the fetched bytes and whether there were any.
func (r FetchResult) Bytes() ([]byte, bool) { return r.data, r.found }

func (r FetchResult) Reason() string { return r.reason }

type FetcherOptions struct {
	Timeout   time.Duration
	UserAgent string
	MaxBytes  int64
	// Client overrides the HTTP client; its own timeout still applies.
	Client *http.Client
}

// Fetcher downloads avatar images. It never fails: every problem is a
// NotFound.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	maxBytes  int64
	log       *logrus.Entry
}

func NewFetcher(opts FetcherOptions) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultFetchTimeout
	}
	client := opts.Client
	if client == nil {
		client = util.NewHTTPClient(opts.Timeout)
	}
	return &Fetcher{
		client:    client,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
		log:       logger.WithNamespace("avatar"),
	}
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) FetchResult {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return f.miss(rawURL, "unsupported url")
	}

	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	body, err := util.GetBytes(ctx, f.client, rawURL, f.userAgent, f.maxBytes)
	if err != nil {
		return f.miss(rawURL, err.Error())
	}
	if !filetype.IsImage(body) {
		return f.miss(rawURL, "not an image")
	}
	return Found(body)
}

func (f *Fetcher) miss(rawURL, reason string) FetchResult {
	f.log.WithField("url", rawURL).Warnf("avatar unavailable: %s", reason)
	return NotFound(reason)
}

// DecodeAvatar decodes fetched bytes, honoring EXIF orientation.
func DecodeAvatar(data []byte) (image.Image, error) {
	return imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
}
