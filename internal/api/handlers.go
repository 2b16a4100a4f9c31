package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/youruser/eidbanner/internal/banner"
	"github.com/youruser/eidbanner/internal/logger"
)

// BannerGenerator renders a validated banner request.
type BannerGenerator interface {
	Generate(ctx context.Context, req banner.RenderRequest) (*banner.Output, error)
}

type Handler struct {
	gen         BannerGenerator
	cacheMaxAge time.Duration
	log         *logrus.Entry
}

func NewHandler(gen BannerGenerator, cacheMaxAge time.Duration) *Handler {
	return &Handler{
		gen:         gen,
		cacheMaxAge: cacheMaxAge,
		log:         logger.WithNamespace("api"),
	}
}

// bannerRequest is the wire form; absent fields take the documented defaults.
type bannerRequest struct {
	Style     *int    `json:"style"`
	UserName  *string `json:"userName"`
	UserID    string  `json:"userId"`
	AvatarURL string  `json:"avatarUrl"`
	ShareURL  string  `json:"shareUrl"`
	Animated  bool    `json:"animated"`
	Quality   string  `json:"quality"`
}

func (b bannerRequest) toRenderRequest() banner.RenderRequest {
	req := banner.RenderRequest{
		Style:     int(banner.StyleClassic),
		UserName:  "User",
		UserID:    b.UserID,
		AvatarURL: b.AvatarURL,
		ShareURL:  b.ShareURL,
		Animated:  b.Animated,
		Quality:   b.Quality,
	}
	if b.Style != nil {
		req.Style = *b.Style
	}
	if b.UserName != nil {
		req.UserName = *b.UserName
	}
	if req.Quality == "" {
		req.Quality = "high"
	}
	return req
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *Handler) createBanner(c *gin.Context) {
	var body bannerRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	req := body.toRenderRequest()

	out, err := h.gen.Generate(c.Request.Context(), req)
	if err != nil {
		if banner.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		var genErr *banner.GenerationError
		if errors.As(err, &genErr) {
			h.log.WithField("request_id", c.GetString(requestIDKey)).Errorf("generation failed at %s: %v", genErr.Op, genErr.Err)
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate banner",
			"message": err.Error(),
		})
		return
	}

	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", int(h.cacheMaxAge.Seconds())))
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

func methodNotAllowed(c *gin.Context) {
	c.JSON(http.StatusMethodNotAllowed, gin.H{"error": "Method not allowed"})
}
