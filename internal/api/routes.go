package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/youruser/eidbanner/internal/config"
	"github.com/youruser/eidbanner/internal/logger"
	"github.com/youruser/eidbanner/internal/metrics"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

func RegisterRoutes(r *gin.Engine, h *Handler, c config.CORSConfig) {
	r.HandleMethodNotAllowed = true
	r.NoMethod(methodNotAllowed)

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.POST("/banner", h.createBanner)
		api.OPTIONS("/banner", preflight(c))
	}
}

// NewRouter builds the engine with CORS, request ids, access logging and
// request metrics in front of the routes.
func NewRouter(h *Handler, c config.CORSConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestID(), accessLog(logger.WithNamespace("http")))
	r.Use(cors.New(corsConfig(c)))
	RegisterRoutes(r, h, c)
	return r
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowMethods: c.AllowedMethods,
		AllowHeaders: c.AllowedHeaders,
		MaxAge:       time.Duration(c.MaxAge) * time.Second,

		OptionsResponseStatusCode: http.StatusOK,
	}
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			cc.AllowAllOrigins = true
			return cc
		}
	}
	cc.AllowOrigins = c.AllowedOrigins
	return cc
}

// preflight answers OPTIONS requests the CORS middleware lets through, those
// without an Origin header.
func preflight(c config.CORSConfig) gin.HandlerFunc {
	origin := strings.Join(c.AllowedOrigins, ", ")
	methods := strings.Join(c.AllowedMethods, ", ")
	headers := strings.Join(c.AllowedHeaders, ", ")
	return func(ctx *gin.Context) {
		ctx.Header("Access-Control-Allow-Origin", origin)
		ctx.Header("Access-Control-Allow-Methods", methods)
		ctx.Header("Access-Control-Allow-Headers", headers)
		ctx.Header("Allow", methods)
		ctx.Status(http.StatusOK)
	}
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		elapsed := time.Since(start)
		status := c.Writer.Status()

		metrics.HTTPTotalDurations.WithLabelValues(c.Request.Method, strconv.Itoa(status)).Observe(elapsed.Seconds())
		log.WithFields(logrus.Fields{
			"request_id": c.GetString(requestIDKey),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     status,
			"bytes":      c.Writer.Size(),
			"elapsed":    elapsed.String(),
		}).Info("request")
	}
}
