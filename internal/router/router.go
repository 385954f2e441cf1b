package router

import (
	"net/http"
	"time"

	"receiptscan/internal/extract"
	"receiptscan/internal/metrics"
	"receiptscan/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Options struct {
	CORSOrigins []string
	// MaxUploadBytes caps the extract request body; 0 disables the cap.
	MaxUploadBytes int64
}

func NewRouter(handler *extract.Handler, m *metrics.Metrics, logger *zap.Logger, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.AccessLog(logger),
		gin.Recovery(),
	)

	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:  opts.CORSOrigins,
			AllowMethods:  []string{"GET", "POST"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.RequestIDHeader},
			ExposeHeaders: []string{middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	r.POST("/extract_text/", middleware.BodyLimit(opts.MaxUploadBytes), handler.ExtractText)

	return r
}
