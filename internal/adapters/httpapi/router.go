package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/precieux0/instagram-repo2/internal/application"
	"github.com/precieux0/instagram-repo2/internal/logging"
	"github.com/precieux0/instagram-repo2/internal/ports"
)

// StatusSource is the read side of the bot plus its reconnect side channel.
type StatusSource interface {
	Snapshot() application.Status
	ForceReconnect(ctx context.Context) application.ReconnectResult
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type Options struct {
	Clock   ports.Clock
	Metrics http.Handler
	Logger  *slog.Logger
	// ReconnectTimeout bounds an operator reconnect, which includes the
	// randomized pre-login delay.
	ReconnectTimeout time.Duration
}

func NewRouter(source StatusSource, opts Options) *gin.Engine {
	clock := opts.Clock
	if clock == nil {
		clock = ports.SystemClock{}
	}
	logger := logging.OrDiscard(opts.Logger)
	reconnectTimeout := opts.ReconnectTimeout
	if reconnectTimeout <= 0 {
		reconnectTimeout = 3 * time.Minute
	}

	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{Status: "healthy", Timestamp: clock.Now()})
	})
	router.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, source.Snapshot())
	})

	reconnect := func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), reconnectTimeout)
		defer cancel()

		result := source.ForceReconnect(ctx)
		logger.Info("operator reconnect handled", "succeeded", result.Succeeded, "new_status", result.NewStatus)
		c.JSON(http.StatusOK, result)
	}
	router.GET("/reconnect", reconnect)
	router.POST("/reconnect", reconnect)

	if opts.Metrics != nil {
		router.GET("/metrics", gin.WrapH(opts.Metrics))
	}

	return router
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}
		logger.Log(c.Request.Context(), level, "http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
