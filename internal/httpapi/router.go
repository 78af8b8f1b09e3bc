package httpapi

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"SafeSpace/internal/config"
	"SafeSpace/internal/metrics"
)

// NewRouter assembles the gin engine with middleware and all routes.
func NewRouter(cfg config.ServerConfig, threats ThreatService, logger *slog.Logger) *gin.Engine {
	if logger == nil {
		logger = slog.Default()
	}
	metrics.Register()

	r := gin.New()
	r.Use(
		RequestID(),
		AccessLog(logger.With("component", "http")),
		Recovery(logger.With("component", "http")),
		CORS(cfg.AllowedOrigin),
	)

	h := NewHandler(threats, logger)
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.GET("/threats", h.ListThreats)
	api.GET("/threats/:id", h.ThreatDetail)

	return r
}
