package httpapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"SafeSpace/internal/domain"
	"SafeSpace/internal/scanner"
)

// ThreatService is the query side consumed by the API.
type ThreatService interface {
	List(ctx context.Context, location string) ([]domain.ThreatRecord, error)
	Detail(id int) domain.ThreatDetail
}

// Handler serves the threat API.
type Handler struct {
	threats ThreatService
	logger  *slog.Logger
}

// NewHandler constructs the API handlers.
func NewHandler(threats ThreatService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{threats: threats, logger: logger.With("component", "api")}
}

// Root is the liveness message.
func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "SafeSpace API is running"})
}

// Health reports service health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "message": "SafeSpace API is operational"})
}

// ListThreats handles GET /api/threats?location=.
func (h *Handler) ListThreats(c *gin.Context) {
	location := c.DefaultQuery("location", scanner.DefaultLocation)

	threats, err := h.threats.List(c.Request.Context(), location)
	if err != nil {
		h.logger.Error("list threats failed", "location", location, "error", err, "request_id", c.GetString(requestIDKey))
		c.JSON(http.StatusInternalServerError, errorBody(fmt.Sprintf("Error fetching threats: %v", err)))
		return
	}
	if threats == nil {
		threats = []domain.ThreatRecord{}
	}
	c.JSON(http.StatusOK, threats)
}

// ThreatDetail handles GET /api/threats/:id.
func (h *Handler) ThreatDetail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, errorBody("threat id must be an integer"))
		return
	}
	c.JSON(http.StatusOK, h.threats.Detail(id))
}
