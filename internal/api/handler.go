package api

import (
	"context"
	"net/http"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/metrics"
	"github.com/BerylCAtieno/scheme-recommender/internal/models"
	"github.com/gin-gonic/gin"
)

// Recommender produces the free-text scheme list for a profile. It returns
// the prompt it used alongside the reply.
type Recommender interface {
	Recommend(ctx context.Context, p models.Profile) (query string, result string, err error)
}

type Handler struct {
	recommender Recommender
	logger      logger.Logger
}

func NewHandler(r Recommender, log logger.Logger) *Handler {
	return &Handler{
		recommender: r,
		logger:      log.With(map[string]interface{}{"component": "get_schemes"}),
	}
}

// Register mounts the recommendation routes on r.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api", h.Status)
	r.POST("/get_schemes", h.GetSchemes)
}

func (h *Handler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Scheme Recommender API is running"})
}

// GetSchemes answers a profile with the model's reply. Generation failures
// are reported in the body with status 200 so that form clients show them
// verbatim; only malformed requests get a 4xx.
func (h *Handler) GetSchemes(c *gin.Context) {
	var p models.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		h.logger.WithError(err).Warn("invalid request body", nil)
		c.JSON(http.StatusBadRequest, models.SchemeResponse{Error: "Invalid request body"})
		return
	}

	h.logger.Info("generating schemes", map[string]interface{}{
		"location":  p.Demographics.Location,
		"objective": p.Objective,
	})

	start := time.Now()
	query, result, err := h.recommender.Recommend(c.Request.Context(), p)
	if err != nil {
		metrics.RecommenderDuration.WithLabelValues("error").Observe(time.Since(start).Seconds())
		h.logger.WithError(err).Error("failed to generate schemes", nil)
		c.JSON(http.StatusOK, models.SchemeResponse{
			Query: query,
			Error: "Failed to generate schemes: " + err.Error(),
		})
		return
	}
	metrics.RecommenderDuration.WithLabelValues("ok").Observe(time.Since(start).Seconds())

	h.logger.Info("schemes generated", map[string]interface{}{"chars": len(result)})
	c.JSON(http.StatusOK, models.SchemeResponse{Query: query, Result: result})
}
