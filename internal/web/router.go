package web

import (
	"fmt"
	"net/http"

	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registrar mounts extra routes, such as the in-process recommender.
type Registrar interface {
	Register(r gin.IRouter)
}

// NewRouter assembles the server: middleware, form pages, health, metrics
// and any extra route sets.
func NewRouter(formHandler *Handler, log logger.Logger, extra ...Registrar) (*gin.Engine, error) {
	tmpl, err := Templates()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), AccessLog(log))
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	formHandler.Register(router)
	for _, r := range extra {
		r.Register(router)
	}
	return router, nil
}
