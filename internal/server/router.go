// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"github.com/gin-gonic/gin"

	"github.com/pdiddy/edustream/internal/app"
	"github.com/pdiddy/edustream/internal/logger"
)

// RouterConfig holds what the router needs.
type RouterConfig struct {
	App            *app.App
	Log            *logger.Logger
	AllowedOrigins []string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Log
	if log == nil {
		log = logger.Nop()
	}
	h := &handler{app: cfg.App, log: log.With("component", "http")}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowedOrigins))

	r.GET("/healthz", h.health)

	api := r.Group("/api")
	{
		api.GET("/state", h.state)
		api.POST("/navigate", h.navigate)
		api.POST("/search", h.search)

		api.GET("/categories", h.categories)
		api.GET("/courses", h.listCourses)
		api.GET("/courses/:id", h.getCourse)
		api.POST("/courses/:id/select", h.selectCourse)
		api.POST("/courses/:id/enroll", h.enroll)
		api.GET("/my-learning", h.myLearning)

		api.GET("/tutor", h.tutor)
		api.POST("/tutor/messages", h.tutorMessage)
	}
	return r
}
