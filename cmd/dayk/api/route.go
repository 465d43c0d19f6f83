package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (s Server) registerRoute() {
	s.engine.NoRoute(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusNotFound)
	})

	s.engine.GET("/api/ping", s.ping)
	s.engine.GET("/api/series", s.listSeries)
	s.engine.GET("/api/series/:ticker", s.getSeries)
}

func (s Server) ping(c *gin.Context) {
	c.String(http.StatusOK, "pong")
}
