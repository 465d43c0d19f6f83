package api

import (
	"net/http"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/nzai/dayk/stores"
	"go.uber.org/zap"
)

// Server cached series api server
type Server struct {
	engine  *gin.Engine
	store   stores.Store
	address string
}

// NewServer create api server
func NewServer(store stores.Store, address string) *Server {
	gin.SetMode(gin.ReleaseMode)
	server := &Server{
		engine:  gin.New(),
		store:   store,
		address: address,
	}

	server.engine.Use(server.logger(), server.recovery())

	pprof.Register(server.engine, "/debug/pprof")

	server.registerRoute()

	zap.L().Debug("register route success")

	return server
}

// Run listen and serve
func (s Server) Run() error {
	zap.L().Info("api server listening", zap.String("address", s.address))
	return s.engine.Run(s.address)
}

func (s Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.engine.ServeHTTP(w, r)
}
