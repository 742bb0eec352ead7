package http

import (
	"net/http"
	"twitchchat/internal/app/infrastructure/config"
	"twitchchat/pkg/logger"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router *gin.Engine

	log     logger.Logger
	manager *config.Manager
}

func NewRouter(log logger.Logger, manager *config.Manager) *Router {
	r := &Router{
		router:  gin.Default(),
		log:     log,
		manager: manager,
	}
	cfg := manager.Get()

	pprofGroup := r.router.Group("/", gin.BasicAuth(gin.Accounts{
		"admin": cfg.App.AuthToken,
	}))
	pprof.Register(pprofGroup)

	r.router.GET("/metrics", gin.BasicAuth(gin.Accounts{
		"admin": cfg.App.AuthToken,
	}), gin.WrapH(promhttp.Handler()))

	r.router.GET("/healthz", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	return r
}

func (r *Router) Run() error {
	return r.router.Run(r.manager.Get().App.ListenAddr)
}
