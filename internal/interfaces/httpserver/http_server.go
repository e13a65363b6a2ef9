package httpserver

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"colloquy/dialogue-api/internal/config"
	"colloquy/dialogue-api/internal/infrastructure"
	middleware "colloquy/dialogue-api/internal/interfaces/httpserver/middlewares"
	v1 "colloquy/dialogue-api/internal/interfaces/httpserver/routes/v1"
)

type HTTPServer struct {
	engine  *gin.Engine
	infra   *infrastructure.Infrastructure
	v1Route *v1.V1Route
	config  *config.Config
}

func NewHttpServer(
	v1Route *v1.V1Route,
	infra *infrastructure.Infrastructure,
	cfg *config.Config,
) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)
	server := HTTPServer{
		gin.New(),
		infra,
		v1Route,
		cfg,
	}
	server.engine.Use(middleware.RequestID())
	server.engine.Use(middleware.TracingMiddleware(cfg.ServiceName))
	server.engine.Use(middleware.LoggingMiddleware(infra.Logger))
	server.engine.Use(middleware.MetricsMiddleware())
	server.engine.Use(middleware.CORSMiddleware())

	server.engine.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(200, "ok")
	})

	return &server
}

func (httpServer *HTTPServer) Run() error {
	// API surface at the root and mirrored under /v1
	root := httpServer.engine.Group("/")
	httpServer.v1Route.RegisterRouter(root)

	v1Group := httpServer.engine.Group("/v1")
	httpServer.v1Route.RegisterRouter(v1Group)

	var g errgroup.Group
	g.Go(func() error {
		return httpServer.engine.Run(fmt.Sprintf(":%d", httpServer.config.HTTPPort))
	})
	g.Go(func() error {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		return http.ListenAndServe(fmt.Sprintf(":%d", httpServer.config.MetricsPort), mux)
	})
	return g.Wait()
}
