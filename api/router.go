// Package api serves the solvers and GA strategies over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/lixenwraith/mazega/api/i"
	"github.com/lixenwraith/mazega/logging"
)

const shutdownTimeout = 5 * time.Second

// Router manages the HTTP server and its controllers
type Router struct {
	addr        string
	baseURL     string
	controllers []i.Controller
	logger      klog.Logger
}

// Config holds configuration settings for creating a new Router instance.
type Config struct {
	Addr        string // Address to listen on
	BaseURL     string // Base URL for API routes
	Mode        string // gin mode, empty keeps the current one
	Controllers []i.Controller
	Logger      klog.Logger
}

// NewRouter creates a new Router instance with the given configuration.
func NewRouter(config Config) *Router {
	if config.Mode != "" {
		gin.SetMode(config.Mode)
	}
	return &Router{
		addr:        config.Addr,
		baseURL:     config.BaseURL,
		controllers: config.Controllers,
		logger:      config.Logger,
	}
}

// Handler builds the gin engine with every controller under /v1
func (r *Router) Handler() http.Handler {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(r.logger))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(r.baseURL)
	{
		v1 := api.Group("/v1")
		for _, c := range r.controllers {
			c.Register(v1)
		}
	}
	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (r *Router) Run(ctx context.Context) error {
	srv := &http.Server{Addr: r.addr, Handler: r.Handler()}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	r.logger.V(logging.LevelRun).Info("api listening", "addr", r.addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger attaches the logger to every request context and logs the outcome
func requestLogger(logger klog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		started := time.Now()
		c.Request = c.Request.WithContext(klog.NewContext(c.Request.Context(), logger))

		c.Next()

		logger.V(logging.LevelRun).Info("request served",
			"method", c.Request.Method,
			"route", c.FullPath(),
			"status", c.Writer.Status(),
			"latency", time.Since(started),
		)
	}
}
