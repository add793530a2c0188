package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apierrors "clinictriage/pkg/errors"

	"clinictriage/cmd/triage-service/internal/service"
)

// HTTPServer exposes the triage engine over HTTP.
type HTTPServer struct {
	engine  *gin.Engine
	service *service.TriageService
	logger  *zap.Logger
}

func NewHTTPServer(srv *service.TriageService, logger *zap.Logger) *HTTPServer {
	gin.SetMode(gin.ReleaseMode)

	s := &HTTPServer{
		engine:  gin.New(),
		service: srv,
		logger:  logger,
	}
	s.registerMiddlewares()
	s.registerRoutes()
	return s
}

// Engine returns the underlying gin engine for the http.Server handler.
func (s *HTTPServer) Engine() *gin.Engine {
	return s.engine
}

func (s *HTTPServer) registerMiddlewares() {
	s.engine.Use(gin.Recovery())
	s.engine.Use(s.requestLogger())
	s.engine.Use(s.corsMiddleware())
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

func (s *HTTPServer) corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func (s *HTTPServer) registerRoutes() {
	s.engine.GET("/health", s.health)

	api := s.engine.Group("/api/v1")
	{
		api.POST("/triage", s.triage)
	}
}

func (s *HTTPServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// triage runs one message through the pipeline. The engine's fallback
// contract means this handler always has a well-formed response to return
// for a valid request body.
func (s *HTTPServer) triage(c *gin.Context) {
	var req service.TriageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		e := apierrors.ErrBadRequest
		var verr validator.ValidationErrors
		if errors.As(err, &verr) {
			// The only validated field is the required message.
			e = apierrors.ErrEmptyMessage
		}
		c.JSON(int(e.Code), gin.H{"code": e.Code, "reason": e.Reason, "message": e.Message})
		return
	}

	resp := s.service.Triage(c.Request.Context(), &req)
	c.JSON(http.StatusOK, resp)
}
