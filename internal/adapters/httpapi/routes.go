package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/example/searchops/internal/ctxutil"
)

// OperatorHeader names the caller recorded on every change.
const OperatorHeader = "X-Operator"

// RegisterRoutes registers the /api endpoints on rg.
//
//	GET    /api/resources
//	POST   /api/resources
//	GET    /api/premises
//	POST   /api/premises
//	GET    /api/premises/:id
//	GET    /api/premises/:id/team
//	GET    /api/premises/:id/suggestion
//	POST   /api/premises/:id/allocations/sync
//	POST   /api/premises/:id/allocations
//	DELETE /api/premises/:id/allocations
//	POST   /api/premises/:id/recce
//	POST   /api/premises/:id/decision
//	POST   /api/premises/:id/allocation-status
//	PUT    /api/premises/:id/requirements
//	POST   /api/auto-assign
func RegisterRoutes(rg gin.IRouter, h *Handlers) {
	api := rg.Group("/api")

	api.GET("/resources", h.HandleListResources)
	api.POST("/resources", h.HandleCreateResource)

	api.GET("/premises", h.HandleListPremises)
	api.POST("/premises", h.HandleCreatePremise)

	p := api.Group("/premises/:id")
	p.GET("", h.HandleGetPremise)
	p.GET("/team", h.HandleTeam)
	p.GET("/suggestion", h.HandleSuggestion)
	p.POST("/allocations/sync", h.HandleSync)
	p.POST("/allocations", h.HandleAllocate)
	p.DELETE("/allocations", h.HandleRelease)
	p.POST("/recce", h.HandleRecce)
	p.POST("/decision", h.HandleDecision)
	p.POST("/allocation-status", h.HandleAllocationStatus)
	p.PUT("/requirements", h.HandleRequirements)

	api.POST("/auto-assign", h.HandleAutoAssign)
}

// NewRouter builds the engine with health, metrics and the API.
func NewRouter(h *Handlers, gatherer prometheus.Gatherer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), h.requestLogger(), operatorMiddleware())

	router.GET("/healthz", h.HandleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	RegisterRoutes(router, h)
	return router
}

// operatorMiddleware stores the X-Operator header in the request context.
func operatorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if op := c.GetHeader(OperatorHeader); op != "" {
			c.Request = c.Request.WithContext(ctxutil.WithOperator(c.Request.Context(), op))
		}
		c.Next()
	}
}

func (h *Handlers) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		h.logger.Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)))
	}
}

// Serve runs the HTTP server on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	logger.Info("http server shutting down")
	return srv.Shutdown(shutdownCtx)
}
