// Package server exposes a catalog over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/wuxler/rxb/pkg/catalog"
	"github.com/wuxler/rxb/pkg/errdefs"
	"github.com/wuxler/rxb/pkg/recipe"
	"github.com/wuxler/rxb/pkg/util/xregexp"
	"github.com/wuxler/rxb/pkg/xlog"
)

// DefaultShutdownTimeout bounds the time Serve waits for in-flight requests
// when Config.ShutdownTimeout is not set.
const DefaultShutdownTimeout = 5 * time.Second

// Config holds the listener settings of Serve.
type Config struct {
	Address         string
	ShutdownTimeout time.Duration
}

// PatternList is the response of GET /v1/patterns.
type PatternList struct {
	Patterns []catalog.Pattern `json:"patterns"`
}

// MatchRequest is the body of POST /v1/patterns/:name/match.
type MatchRequest struct {
	Input string `json:"input"`
}

// MatchResponse is the response of POST /v1/patterns/:name/match.
type MatchResponse struct {
	Match  bool     `json:"match"`
	Groups []string `json:"groups,omitempty"`
}

// ErrorResponse is the body of failed requests.
type ErrorResponse struct {
	Error string `json:"error"`
}

// NewRouter returns the gin engine serving cat.
func NewRouter(cat *catalog.Catalog) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger())

	h := &handler{catalog: cat}
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	v1 := router.Group("/v1")
	v1.GET("/patterns", h.listPatterns)
	v1.GET("/patterns/:name", h.getPattern)
	v1.POST("/patterns/:name/match", h.matchPattern)
	v1.POST("/render", h.render)
	return router
}

// Serve listens on cfg.Address until ctx is done, then shuts the server down
// gracefully.
func Serve(ctx context.Context, cfg Config, handler http.Handler) error {
	timeout := cfg.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultShutdownTimeout
	}
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		xlog.C(ctx).Error("server shutdown failed", "error", err)
		return err
	}
	xlog.C(ctx).Info("server stopped")
	return nil
}

type handler struct {
	catalog *catalog.Catalog
}

func (h *handler) listPatterns(c *gin.Context) {
	patterns, err := h.catalog.RenderAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, PatternList{Patterns: patterns})
}

func (h *handler) getPattern(c *gin.Context) {
	p, err := h.catalog.Render(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handler) matchPattern(c *gin.Context) {
	var req MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	re, err := h.catalog.Compile(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	groups, ok := xregexp.Submatches(re, req.Input)
	c.JSON(http.StatusOK, MatchResponse{Match: ok, Groups: groups})
}

func (h *handler) render(c *gin.Context) {
	var r recipe.Recipe
	if err := c.ShouldBindJSON(&r); err != nil {
		abortWithError(c, errdefs.NewE(errdefs.ErrInvalidParameter, err))
		return
	}
	p, err := h.catalog.RenderRecipe(c.Request.Context(), r)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// StatusCode maps the error classes of errdefs to HTTP status codes.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, errdefs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errdefs.ErrInvalidParameter):
		return http.StatusBadRequest
	case errdefs.IsAny(err, errdefs.ErrAlreadyExists, errdefs.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, errdefs.ErrUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func abortWithError(c *gin.Context, err error) {
	status := StatusCode(err)
	if status >= http.StatusInternalServerError {
		xlog.C(c.Request.Context()).Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: err.Error()})
}

// requestLogger carries a request scoped logger in the request context and
// logs every request at debug level.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		ctx := xlog.WithContext(c.Request.Context(), "method", c.Request.Method, "path", c.Request.URL.Path)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
		xlog.C(ctx).DebugContext(ctx, "request served",
			"status", c.Writer.Status(), "latency", time.Since(start))
	}
}
