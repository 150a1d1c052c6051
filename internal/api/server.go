// Package api serves simulations over HTTP: a synchronous simulate
// endpoint, parameter defaults for clients, and read access to the run
// archive when one is attached.
package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/jstammers/companies-house-abm/internal/config"
	"github.com/jstammers/companies-house-abm/internal/persistence"
)

// Simulations are CPU-bound; cap how many one client can request.
const simulateRateLimit = 60

// Server serves the simulator over HTTP.
type Server struct {
	Port int
	DB   *persistence.DB // nil disables the archive endpoints
	Base *config.Config  // nil means defaults
}

func (s *Server) base() *config.Config {
	if s.Base == nil {
		return config.Default()
	}
	return s.Base
}

// Router builds the gin engine with all routes attached.
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(requestLogger(), recovery())

	router.GET("/health", s.handleHealth)

	api := router.Group("/api/v1")
	{
		api.GET("/defaults", s.handleDefaults)
		api.POST("/simulate", rateLimit(NewRateLimiter(simulateRateLimit, time.Hour)), s.handleSimulate)
		api.GET("/runs", s.handleListRuns)
		api.GET("/runs/:id", s.handleGetRun)
	}

	return router
}

// Run serves the API until the listener fails.
func (s *Server) Run() error {
	handler := corsHandler().Handler(s.Router())
	addr := fmt.Sprintf(":%d", s.Port)
	slog.Info("HTTP API starting", "addr", addr, "archive", s.DB != nil)
	return http.ListenAndServe(addr, handler)
}

// corsHandler allows the localhost dev servers plus any origins named in
// the CORS_ORIGINS env var (comma-separated).
func corsHandler() *cors.Cors {
	origins := []string{
		"http://localhost:5173",
		"http://localhost:4173",
		"http://localhost:3000",
	}
	if env := os.Getenv("CORS_ORIGINS"); env != "" {
		for _, origin := range strings.Split(env, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
	})
}

// requestLogger logs one line per request.
func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		slog.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// recovery turns panics into a JSON 500 instead of a dropped connection.
func recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("handler panic", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{
				Code:    "INTERNAL_ERROR",
				Message: "an unexpected error occurred",
			},
		})
	})
}
