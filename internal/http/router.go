// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// correlation IDs, structured logging, panic recovery, metrics, rate
// limiting, CORS, security headers, and response compression.
//
// Middleware order matters:
//  1. RequestID: generate/propagate correlation id
//  2. Logger: structured access logs with the correlation id
//  3. Recovery: panics become JSON 500s
//  4. Body size limiter
//  5. Metrics
//  6. Rate limiter (per client IP)
//  7. CORS, security headers, gzip
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/config"
	"github.com/kdallas/go-branch-directory/internal/docstore"
	"github.com/kdallas/go-branch-directory/internal/http/handlers"
	"github.com/kdallas/go-branch-directory/internal/http/middleware"
	"github.com/kdallas/go-branch-directory/internal/repo"
	"github.com/kdallas/go-branch-directory/internal/services"
)

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine: health and metrics, JSON fallbacks for unknown routes/methods,
// and the versioned branch/employee API mounted under cfg.APIBasePath.
func RegisterRoutes(r *gin.Engine, store docstore.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())

	// Global body size limit (1 MiB).
	r.Use(limitBody(1 << 20))

	// Prometheus metrics and the /metrics endpoint.
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Token-bucket rate limiter per client IP.
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst)
	r.Use(rl.Handler())

	// CORS posture: allow all when no origins are configured.
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"X-Request-ID", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS: cfg.Security.EnableHSTS,
		HSTSMaxAge: cfg.Security.HSTSMaxAge,
	}))

	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, apperr.CodeNotFound, "Route not found.")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "Method not allowed.")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: store → repos → services → handlers.
	branchSvc := services.NewBranchService(repo.NewBranchRepo(store))
	branchSvc.CascadeDelete = cfg.CascadeBranchDelete
	empSvc := services.NewEmployeeService(repo.NewEmployeeRepo(store))

	h := handlers.New(branchSvc, empSvc, handlers.Options{
		EmptyListNotFound: cfg.EmptyListNotFound,
	})

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Branches
		api.POST("/branches", h.CreateBranch)
		api.GET("/branches", h.ListBranches)
		api.GET("/branches/:id", h.GetBranch)
		api.PUT("/branches/:id", h.UpdateBranch)
		api.DELETE("/branches/:id", h.DeleteBranch)
		api.GET("/branches/:id/employees", h.GetEmployeesByBranch)

		// Employees
		api.POST("/employees", h.CreateEmployee)
		api.GET("/employees", h.ListEmployees)
		api.GET("/employees/department/:department", h.GetEmployeesByDepartment)
		api.GET("/employees/:id", h.GetEmployee)
		api.PUT("/employees/:id", h.UpdateEmployee)
		api.DELETE("/employees/:id", h.DeleteEmployee)
	}
}

// limitBody caps the request body size using http.MaxBytesReader; reads
// beyond the cap error downstream.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
