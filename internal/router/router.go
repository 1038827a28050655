package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/codebuster009/chunkr-pdf-extraction/docs"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/handler"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/middleware"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	cfg *config.Config,
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	processH *handler.ProcessHandler,
	jobH *handler.JobHandler,
	sheetH *handler.SheetHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(cfg.CORS.AllowedOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Public auth route
	v1.POST("/auth/token", authH.Token)

	// Everything else requires a token when auth is configured.
	protected := v1.Group("")
	if cfg.Auth.Enabled() {
		protected.Use(middleware.Auth(authSvc))
	}

	process := protected.Group("/process")
	process.POST("/url", processH.ProcessURL)
	process.POST("/file", processH.ProcessFile)

	protected.POST("/debug/extract", processH.DebugExtract)

	jobs := protected.Group("/jobs")
	jobs.POST("", jobH.Create)
	jobs.GET("", jobH.List)
	jobs.GET("/:id", jobH.GetByID)
	jobs.GET("/:id/document", jobH.DocumentURL)

	sheets := protected.Group("/sheets")
	sheets.GET("", sheetH.List)
	sheets.GET("/export/csv", sheetH.ExportCSV)
	sheets.GET("/export/xlsx", sheetH.ExportXLSX)
	sheets.GET("/:id", sheetH.GetByID)

	return r
}
