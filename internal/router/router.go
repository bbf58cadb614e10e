package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/pathfinder-edu/pathfinder-backend/internal/config"
	"github.com/pathfinder-edu/pathfinder-backend/internal/handler"
	"github.com/pathfinder-edu/pathfinder-backend/internal/middleware"
	"github.com/pathfinder-edu/pathfinder-backend/internal/response"
	"github.com/pathfinder-edu/pathfinder-backend/internal/service"
)

// catalogMaxAge is the public cache lifetime of the static course catalog.
const catalogMaxAge = 3600

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth       *handler.AuthHandler
	Profile    *handler.ProfileHandler
	Marks      *handler.MarksHandler
	Analysis   *handler.AnalysisHandler
	Resource   *handler.ResourceHandler
	History    *handler.HistoryHandler
	Proctoring *handler.ProctoringHandler
	WS         *handler.WSHandler
	System     *handler.SystemHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	authLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID", "Retry-After"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally. WebSocket upgrades are skipped.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", handlers.System.Health)

	// ─── 0. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1/public")
	publicAPI.Use(middleware.CacheControl(catalogMaxAge))
	{
		publicAPI.GET("/resources", handlers.Resource.ListResources)
	}

	requireStudent := []gin.HandlerFunc{
		middleware.RequireStudentJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	}

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(middleware.NoStore())
	{
		auth.POST("/register", authLimiter.Middleware(), handlers.Auth.Register)
		auth.POST("/login", authLimiter.Middleware(), handlers.Auth.Login)

		// Authenticated account routes
		auth.POST("/logout", append(requireStudent, handlers.Auth.Logout)...)
		auth.GET("/me", append(requireStudent, handlers.Auth.Me)...)
	}

	// ─── 2. Student Group (JWT + Single Device) ────────────────────────
	studentAPI := router.Group("/api/v1/student")
	studentAPI.Use(requireStudent...)
	studentAPI.Use(middleware.NoStore())
	{
		studentAPI.GET("/profile", handlers.Profile.GetProfile)
		studentAPI.PUT("/profile", handlers.Profile.UpdateProfile)

		studentAPI.GET("/marks", handlers.Marks.ListMarks)
		studentAPI.POST("/marks", handlers.Marks.SaveMarks)

		studentAPI.GET("/analysis", handlers.Analysis.GetAnalysis)
		studentAPI.GET("/roadmap", handlers.Analysis.GetRoadmap)

		studentAPI.GET("/assessments", handlers.History.ListAssessments)
		studentAPI.GET("/assessments/latest", handlers.History.LatestAssessment)

		studentAPI.POST("/proctoring/events", handlers.Proctoring.RecordEvent)
	}

	// ─── 3. WebSocket Group (Student WS Auth) ──────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(
		middleware.RequireStudentWSAuth(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		ws.GET("/student/assessment/stream", handlers.WS.AssessmentStream)
	}

	return router
}
