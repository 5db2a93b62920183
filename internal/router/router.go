package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/craftedu/coursecraft-backend/internal/authz"
	"github.com/craftedu/coursecraft-backend/internal/config"
	"github.com/craftedu/coursecraft-backend/internal/handler"
	"github.com/craftedu/coursecraft-backend/internal/middleware"
	"github.com/craftedu/coursecraft-backend/internal/response"
	"github.com/craftedu/coursecraft-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	Course       *handler.CourseHandler
	Lesson       *handler.LessonHandler
	Resource     *handler.ResourceHandler
	Quiz         *handler.QuizHandler
	QuizQuestion *handler.QuizQuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	policy authz.Policy,
	handlers *Handlers,
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
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"}, "OK")
	})

	requireAuth := middleware.RequireAuth(authService)
	courseWrite := middleware.RequireCapability(policy, authz.OpCourseWrite)
	courseApprove := middleware.RequireCapability(policy, authz.OpCourseApprove)
	lessonWrite := middleware.RequireCapability(policy, authz.OpLessonWrite)
	resourceWrite := middleware.RequireCapability(policy, authz.OpResourceWrite)
	quizWrite := middleware.RequireCapability(policy, authz.OpQuizWrite)

	// Rate limiter for auth routes (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	auth.Use(authLimiter.Middleware())
	{
		auth.POST("/login", handlers.Auth.Login)

		// Authenticated profile routes
		auth.POST("/logout", requireAuth, handlers.Auth.Logout)
		auth.GET("/me", requireAuth, handlers.Auth.Me)
	}

	api := router.Group("/api/v1")

	// ─── 2. Courses ────────────────────────────────────────────────────
	// Reads are public; mutations need the matching capability. The
	// approveOrRejecte spelling is part of the published API.
	courses := api.Group("/courses")
	{
		courses.GET("", handlers.Course.ListAll)
		courses.GET("/approved/:isApproved", handlers.Course.ListByApproval)
		courses.GET("/reject/:isRejected", handlers.Course.ListByRejection)
		courses.GET("/instructor/:instructor", handlers.Course.ListByInstructor)
		courses.GET("/:courseId", handlers.Course.Get)

		courses.POST("", requireAuth, courseWrite, handlers.Course.Create)
		courses.PATCH("/approveOrRejecte/:courseId", requireAuth, courseApprove, handlers.Course.SetApproval)
		courses.PATCH("/:courseId", requireAuth, courseWrite, handlers.Course.Update)
		courses.DELETE("/:courseId", requireAuth, courseWrite, handlers.Course.Delete)
	}

	// ─── 3. Lessons ────────────────────────────────────────────────────
	lesson := api.Group("/lesson", requireAuth, lessonWrite)
	{
		lesson.POST("", handlers.Lesson.Create)
		lesson.PATCH("/:courseId/:lessonId", handlers.Lesson.Update)
		lesson.DELETE("/:courseId/:lessonId", handlers.Lesson.Delete)
	}

	// ─── 4. Resources (multipart) ──────────────────────────────────────
	resource := api.Group("/resource", requireAuth, resourceWrite)
	{
		resource.POST("", handlers.Resource.Create)
		resource.PATCH("/:courseId/:lessonId/:resourceId", handlers.Resource.Update)
		resource.DELETE("/:courseId/:lessonId/:resourceId", handlers.Resource.Delete)
	}

	// ─── 5. Quizzes + Questions ────────────────────────────────────────
	quiz := api.Group("/quiz", requireAuth, quizWrite)
	{
		quiz.POST("", handlers.Quiz.Create)
		quiz.PATCH("/:courseId/:lessonId/:quizId", handlers.Quiz.Update)
		quiz.DELETE("/:courseId/:lessonId/:quizId", handlers.Quiz.Delete)
	}

	quizQuestion := api.Group("/quizQuestion", requireAuth, quizWrite)
	{
		quizQuestion.POST("", handlers.QuizQuestion.Create)
		quizQuestion.PATCH("/:courseId/:lessonId/:quizId/:questionId", handlers.QuizQuestion.Update)
		quizQuestion.DELETE("/:courseId/:lessonId/:quizId/:questionId", handlers.QuizQuestion.Delete)
	}

	return router
}
