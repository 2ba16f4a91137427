package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/qbankhq/qbank-backend/internal/config"
	"github.com/qbankhq/qbank-backend/internal/handler"
	"github.com/qbankhq/qbank-backend/internal/middleware"
	"github.com/qbankhq/qbank-backend/internal/response"
	"github.com/qbankhq/qbank-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Question  *handler.QuestionHandler
	Set       *handler.QuestionSetHandler
	User      *handler.UserHandler
	Reference *handler.ReferenceHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	limiter *middleware.RateLimiter,
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

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	// The question listing is the only public API route.
	router.GET("/api/v1/questions", handlers.Question.ListQuestions)

	// ─── 2. Authenticated Group (Bearer JWT) ───────────────────────────
	// Writes are additionally rate limited per identity.
	authAPI := router.Group("/api/v1")
	authAPI.Use(middleware.RequireAuth(authService))
	rated := limiter.Middleware()
	{
		questions := authAPI.Group("/questions")
		{
			questions.POST("", rated, handlers.Question.CreateQuestion)
			questions.PUT("/:id", rated, handlers.Question.UpdateQuestion)
			questions.DELETE("/:id", rated, handlers.Question.DeleteQuestion)
		}

		sets := authAPI.Group("/sets")
		{
			sets.GET("", handlers.Set.ListSets)
			sets.POST("", rated, handlers.Set.CreateSet)
			sets.GET("/:id", handlers.Set.GetSet)
			sets.PUT("/:id", rated, handlers.Set.RenameSet)
			sets.GET("/:id/download", handlers.Set.DownloadSet)
			sets.POST("/:id/questions", rated, handlers.Set.AddQuestions)
			sets.DELETE("/:id/questions/:question_id", rated, handlers.Set.RemoveQuestion)
		}

		users := authAPI.Group("/users")
		{
			users.GET("/profile", handlers.User.GetProfile)
			users.POST("/profile", rated, handlers.User.UpdateProfile)
			users.GET("/profile/check", handlers.User.CheckProfile)
		}

		refs := authAPI.Group("/references")
		{
			refs.GET("/subjects", handlers.Reference.ListSubjects)
			refs.GET("/exams", handlers.Reference.ListExams)
			refs.GET("/question-types", handlers.Reference.ListQuestionTypes)
			refs.GET("/difficulties", handlers.Reference.ListDifficulties)
		}
	}

	return router
}
