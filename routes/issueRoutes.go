package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"smartcity-be/controllers"
	"smartcity-be/middlewares"
)

// IssueRoutes sets up the reporter-facing issue routes
func IssueRoutes(r *gin.Engine, ctrl *controllers.IssueController, secret string, limiter *redis.Client, limit int) {
	issue := r.Group("/api/issue", middlewares.AuthMiddleware(secret))
	{
		issue.POST("/create", middlewares.IssueRateLimiter(limiter, limit), ctrl.Create)
		issue.GET("/mine", ctrl.Mine)
		issue.GET("/badge", ctrl.Badge)
		issue.GET("/:id", ctrl.Get)
		issue.PUT("/:id", ctrl.Update)
		issue.POST("/:id/rate", ctrl.Rate)
		issue.POST("/:id/skip-rating", ctrl.SkipRating)
		issue.DELETE("/:id", ctrl.Delete)
	}
}
