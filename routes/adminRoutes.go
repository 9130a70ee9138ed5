package routes

import (
	"github.com/gin-gonic/gin"

	"smartcity-be/controllers"
	"smartcity-be/middlewares"
)

// AdminRoutes sets up the triage and dashboard routes
func AdminRoutes(r *gin.Engine, ctrl *controllers.AdminController, auth *controllers.AuthController, secret string) {
	admin := r.Group("/api/admin", middlewares.AuthMiddleware(secret), middlewares.RequireAdmin())
	{
		admin.GET("/issues", ctrl.Issues)
		admin.POST("/issue/:id/solution", ctrl.AttachSolution)
		admin.POST("/issue/:id/resolve", ctrl.Resolve)
		admin.POST("/issue/:id/complete", ctrl.Complete)
		admin.GET("/stats", ctrl.Stats)
		admin.GET("/users", auth.Users)
	}
}
