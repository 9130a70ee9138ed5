package routes

import (
	"github.com/gin-gonic/gin"

	"smartcity-be/controllers"
	"smartcity-be/middlewares"
)

// AuthRoutes sets up the authentication routes
func AuthRoutes(r *gin.Engine, ctrl *controllers.AuthController, secret string) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", ctrl.Register)
		auth.POST("/login", ctrl.Login)
		auth.GET("/me", middlewares.AuthMiddleware(secret), ctrl.Me)
	}
}
