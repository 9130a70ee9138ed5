package routes

import (
	"github.com/gin-gonic/gin"

	"smartcity-be/controllers"
	"smartcity-be/middlewares"
)

// ReferenceRoutes sets up the city reference-data routes. Reads are
// public, writes live under the admin group.
func ReferenceRoutes(r *gin.Engine, ctrl *controllers.ReferenceController, secret string) {
	r.GET("/api/reference/:kind", ctrl.List)

	admin := r.Group("/api/admin/reference", middlewares.AuthMiddleware(secret), middlewares.RequireAdmin())
	{
		admin.POST("/:kind", ctrl.Create)
		admin.PUT("/:kind/:id", ctrl.Update)
		admin.DELETE("/:kind/:id", ctrl.Delete)
	}
}
