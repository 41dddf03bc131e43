package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
	"github.com/qrdine/qrdine-api/middlewares"
	"github.com/qrdine/qrdine-api/models"
)

func AnalyticsRoutes(server *gin.Engine, analytics *controllers.AnalyticsController) {
	admin := server.Group("/analytics", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.GET("", analytics.GetAnalytics)
		admin.GET("/report", analytics.GetReport)
	}
}
