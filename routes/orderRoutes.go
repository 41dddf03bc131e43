package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
	"github.com/qrdine/qrdine-api/middlewares"
	"github.com/qrdine/qrdine-api/models"
)

func OrderRoutes(server *gin.Engine, order *controllers.OrderController) {
	server.POST("/cart/:tableId/checkout", order.SubmitOrder)
	server.GET("/orders/:id", order.GetOrder)
	server.POST("/orders/:id/feedback", order.SubmitFeedback)

	staff := server.Group("/orders", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin, models.RoleKitchen, models.RoleStaff))
	{
		staff.GET("", order.GetOrders)
		staff.PATCH("/:id/advance", order.AdvanceOrder)
	}

	admin := server.Group("/orders", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.PATCH("/:id/cancel", order.CancelOrder)
		admin.DELETE("/:id", order.DeleteOrder)
	}
}
