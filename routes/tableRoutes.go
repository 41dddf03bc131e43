package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
	"github.com/qrdine/qrdine-api/middlewares"
	"github.com/qrdine/qrdine-api/models"
)

func TableRoutes(server *gin.Engine, table *controllers.TableController) {
	staff := server.Group("/tables", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin, models.RoleStaff))
	{
		staff.GET("", table.GetTables)
		staff.GET("/:id", table.GetTable)
		staff.GET("/:id/qr", table.GetTableQR)
		staff.PATCH("/:id/occupancy", table.SetOccupancy)
	}

	admin := server.Group("/tables", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("", table.CreateTable)
		admin.PUT("/:id", table.UpdateTable)
		admin.DELETE("/:id", table.DeleteTable)
	}
}
