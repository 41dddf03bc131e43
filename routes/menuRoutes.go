package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
	"github.com/qrdine/qrdine-api/middlewares"
	"github.com/qrdine/qrdine-api/models"
)

func MenuRoutes(server *gin.Engine, menu *controllers.MenuController) {
	server.GET("/menu", menu.GetMenu)
	server.GET("/menu/:id", menu.GetMenuItem)

	admin := server.Group("/menu", middlewares.RequireAuth(), middlewares.RequireRole(models.RoleAdmin))
	{
		admin.POST("", menu.CreateMenuItem)
		admin.PUT("/:id", menu.UpdateMenuItem)
		admin.PATCH("/:id/availability", menu.ToggleAvailability)
		admin.DELETE("/:id", menu.DeleteMenuItem)
		admin.POST("/:id/image", menu.UploadMenuItemImage)
	}
}
