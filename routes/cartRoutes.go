package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
)

func CartRoutes(server *gin.Engine, cart *controllers.CartController) {
	group := server.Group("/cart/:tableId")
	{
		group.GET("", cart.GetCart)
		group.POST("/items", cart.AddCartItem)
		group.PATCH("/items/:itemId", cart.UpdateCartItem)
		group.DELETE("/items/:itemId", cart.RemoveCartItem)
		group.DELETE("", cart.ClearCart)
	}
}
