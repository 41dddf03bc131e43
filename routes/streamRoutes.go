package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
)

func StreamRoutes(server *gin.Engine, stream *controllers.StreamController) {
	server.GET("/ws/orders", stream.StreamOrders)
}
