package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/controllers"
	"github.com/qrdine/qrdine-api/middlewares"
)

func AuthRoutes(server *gin.Engine, auth *controllers.AuthController) {
	group := server.Group("/auth")
	{
		group.POST("/signup", auth.Signup)
		group.POST("/login", auth.Login)
		group.POST("/verify-email/:activationToken", auth.ActivateAccount)
		group.POST("/forgot-password", auth.SendPasswordResetLink)
		group.POST("/reset-password/:resetToken", auth.ResetPassword)
		group.POST("/change-password", middlewares.RequireAuth(), auth.ChangePassword)
	}
}
