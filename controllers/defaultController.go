package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func GetHome(ctx *gin.Context) {
	sendJSONResponse(ctx, http.StatusOK, gin.H{
		"service": "qrdine-api",
		"endpoints": gin.H{
			"auth":      "/auth",
			"menu":      "/menu",
			"cart":      "/cart/:tableId",
			"orders":    "/orders",
			"tables":    "/tables",
			"analytics": "/analytics",
			"stream":    "/ws/orders",
			"metrics":   "/metrics",
		},
	})
}
