package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/realtime"
)

type StreamController struct {
	hub *realtime.Hub
}

func NewStreamController(hub *realtime.Hub) *StreamController {
	return &StreamController{hub: hub}
}

// StreamOrders upgrades to a websocket that receives the full order snapshot
// on every lifecycle change.
func (c *StreamController) StreamOrders(ctx *gin.Context) {
	c.hub.HandleWS(ctx)
}
