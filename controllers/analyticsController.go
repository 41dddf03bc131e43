package controllers

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/qrdine/qrdine-api/services"
)

type AnalyticsController struct {
	orders *services.OrderService
}

func NewAnalyticsController(orders *services.OrderService) *AnalyticsController {
	return &AnalyticsController{orders: orders}
}

// GetAnalytics returns the dashboard rollup for ?range=7d|30d|year.
func (c *AnalyticsController) GetAnalytics(ctx *gin.Context) {
	window := ctx.DefaultQuery("range", services.RangeWeek)
	switch window {
	case services.RangeWeek, services.RangeMonth, services.RangeYear:
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "range must be one of 7d, 30d, year")
		return
	}

	orders, err := c.orders.List(ctx.Request.Context())
	if err != nil {
		log.Println("Unable to load orders for analytics:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to compute analytics")
		return
	}

	summary := services.Aggregate(orders, window, time.Now())
	sendJSONResponse(ctx, http.StatusOK, gin.H{"range": window, "summary": summary})
}

// GetReport returns the printable rollup for ?range=today|week|month.
func (c *AnalyticsController) GetReport(ctx *gin.Context) {
	window := ctx.DefaultQuery("range", services.ReportToday)
	switch window {
	case services.ReportToday, services.ReportWeek, services.ReportMonth:
	default:
		sendErrorResponse(ctx, http.StatusBadRequest, "range must be one of today, week, month")
		return
	}

	orders, err := c.orders.List(ctx.Request.Context())
	if err != nil {
		log.Println("Unable to load orders for report:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Failed to build report")
		return
	}

	report := services.BuildReport(orders, window, time.Now())
	sendJSONResponse(ctx, http.StatusOK, gin.H{"range": window, "report": report})
}
