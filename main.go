package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/qrdine/qrdine-api/controllers"
	"github.com/qrdine/qrdine-api/initializers"
	"github.com/qrdine/qrdine-api/middlewares"
	"github.com/qrdine/qrdine-api/realtime"
	"github.com/qrdine/qrdine-api/routes"
	"github.com/qrdine/qrdine-api/services"
	"github.com/qrdine/qrdine-api/storage"
	"github.com/qrdine/qrdine-api/utils"
)

func allowedOrigins() []string {
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		return strings.Split(origins, ",")
	}
	return []string{"http://localhost:3000"}
}

func main() {
	initializers.LoadEnv()
	db := initializers.ConnectToDB()
	initializers.SyncDatabase(db)
	redisClient := initializers.ConnectToRedis()

	hub := realtime.NewHub()
	carts := services.NewCartService(storage.NewRedisCartStore(redisClient))

	var events services.EventPublisher
	if writer := initializers.NewOrderEventsWriter(); writer != nil {
		events = storage.NewKafkaOrderEvents(writer)
	}

	var notifier services.Notifier
	if webhook := os.Getenv("ORDER_WEBHOOK_URL"); webhook != "" {
		notifier = utils.NewWebhookNotifier(webhook)
	}

	orders := services.NewOrderService(storage.NewGormOrderStore(db), carts, hub, events, notifier)

	server := gin.Default()
	server.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	server.Use(middlewares.Metrics())

	routes.DefaultRoutes(server)
	routes.AuthRoutes(server, controllers.NewAuthController(db))
	routes.MenuRoutes(server, controllers.NewMenuController(db))
	routes.CartRoutes(server, controllers.NewCartController(carts, db))
	routes.OrderRoutes(server, controllers.NewOrderController(orders))
	routes.TableRoutes(server, controllers.NewTableController(db))
	routes.AnalyticsRoutes(server, controllers.NewAnalyticsController(orders))
	routes.StreamRoutes(server, controllers.NewStreamController(hub))
	server.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Seed the hub so the first websocket client gets a snapshot immediately.
	orders.PublishSnapshot(context.Background())

	server.Run()
}
