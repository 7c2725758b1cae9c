package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	inventoryhttp "github.com/orderops/shipsplit/internal/domains/inventory/adapters/http"
	orderhttp "github.com/orderops/shipsplit/internal/domains/orders/adapters/http"
)

// NewRouter registers the service routes on a fresh gin engine.
func NewRouter(webhook *orderhttp.WebhookHandler, inventory *inventoryhttp.Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.POST("/webhooks/orders", webhook.HandleNewOrders)
	router.POST("/inventory/upload", inventory.Upload)
	router.GET("/inventory", inventory.List)

	return router
}
