package main

import (
	"ctoc/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func notifyHandlers(g *gin.RouterGroup, api *API) *gin.RouterGroup {
	g.
		POST("/notify", func(ctx *gin.Context) {
			var body types.NotifyRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "to, text, and channel are required"})
				return
			}
			if api.notifier == nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "notifications are not configured"})
				return
			}
			deliveryId, err := api.notifier.Send(ctx, body.To, body.Channel, body.Text)
			if err != nil {
				log.Printf("Notify error: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"status": "Notifications sent successfully", "delivery_id": deliveryId})
		})
	return g
}
