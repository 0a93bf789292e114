package main

import (
	"ctoc/src/types"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func inquiryHandlers(g *gin.RouterGroup, api *API) *gin.RouterGroup {
	g.
		GET("/inquiries", func(ctx *gin.Context) {
			inquiries, err := api.inquiries.List(ctx)
			if err != nil {
				log.Printf("Error fetching inquiries: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"inquiries": inquiries})
		}).
		GET("/inquiries/stats", func(ctx *gin.Context) {
			stats, err := api.inquiries.Stats(ctx)
			if err != nil {
				log.Printf("Error fetching stats: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, stats)
		}).
		GET("/inquiries/category/:category", func(ctx *gin.Context) {
			category := types.InquiryCategory(ctx.Params.ByName("category"))
			inquiries, err := api.inquiries.ListByCategory(ctx, category)
			if err != nil {
				log.Printf("Error fetching inquiries by category: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "category": category})
		}).
		GET("/inquiries/city/:city", func(ctx *gin.Context) {
			city := ctx.Params.ByName("city")
			inquiries, err := api.inquiries.ListByCity(ctx, city)
			if err != nil {
				log.Printf("Error fetching inquiries by city: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"inquiries": inquiries, "city": city})
		}).
		POST("/inquiries", func(ctx *gin.Context) {
			var body types.CreateInquiryRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "contact, city, and category are required"})
				return
			}
			inquiry, err := api.inquiries.Create(ctx, &body)
			if err != nil {
				log.Printf("Error creating inquiry: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"message": "Inquiry created successfully", "id": inquiry.ID})
		})
	return g
}

// adminHandlers holds the routes behind bearer auth.
func adminHandlers(g *gin.RouterGroup, api *API) *gin.RouterGroup {
	g.
		DELETE("/inquiries/:id", func(ctx *gin.Context) {
			var params types.SimpleRequestParams
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			if err := api.inquiries.Delete(ctx, params.ID); err != nil {
				log.Printf("Error deleting inquiry: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "Inquiry deleted successfully"})
		})
	return g
}
