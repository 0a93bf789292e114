package main

import (
	"ctoc/src/types"
	"log"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
)

func itemHandlers(g *gin.RouterGroup, api *API) *gin.RouterGroup {
	g.
		GET("/items/property", func(ctx *gin.Context) {
			var filters types.PropertyQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			properties, err := api.catalog.ListProperties(ctx, filters)
			if err != nil {
				log.Printf("Error listing properties: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": properties, "count": len(properties)})
		}).
		GET("/items/vehicle", func(ctx *gin.Context) {
			var filters types.VehicleQueryFilters
			if err := ctx.ShouldBindQuery(&filters); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			vehicles, err := api.catalog.ListVehicles(ctx, filters)
			if err != nil {
				log.Printf("Error listing vehicles: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": vehicles, "count": len(vehicles)})
		}).
		POST("/items/property", func(ctx *gin.Context) {
			var body types.CreatePropertyRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: name, location, amount"})
				return
			}
			imageURLs := uploadImages(ctx, api, "properties")
			property, err := api.catalog.CreateProperty(ctx, &body, imageURLs)
			if err != nil {
				log.Printf("Error creating property: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": property})
		}).
		POST("/items/vehicle", func(ctx *gin.Context) {
			var body types.CreateVehicleRequestBody
			if err := ctx.ShouldBind(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields: brand, model, location, price"})
				return
			}
			imageURLs := uploadImages(ctx, api, "vehicles")
			vehicle, err := api.catalog.CreateVehicle(ctx, &body, imageURLs)
			if err != nil {
				log.Printf("Error creating vehicle: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusCreated, gin.H{"data": vehicle})
		})
	return g
}

// uploadImages stores any multipart images attached to a listing request and
// returns their public URLs. Upload happens before the listing row exists, so
// a failed upload just drops that image from the listing.
func uploadImages(ctx *gin.Context, api *API, prefix string) types.JSONBArray {
	urls := types.JSONBArray{}
	if api.media == nil {
		return urls
	}
	form, err := ctx.MultipartForm()
	if err != nil {
		return urls
	}
	for _, fh := range form.File["images"] {
		url, err := storeImage(ctx, api, prefix, fh)
		if err != nil {
			log.Printf("Error uploading image %s: %s\n", fh.Filename, err.Error())
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

func storeImage(ctx *gin.Context, api *API, prefix string, fh *multipart.FileHeader) (string, error) {
	file, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()
	contentType := fh.Header.Get("Content-Type")
	return api.media.Store(ctx, prefix, fh.Filename, contentType, file)
}
