package main

import (
	"context"
	"ctoc/src/bookings"
	"ctoc/src/common"
	"ctoc/src/lib"
	"ctoc/src/models"
	"ctoc/src/types"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeqown/go-qrcode"
	"gorm.io/gorm"
)

func bookingHandlers(g *gin.RouterGroup, api *API) *gin.RouterGroup {
	g.
		POST("/reservations", func(ctx *gin.Context) {
			var body types.CreateReservationRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := api.coordinator.Reserve(ctx, bookings.ReserveParams{
				BuyerEmail:    body.BuyerEmail,
				BuyerName:     body.BuyerName,
				ItemID:        body.ItemID,
				ItemType:      body.ItemType,
				Amount:        body.Amount,
				PaymentMethod: body.PaymentMethod,
			})
			if err != nil {
				switch {
				case errors.Is(err, bookings.ErrItemNotFound):
					ctx.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
				case errors.Is(err, bookings.ErrAlreadyBooked):
					ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				default:
					log.Printf("Reserve failed: %s\n", err.Error())
					ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				}
				return
			}

			go publishBookingConfirmed(api, booking)
			go writeReceipt(api, booking)

			ctx.JSON(http.StatusCreated, gin.H{"data": booking})
		}).
		GET("/buyers/:email/bookings", func(ctx *gin.Context) {
			var params struct {
				Email string `uri:"email" binding:"required,email"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			views, err := api.ledger.ListForBuyer(ctx, params.Email)
			if err != nil {
				log.Printf("Error listing bookings for %s: %s\n", params.Email, err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": views, "count": len(views)})
		}).
		GET("/bookings/:transactionId", func(ctx *gin.Context) {
			var params struct {
				TransactionID string `uri:"transactionId" binding:"required"`
			}
			if err := ctx.ShouldBindUri(&params); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			booking, err := api.ledger.Find(ctx, params.TransactionID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					ctx.JSON(http.StatusNotFound, gin.H{"error": "booking not found"})
					return
				}
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"data": booking})
		})
	return g
}

func publishBookingConfirmed(api *API, booking *models.Booking) {
	if api.producer == nil {
		return
	}
	event := types.BookingConfirmedEvent{
		BookingID:     booking.ID,
		TransactionID: booking.TransactionID,
		BuyerEmail:    booking.BuyerEmail,
		BuyerName:     booking.BuyerName,
		ItemID:        booking.ItemID,
		ItemType:      booking.ItemType,
		ItemName:      booking.ItemName,
		ItemLocation:  booking.ItemLocation,
		Amount:        booking.Amount,
	}
	payload, err := json.Marshal(&event)
	if err != nil {
		log.Printf("Error serializing booking event: %s\n", err.Error())
		return
	}
	if err := lib.Publish(api.producer, common.BookingsConfirmedTopic, payload); err != nil {
		log.Printf("Error publishing booking event: %s\n", err.Error())
	}
}

// writeReceipt renders the booking's transaction id as a QR image under
// TEMP_DIR so /share/:filename can serve it, and caches the correlation.
func writeReceipt(api *API, booking *models.Booking) {
	qrc, err := qrcode.New(booking.TransactionID)
	if err != nil {
		log.Printf("Error generating receipt QR: %s\n", err.Error())
		return
	}
	filePath := path.Join(api.cfg.TempDir, booking.TransactionID+".png")
	if err := qrc.Save(filePath); err != nil {
		log.Printf("Could not save qrcode to file [%s]: %s\n", filePath, err.Error())
		return
	}
	if api.rdb != nil {
		if err := api.rdb.SetEx(context.Background(), booking.TransactionID, booking.ID, 2*time.Hour).Err(); err != nil {
			log.Printf("Error caching receipt for [%s]: %s\n", booking.TransactionID, err.Error())
		}
	}
}
