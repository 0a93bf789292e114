package main

import (
	"ctoc/src/models"
	"ctoc/src/types"
	"log"
	"net/http"
	"strconv"
	"time"

	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

func authHandlers(g *gin.RouterGroup, api *API) *gin.RouterGroup {
	g.
		POST("/register", func(ctx *gin.Context) {
			var body types.RegisterUserRequestBody
			if err := ctx.ShouldBindJSON(&body); err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Email and password required"})
				return
			}
			if api.fauth == nil {
				ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "registration is not configured"})
				return
			}
			params := (&fbauth.UserToCreate{}).
				Email(body.Email).
				Password(body.Password)
			record, err := api.fauth.CreateUser(ctx, params)
			if err != nil {
				log.Printf("Error creating user: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
				return
			}

			user := models.User{UID: record.UID, Email: body.Email}
			if err := api.db.Create(&user).Error; err != nil {
				log.Printf("Error persisting user: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			token, err := generateJWT([]byte(api.cfg.JWTSecret), &user)
			if err != nil {
				log.Printf("Error generating JWT token: %s\n", err.Error())
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Error while processing request"})
				return
			}
			ctx.JSON(http.StatusOK, gin.H{"message": "User registered", "uid": record.UID, "token": token})
		})
	return g
}

func generateJWT(secret []byte, user *models.User) (string, error) {
	claims := types.Claims{
		Email: user.Email,
		Role:  user.Role,
		UID:   user.UID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}
