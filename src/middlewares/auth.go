package middlewares

import (
	"ctoc/src/models"
	"ctoc/src/types"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// RequireAuth validates the bearer token issued at registration and loads the
// matching user. Only the admin surface (inquiry delete) sits behind it.
func RequireAuth(db *gorm.DB, jwtKey []byte) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		bearerToken := ctx.Request.Header.Get("Authorization")
		if !strings.HasPrefix(bearerToken, "Bearer") {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		reqToken := strings.Split(bearerToken, " ")[1]
		if reqToken == "" {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims := &types.Claims{}
		tkn, err := jwt.ParseWithClaims(reqToken, claims, func(t *jwt.Token) (any, error) {
			return jwtKey, nil
		})
		if err != nil {
			log.Printf("token error: %s\n", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		if !tkn.Valid {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		uid, err := strconv.Atoi(claims.Subject)
		if err != nil {
			log.Println("error parsing claims:", err.Error())
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		var user models.User
		if err := db.
			Model(&models.User{}).
			Where(&models.User{ID: uint(uid)}).
			First(&user).
			Error; err != nil {
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		ctx.Set("id", user.ID)
		ctx.Set("email", user.Email)
		ctx.Set("uid", user.UID)
		ctx.Set("role", user.Role)
	}
}
