package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/farellandr/ticketmint/internal/helpers"
)

const userIDKey = "user_id"

// JWTAuthMiddleware accepts HS256 bearer tokens issued by the identity
// provider and exposes the caller identity under "user_id".
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found || tokenString == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Missing bearer token.")
			return
		}

		claims := jwt.MapClaims{}
		_, err := parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		})
		if err != nil {
			helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid token.")
			return
		}

		identity := identityFromClaims(claims)
		if identity == "" {
			helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
			return
		}

		c.Set(userIDKey, identity)
		c.Next()
	}
}

func identityFromClaims(claims jwt.MapClaims) string {
	if id, ok := claims[userIDKey].(string); ok && id != "" {
		return id
	}
	sub, _ := claims.GetSubject()
	return sub
}

// GetUserID returns the identity established by JWTAuthMiddleware.
func GetUserID(c *gin.Context) (string, bool) {
	id := c.GetString(userIDKey)
	return id, id != ""
}
