package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

func abortUnauthorized(c *gin.Context, message, detail string) {
	c.JSON(http.StatusUnauthorized, gin.H{
		"status":  "error",
		"message": message,
		"error":   detail,
	})
	c.Abort()
}

// AuthMiddleware validates the bearer token and places user_id and
// email into the request context for the risk handlers.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required", "Missing authorization token")
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortUnauthorized(c, "Invalid authorization header format", "Use format: Bearer {token}")
			return
		}

		jwtSecret := []byte(os.Getenv("JWT_SECRET_KEY"))
		token, err := jwt.Parse(parts[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return jwtSecret, nil
		})
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token", err.Error())
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok || !token.Valid {
			abortUnauthorized(c, "Invalid token claims", "Token validation failed")
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok {
			abortUnauthorized(c, "Invalid token claims", "user_id claim missing")
			return
		}
		email, _ := claims["email"].(string)

		c.Set("user_id", uint(userID))
		c.Set("email", email)
		c.Next()
	}
}
