package middlewares

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
)

// Context keys set by CheckAuth
const (
	CurrentUserKey = "currentUser"
	ModeratorKey   = "moderator"
)

// CheckAuth verifies the HS256 bearer token and records the caller's display name
// as the current user. A role claim equal to moderatorRole marks a moderator.
func CheckAuth(secret []byte, moderatorRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
			return
		}

		authToken := strings.Split(authHeader, " ")
		if len(authToken) != 2 || authToken[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			return
		}

		token, err := jwt.Parse(authToken[1], func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		exp, ok := claims["exp"].(float64)
		if !ok || float64(time.Now().Unix()) > exp {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token expired"})
			return
		}

		name, _ := claims["name"].(string)
		name = strings.TrimSpace(name)
		if name == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token carries no user name"})
			return
		}

		c.Set(CurrentUserKey, name)

		role, _ := claims["role"].(string)
		c.Set(ModeratorKey, moderatorRole != "" && role == moderatorRole)

		c.Next()
	}
}

// CurrentUser returns the identity recorded by CheckAuth.
func CurrentUser(c *gin.Context) string {
	return c.GetString(CurrentUserKey)
}
