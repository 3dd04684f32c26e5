package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"bumpline/pkg/utils"
)

func JWTAuthMiddleware() gin.HandlerFunc {

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.RespondError(c, http.StatusUnauthorized, "Authorization header missing or invalid")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ValidateToken(tokenString)

		if err != nil {
			utils.RespondError(c, http.StatusUnauthorized, "Invalid or expired token")
			c.Abort()
			return
		}

		// Pass the verified phone to the next handler
		c.Set("phone", claims.Phone)
		c.Next()
	}
}

// CronSecretMiddleware guards internal trigger endpoints with a shared secret.
func CronSecretMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" || c.GetHeader("X-Cron-Secret") != secret {
			utils.RespondError(c, http.StatusUnauthorized, "Missing or invalid cron secret")
			c.Abort()
			return
		}
		c.Next()
	}
}
