package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/onewave/qrcheckin-backend/internal/config"
)

// IsMasterKey is the gin context key holding whether the request carried
// the master password rather than the kiosk one.
const IsMasterKey = "is_master"

// PasswordAuth validates the shared-secret bearer token against the two
// configured passwords. Either password passes; the master password
// additionally flags the request as elevated for downstream handlers.
func PasswordAuth(cfg config.AuthConfig) gin.HandlerFunc {
	master := cleanSecret(cfg.MasterPassword)
	kiosk := cleanSecret(cfg.KioskPassword)

	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "No password provided",
				"code":    "MISSING_AUTH_HEADER",
			})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || strings.TrimSpace(parts[1]) == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid authorization header format. Expected: Bearer <token>",
				"code":    "INVALID_AUTH_FORMAT",
			})
			c.Abort()
			return
		}

		// Shell escaping on the kiosk devices sometimes injects
		// backslashes into the stored token.
		token := strings.ReplaceAll(strings.TrimSpace(parts[1]), `\`, "")

		isMaster := secretEqual(token, master)
		if !isMaster && !secretEqual(token, kiosk) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"message": "Invalid password",
				"code":    "INVALID_PASSWORD",
			})
			c.Abort()
			return
		}

		c.Set(IsMasterKey, isMaster)
		c.Next()
	}
}

// IsMaster reports whether the current request authenticated with the
// master password. Only meaningful after PasswordAuth ran.
func IsMaster(c *gin.Context) bool {
	value, exists := c.Get(IsMasterKey)
	if !exists {
		return false
	}
	isMaster, ok := value.(bool)
	return ok && isMaster
}

// cleanSecret strips whitespace and surrounding quotes that leak in from
// .env files.
func cleanSecret(secret string) string {
	secret = strings.TrimSpace(secret)
	secret = strings.Trim(secret, `"'`)
	return secret
}

func secretEqual(token, secret string) bool {
	if secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(secret)) == 1
}
