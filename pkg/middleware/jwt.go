package middleware

import (
	"errors"
	"net/http"
	"strings"

	"notable/notes-api/model"
	"notable/notes-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware guards protected endpoints. It expects a bearer access
// token in the Authorization header and rejects expired tokens with a
// distinct code so clients know to refresh instead of re-login.
func NewJWTMiddleware(d *gorm.DB, tokens *security.TokenMaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.MustGet("requestID").(string)

		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":      "MISSING_TOKEN",
				"error":     "Bearer token required",
				"requestID": requestID,
			})
			return
		}

		userID, err := tokens.Verify(tokenStr, security.TokenKindAccess)
		if err != nil {
			if errors.Is(err, security.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":      "TOKEN_EXPIRED",
					"error":     "Session expired",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":      "TOKEN_INVALID",
				"error":     "Authentication failed",
				"requestID": requestID,
			})
			return
		}

		// Tokens carry no server-side revocation, so a deleted account has
		// to be caught here.
		var user model.User
		err = d.Where("id = ?", userID).First(&user).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
					"code":      "USER_NOT_FOUND",
					"error":     "Account not available",
					"requestID": requestID,
				})
				return
			}

			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":      "SERVER_ERROR",
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to load user for token subject", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		c.Set("userID", user.ID)
		c.Next()
	}
}
