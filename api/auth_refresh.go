package api

import (
	"errors"
	"net/http"

	"notable/notes-api/model"
	"notable/notes-api/pkg/security"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AuthRefresh mints a new access token from the refresh cookie. The
// refresh token itself is not rotated, it stays valid until its natural
// expiry.
func (a *API) AuthRefresh(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	tokenStr, err := c.Cookie(refreshCookieName)
	if err != nil || tokenStr == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":      "NO_REFRESH_TOKEN",
			"error":     "No refresh token",
			"requestID": requestID,
		})
		return
	}

	userID, err := a.Tokens.Verify(tokenStr, security.TokenKindRefresh)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"code":      "INVALID_REFRESH_TOKEN",
			"error":     "Invalid refresh token",
			"requestID": requestID,
		})
		return
	}

	// The subject may have been deleted since the token was issued
	var user model.User
	err = a.DB.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":      "INVALID_REFRESH_TOKEN",
				"error":     "Invalid refresh token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	accessToken, err := a.Tokens.Issue(user.ID, security.TokenKindAccess)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to issue access token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": accessToken,
	})
}
