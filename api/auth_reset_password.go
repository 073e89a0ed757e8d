package api

import (
	"errors"
	"net/http"
	"time"

	"notable/notes-api/model"
	"notable/notes-api/pkg/security"
	"notable/notes-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resetPasswordBody struct {
	Password string `json:"password"`
}

// AuthResetPassword redeems a reset token. "Unknown token" and "expired
// token" collapse into one response on purpose.
func (a *API) AuthResetPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	rawToken := c.Param("token")
	if rawToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Reset token is missing",
			"requestID": requestID,
		})
		return
	}

	var data resetPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	if err := validators.PasswordValidator(data.Password); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"code":      "WEAK_PASSWORD",
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := a.DB.
		Where("reset_token_hash = ? AND reset_token_expiry > ?", security.HashResetToken(rawToken), time.Now()).
		First(&user).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{
				"code":      "INVALID_OR_EXPIRED_TOKEN",
				"error":     "Invalid or expired token",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up reset ticket", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	hash, err := a.Hasher.Hash(data.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to hash password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Clearing the ticket in the same update makes the token single-use
	err = a.DB.Model(&user).Updates(map[string]any{
		"password_hash":      hash,
		"reset_token_hash":   nil,
		"reset_token_expiry": nil,
	}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update password", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("Password reset", zap.String("userID", user.ID), zap.String("requestID", requestID))

	// No auto-login, the user signs in with the new password
	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successful",
	})
}
