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

type forgotPasswordBody struct {
	Email string `json:"email"`
}

// AuthForgotPassword starts the reset flow. The response is the same
// whether or not the account exists, and any internal failure after the
// lookup is only logged, so nothing about account existence leaks.
func (a *API) AuthForgotPassword(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data forgotPasswordBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})
		return
	}

	email := validators.NormalizeEmail(data.Email)

	if err := validators.EmailValidator(email); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var user model.User

	err := a.DB.Where("email = ?", email).First(&user).Error
	if err == nil {
		a.issueResetTicket(&user, requestID)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "If the email exists, a reset link was sent",
	})
}

func (a *API) issueResetTicket(user *model.User, requestID string) {
	raw, hash, err := security.NewResetToken()
	if err != nil {
		zap.L().Error("Failed to generate reset token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	expiry := time.Now().Add(security.ResetTokenTTL)

	err = a.DB.Model(user).Updates(map[string]any{
		"reset_token_hash":   hash,
		"reset_token_expiry": expiry,
	}).Error
	if err != nil {
		zap.L().Error("Failed to store reset ticket", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	// Only the raw token leaves the process, and only inside the email
	if err := a.Mail.SendPasswordReset(user.Email, raw); err != nil {
		zap.L().Error("Failed to send reset email", zap.Error(err), zap.String("userID", user.ID), zap.String("requestID", requestID))
		return
	}

	zap.L().Info("Reset ticket issued", zap.String("userID", user.ID), zap.String("requestID", requestID))
}
