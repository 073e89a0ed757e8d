package service

import (
	"time"

	"notable/notes-api/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ResetTicketCleanup periodically clears reset token hashes whose expiry
// has passed. Expired tickets are already unusable, this just keeps dead
// hashes out of the table.
func ResetTicketCleanup(t time.Duration, db *gorm.DB) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Reset ticket cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			err := db.
				Model(&model.User{}).
				Where("reset_token_expiry < ?", time.Now()).
				Updates(map[string]any{
					"reset_token_hash":   nil,
					"reset_token_expiry": nil,
				}).
				Error
			if err != nil {
				zap.L().Error("Failed to clean up expired reset tickets", zap.Error(err))
			}
		}
	}()
}
