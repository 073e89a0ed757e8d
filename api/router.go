// Package api contains all endpoints available
package api

import (
	"fmt"
	"time"

	"notable/notes-api/db"
	"notable/notes-api/internal/service"
	"notable/notes-api/pkg/middleware"
	"notable/notes-api/pkg/security"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB     *gorm.DB
	Router *gin.Engine
	Hasher *security.PasswordHasher
	Tokens *security.TokenMaker
	Mail   service.Mailer
}

func NewRouter() (*API, error) {
	a := &API{
		Hasher: security.NewHasher(viper.GetInt("security.bcrypt_cost")),
		Tokens: security.NewTokenMaker(
			viper.GetString("jwt.access_secret"),
			viper.GetString("jwt.refresh_secret"),
			time.Duration(viper.GetInt("jwt.access_expiry_min"))*time.Minute,
		),
		Mail: service.SMTPMailer{},
	}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     viper.GetStringSlice("cors.allowed_origins"),
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true

	jwt := middleware.NewJWTMiddleware(db, a.Tokens)

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register 		-> Registers a new user
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/login 		-> Logs in a user and returns an access token
		auth.POST("/login", a.AuthLogin)

		// POST /api/auth/refresh-token 	-> Mints a new access token from the refresh cookie
		auth.POST("/refresh-token", a.AuthRefresh)

		// POST /api/auth/logout 		-> Clears the refresh cookie
		auth.POST("/logout", a.AuthLogout)

		// GET /api/auth/me 			-> Returns the authenticated user
		auth.GET("/me", jwt, a.AuthMe)

		// HEAD /api/auth/validate		-> Validates an access token
		auth.HEAD("/validate", jwt, a.AuthValidate)

		// POST /api/auth/forgot-password 	-> Starts the password reset flow
		auth.POST("/forgot-password", a.AuthForgotPassword)

		// POST /api/auth/reset-password/:token	-> Redeems a reset token
		auth.POST("/reset-password/:token", a.AuthResetPassword)

		// PATCH /api/auth/change-password 	-> Changes the password of a logged in user
		auth.PATCH("/change-password", jwt, a.AuthChangePassword)
	}

	service.ResetTicketCleanup(time.Hour, db)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
