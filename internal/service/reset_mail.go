// Package service contains background and outbound services used by the
// API handlers
package service

import (
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

// Mailer sends the password reset email. It's an interface so handler
// tests can swap in a recorder instead of a real SMTP connection.
type Mailer interface {
	SendPasswordReset(to, rawToken string) error
}

type SMTPMailer struct{}

func (SMTPMailer) SendPasswordReset(to, rawToken string) error {
	from := viper.GetString("mail.sender")
	if to == from {
		return fmt.Errorf("invalid email address")
	}

	scheme := "http"
	if viper.GetBool("host.ssl.enabled") {
		scheme = "https"
	}

	resetLink := fmt.Sprintf("%v://%v/reset-password?token=%v",
		scheme, viper.GetString("host.domain"), rawToken)

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/html", fmt.Sprintf("Click <a href='%v'>here</a> to reset your password.<br><br>This link will expire in 1 hour. If you didn't request a reset you can ignore this email.", resetLink))

	d := gomail.NewDialer(
		viper.GetString("mail.host"),
		viper.GetInt("mail.port"),
		from,
		viper.GetString("mail.password"),
	)

	return d.DialAndSend(m)
}
