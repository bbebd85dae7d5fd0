// Package mailer sends transactional email through SendGrid: account
// verification links, password reset links and booking confirmations.
package mailer

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer wraps a SendGrid client with a fixed sender identity.
type Mailer struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// New builds a Mailer with an explicit key and sender.
func New(apiKey, fromEmail, fromName string) *Mailer {
	return &Mailer{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

// NewFromEnv builds a Mailer from SENDGRID_API_KEY, SENDGRID_FROM_EMAIL
// and SENDGRID_FROM_NAME.  It returns nil when the key or sender
// address is unset so callers can run without outbound email.
func NewFromEnv() *Mailer {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	fromEmail := os.Getenv("SENDGRID_FROM_EMAIL")
	if apiKey == "" || fromEmail == "" {
		return nil
	}
	fromName := os.Getenv("SENDGRID_FROM_NAME")
	if fromName == "" {
		fromName = "SportHall"
	}
	return New(apiKey, fromEmail, fromName)
}

func (m *Mailer) send(toName, toEmail, subject, plain, html string) error {
	from := mail.NewEmail(m.fromName, m.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	msg := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := m.client.Send(msg)
	if err != nil {
		return fmt.Errorf("sendgrid send to %s: %w", toEmail, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

// SendVerification mails the account activation link issued at
// registration.
func (m *Mailer) SendVerification(toName, toEmail, link string) error {
	plain := fmt.Sprintf("Hi %s,\n\nPlease verify your email by visiting:\n%s\n\nIf you did not register, you can ignore this message.", toName, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Please verify your email by clicking the link below:</p><p><a href=%q>Verify email</a></p><p>If you did not register, you can ignore this message.</p>`, toName, link)
	return m.send(toName, toEmail, "Verify your email", plain, html)
}

// SendPasswordReset mails a reset link.  The link expires shortly
// after issue, so the copy says so.
func (m *Mailer) SendPasswordReset(toName, toEmail, link string) error {
	plain := fmt.Sprintf("Hi %s,\n\nReset your password by visiting:\n%s\n\nThe link expires in 10 minutes. If you did not request a reset, you can ignore this message.", toName, link)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Reset your password by clicking the link below:</p><p><a href=%q>Reset password</a></p><p>The link expires in 10 minutes. If you did not request a reset, you can ignore this message.</p>`, toName, link)
	return m.send(toName, toEmail, "Reset your password", plain, html)
}

// SendBookingConfirmation mails the details of a confirmed booking.
func (m *Mailer) SendBookingConfirmation(toName, toEmail, sport, court, date, timeSlot string) error {
	plain := fmt.Sprintf("Hi %s,\n\nYour booking is confirmed.\n\nSport: %s\nCourt: %s\nDate: %s\nTime: %s", toName, sport, court, date, timeSlot)
	html := fmt.Sprintf(`<p>Hi %s,</p><p>Your booking is confirmed.</p><ul><li>Sport: %s</li><li>Court: %s</li><li>Date: %s</li><li>Time: %s</li></ul>`, toName, sport, court, date, timeSlot)
	return m.send(toName, toEmail, "Booking confirmed", plain, html)
}
