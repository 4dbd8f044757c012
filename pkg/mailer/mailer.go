package mailer

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
)

// Mailer sends transactional mail over plain SMTP. When SMTP_HOST is not
// configured it logs the message instead, so local development works
// without a mail account.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

func New() *Mailer {
	return &Mailer{
		host: os.Getenv("SMTP_HOST"),
		port: os.Getenv("SMTP_PORT"),
		user: os.Getenv("SMTP_USER"),
		pass: os.Getenv("SMTP_PASSWORD"),
		from: os.Getenv("SMTP_FROM"),
	}
}

// SendOTP delivers a verification code to the given address.
func (m *Mailer) SendOTP(to, code, purpose string) error {
	subject := fmt.Sprintf("Your verification code - %s", purpose)
	body := fmt.Sprintf(
		"Use the following code to continue: %s\r\n\r\nThe code is valid for 10 minutes. If you did not request this, ignore this email.",
		code,
	)

	if m.host == "" {
		log.Printf("SMTP not configured, OTP for %s: %s", to, code)
		return nil
	}

	from := m.from
	if from == "" {
		from = m.user
	}

	msg := []byte(
		"From: " + from + "\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"\r\n" +
			body + "\r\n",
	)

	port := m.port
	if port == "" {
		port = "587"
	}

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	if err := smtp.SendMail(m.host+":"+port, auth, from, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
