package email

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/Dan9191/crypto-companion/internal/config"
	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendPasswordReset sends the password reset link
func (s *Sender) SendPasswordReset(to, link string, expiresAt time.Time) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Reset your Crypto Companion password"

	body := "Hello,\n\n" +
		"Someone asked to reset the password of your Crypto Companion account.\n" +
		fmt.Sprintf("Follow this link to choose a new one:\n\n%s\n\n", link) +
		fmt.Sprintf("The link expires at %s.\n", expiresAt.UTC().Format("2006-01-02 15:04 MST")) +
		"If you did not ask for it, ignore this message."
	body += "\n\nBest regards,\nCrypto Companion"
	e.Text = []byte(body)

	return s.send(e)
}

// SendWelcome confirms a new account
func (s *Sender) SendWelcome(to string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = "Welcome to Crypto Companion"

	body := "Hello,\n\n" +
		"Your account has been created. Sign in to start tracking your portfolio.\n"
	body += "\nBest regards,\nCrypto Companion"
	e.Text = []byte(body)

	return s.send(e)
}

func (s *Sender) send(e *email.Email) error {
	if !s.cfg.MailEnabled() {
		s.logger.Warnf("SMTP not configured, dropping email to %v: %s", e.To, e.Subject)
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send email to %v: %v", e.To, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %v: %s", e.To, e.Subject)
	return nil
}
