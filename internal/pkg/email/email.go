package email

import (
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"
)

// Sender is the notification sink consumed by the services. Delivery is
// best-effort: callers log failures and never roll back a state transition
// because a message could not be sent.
type Sender interface {
	SendReportStatusEmail(toEmail, toName, reportTitle, newStatus, note string) error
	SendThreadModerationEmail(toEmail, toName, threadTitle, newStatus, reason string) error
	SendInviteEmail(toEmail, code string) error
	SendPasswordResetEmail(toEmail, toName, token string) error
	SendWelcomeEmail(toEmail, toName string) error
}

// SMTPConfig holds configuration for the SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	BaseURL   string // base URL of the web application, used in links
}

type smtpSender struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSender creates an SMTP-backed Sender. When credentials are not
// configured it degrades to logging the message, which keeps development
// setups working without a mail server.
func NewSender(config SMTPConfig, logger zerolog.Logger) Sender {
	return &smtpSender{config: config, logger: logger}
}

func (s *smtpSender) SendReportStatusEmail(toEmail, toName, reportTitle, newStatus, note string) error {
	subject := fmt.Sprintf("Your report is now %s - Sustainable Cities", newStatus)
	extra := ""
	if note != "" {
		extra = fmt.Sprintf("<p>%s</p>", note)
	}
	body := fmt.Sprintf(`
		<html><body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2e7d32;">Report update</h2>
			<p>Hello %s,</p>
			<p>Your report <strong>%s</strong> has moved to status <strong>%s</strong>.</p>
			%s
			<p><a href="%s/my-reports">View your reports</a></p>
		</div>
		</body></html>`, toName, reportTitle, newStatus, extra, s.config.BaseURL)
	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *smtpSender) SendThreadModerationEmail(toEmail, toName, threadTitle, newStatus, reason string) error {
	subject := fmt.Sprintf("Your forum thread was %s - Sustainable Cities", newStatus)
	extra := ""
	if reason != "" {
		extra = fmt.Sprintf("<p>Moderator note: %s</p>", reason)
	}
	body := fmt.Sprintf(`
		<html><body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2e7d32;">Forum moderation</h2>
			<p>Hello %s,</p>
			<p>Your thread <strong>%s</strong> was <strong>%s</strong>.</p>
			%s
		</div>
		</body></html>`, toName, threadTitle, newStatus, extra)
	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *smtpSender) SendInviteEmail(toEmail, code string) error {
	subject := "You are invited to join as a worker - Sustainable Cities"
	body := fmt.Sprintf(`
		<html><body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2e7d32;">Worker invitation</h2>
			<p>You have been invited to join Sustainable Cities as a worker.</p>
			<p>Your invitation code: <strong style="font-family: monospace;">%s</strong></p>
			<p><a href="%s/worker-signup">Complete your signup</a></p>
		</div>
		</body></html>`, code, s.config.BaseURL)
	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *smtpSender) SendPasswordResetEmail(toEmail, toName, token string) error {
	subject := "Reset your password - Sustainable Cities"
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.config.BaseURL, token)
	body := fmt.Sprintf(`
		<html><body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2e7d32;">Password reset</h2>
			<p>Hello %s,</p>
			<p>We received a request to reset your password. Click the button below to continue:</p>
			<div style="text-align: center; margin: 30px 0;">
				<a href="%s" style="background-color: #2e7d32; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Reset password</a>
			</div>
			<p>This link expires in 1 hour. If you did not request a reset, you can ignore this email.</p>
		</div>
		</body></html>`, toName, resetURL)
	return s.sendHTMLEmail(toEmail, subject, body)
}

func (s *smtpSender) SendWelcomeEmail(toEmail, toName string) error {
	subject := "Welcome to Sustainable Cities"
	body := fmt.Sprintf(`
		<html><body>
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #2e7d32;">Welcome!</h2>
			<p>Hello %s,</p>
			<p>Your account is ready. Report issues in your neighborhood and join the discussion in the community forum.</p>
			<p><a href="%s/dashboard">Go to your dashboard</a></p>
		</div>
		</body></html>`, toName, s.config.BaseURL)
	return s.sendHTMLEmail(toEmail, subject, body)
}

// sendHTMLEmail delivers a single HTML message over SMTP.
func (s *smtpSender) sendHTMLEmail(toEmail, subject, htmlBody string) error {
	if s.config.Username == "" || s.config.Password == "" {
		s.logger.Warn().
			Str("toEmail", toEmail).
			Str("subject", subject).
			Msg("SMTP credentials not configured - email not sent")
		return nil
	}

	from := fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	msg := "From: " + from + "\r\n" +
		"To: " + toEmail + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"MIME-Version: 1.0\r\n" +
		"Content-Type: text/html; charset=\"UTF-8\"\r\n" +
		"\r\n" + htmlBody

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)

	if !s.config.UseTLS {
		return smtp.SendMail(addr, auth, s.config.FromEmail, []string{toEmail}, []byte(msg))
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return fmt.Errorf("failed to dial SMTP server: %w", err)
	}
	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Close()

	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP auth failed: %w", err)
	}
	if err := client.Mail(s.config.FromEmail); err != nil {
		return err
	}
	if err := client.Rcpt(toEmail); err != nil {
		return err
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write([]byte(msg)); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
