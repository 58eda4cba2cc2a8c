package utils

import (
	"context"
	"fmt"
	"net/smtp"

	"warrantyhub/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/sirupsen/logrus"
)

// Mailer delivers a single HTML email.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Email is the process-wide mailer, chosen by NewMailer in main.
var Email Mailer = NoopMailer{}

// NewMailer picks SendGrid when an API key is configured, SMTP when a sender
// and password are configured, and a logging no-op otherwise.
func NewMailer(cfg *config.Config) Mailer {
	switch {
	case cfg.SendGridAPIKey != "" && cfg.EmailSender != "":
		return &SendGridMailer{
			client:   sendgrid.NewSendClient(cfg.SendGridAPIKey),
			from:     cfg.EmailSender,
			fromName: cfg.EmailSenderName,
		}
	case cfg.EmailSender != "" && cfg.Password != "":
		return &SMTPMailer{
			host:     cfg.SMTPHost,
			port:     cfg.SMTPPort,
			from:     cfg.EmailSender,
			fromName: cfg.EmailSenderName,
			password: cfg.Password,
		}
	default:
		return NoopMailer{}
	}
}

// SendGridMailer sends through the SendGrid v3 API.
type SendGridMailer struct {
	client   *sendgrid.Client
	from     string
	fromName string
}

func (m *SendGridMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := mail.NewSingleEmail(
		mail.NewEmail(m.fromName, m.from),
		subject,
		mail.NewEmail("", to),
		"",
		htmlBody,
	)

	resp, err := m.client.SendWithContext(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}

	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("Email sent via SendGrid")
	return nil
}

// SMTPMailer sends through a plain SMTP relay with PLAIN auth.
type SMTPMailer struct {
	host     string
	port     string
	from     string
	fromName string
	password string
}

func (m *SMTPMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	// MIME basics
	msg := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n"
	msg += fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.from)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", m.from, m.password, m.host)
	if err := smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp: %w", err)
	}

	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Debug("Email sent via SMTP")
	return nil
}

// NoopMailer only logs. Used when no provider is configured.
type NoopMailer struct{}

func (NoopMailer) Send(_ context.Context, to, subject, _ string) error {
	logrus.WithFields(logrus.Fields{"to": to, "subject": subject}).Info("Email provider not configured, skipping send")
	return nil
}

// emailTemplate wraps body content in the shared branded layout.
func emailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1F2A44; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 22px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1F2A44; line-height: 1.6; }
			.content h2 { color: #1F2A44; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #E07A1F; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #FFF4E8; padding: 15px; border-radius: 4px; border-left: 4px solid #E07A1F; margin: 20px 0; }
			.code { font-size: 36px; letter-spacing: 8px; text-align: center; color: #1F2A44; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>WARRANTY DESK</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				This is an automated message. Please do not reply to this email.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}
