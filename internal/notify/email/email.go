// Package email delivers quotes by email.
package email

import (
	"bytes"
	"context"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/domain"
	"github.com/jon4hz/quotevault/internal/notify"
	mail "github.com/xhit/go-simple-mail/v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.New("").ParseFS(templatesFS, "templates/*.html"))

// NotificationService sends quotes over SMTP.
type NotificationService struct {
	config *config.EmailConfig
}

var _ notify.Notifier = (*NotificationService)(nil)

// New creates a new email notification service.
func New(cfg *config.EmailConfig) *NotificationService {
	return &NotificationService{config: cfg}
}

func (n *NotificationService) Name() string { return "email" }

type quoteEmail struct {
	Title    string
	Quote    domain.Quote
	Link     template.URL
	AppName  string
	SentDate string
}

// Send emails the quote to the configured recipient, or to the signed in user.
func (n *NotificationService) Send(ctx context.Context, d notify.Delivery) error {
	to := n.config.To
	if to == "" {
		to = d.Recipient
	}
	if to == "" {
		log.Warn("no email recipient, skipping notification", "title", d.Title)
		return nil
	}

	body, err := n.generateEmailBody(d, time.Now())
	if err != nil {
		return fmt.Errorf("failed to generate email body: %w", err)
	}
	return n.sendEmail(ctx, to, fmt.Sprintf("[%s] %s", domain.AppName, d.Title), body, d.Message())
}

func (n *NotificationService) generateEmailBody(d notify.Delivery, now time.Time) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, "quote.html", quoteEmail{
		Title:    d.Title,
		Quote:    d.Quote,
		Link:     template.URL(d.Link()), //nolint:gosec
		AppName:  domain.AppName,
		SentDate: now.Format("Monday, January 2, 2006"),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func (n *NotificationService) sendEmail(ctx context.Context, to, subject, htmlBody, textBody string) error {
	server := mail.NewSMTPClient()
	server.Host = n.config.SMTPHost
	server.Port = n.config.SMTPPort
	server.Username = n.config.Username
	server.Password = n.config.Password

	switch {
	case n.config.UseSSL:
		server.Encryption = mail.EncryptionSSLTLS
	case n.config.UseTLS:
		server.Encryption = mail.EncryptionSTARTTLS
	default:
		server.Encryption = mail.EncryptionNone
	}
	if n.config.InsecureSkipVerify {
		server.TLSConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
	}

	server.KeepAlive = false
	server.ConnectTimeout = 10 * time.Second
	server.SendTimeout = 10 * time.Second
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < server.SendTimeout {
			server.SendTimeout = remaining
		}
	}

	smtpClient, err := server.Connect()
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer func() {
		if closeErr := smtpClient.Close(); closeErr != nil {
			log.Warn("failed to close SMTP client", "error", closeErr)
		}
	}()

	fromName := n.config.FromName
	if fromName == "" {
		fromName = domain.AppName
	}

	email := mail.NewMSG()
	email.SetFrom(fmt.Sprintf("%s <%s>", fromName, n.config.FromEmail)).
		AddTo(to).
		SetSubject(subject)
	email.SetBody(mail.TextHTML, htmlBody)
	email.AddAlternative(mail.TextPlain, textBody)

	if email.Error != nil {
		return fmt.Errorf("failed to build email: %w", email.Error)
	}
	if err := email.Send(smtpClient); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	log.Info("email sent", "to", to, "subject", subject)
	return nil
}
