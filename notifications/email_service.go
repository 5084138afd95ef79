package notifications

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	config "github.com/anjiri1684/tutoring_center/configs"
	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

const (
	sendgridHost     = "https://api.sendgrid.com"
	sendgridEndpoint = "/v3/mail/send"
)

// Sender delivers one HTML message.
type Sender interface {
	Send(toName, toEmail, subject, htmlContent string) error
}

type Mailer struct {
	apiKey string
	from   *sgmail.Email
	send   func(req requestBody) (int, string, error)
}

type requestBody []byte

// NewMailer returns nil when SendGrid is not configured; a nil *Mailer logs
// and skips every message.
func NewMailer(cfg *config.Config) *Mailer {
	if cfg.SendgridAPIKey == "" || cfg.EmailSender == "" {
		log.Println("⚠️ Email service not configured. Missing SENDGRID_API_KEY or EMAIL_SENDER.")
		return nil
	}
	m := &Mailer{
		apiKey: cfg.SendgridAPIKey,
		from:   sgmail.NewEmail(cfg.EmailSenderName, cfg.EmailSender),
	}
	m.send = m.post
	log.Println("✅ Email service initialized successfully.")
	return m
}

func (m *Mailer) message(toName, toEmail, subject, htmlContent string) (*sgmail.SGMailV3, error) {
	if toEmail == "" || !strings.Contains(toEmail, "@") {
		return nil, fmt.Errorf("invalid recipient email: %q", toEmail)
	}
	if toName == "" {
		toName = toEmail[:strings.Index(toEmail, "@")]
	}

	p := sgmail.NewPersonalization()
	p.Subject = subject
	p.AddTos(sgmail.NewEmail(toName, toEmail))

	msg := sgmail.NewV3Mail()
	msg.SetFrom(m.from)
	msg.AddPersonalizations(p)
	msg.AddContent(sgmail.NewContent("text/html", htmlContent))
	return msg, nil
}

func (m *Mailer) post(body requestBody) (int, string, error) {
	req := sendgrid.GetRequest(m.apiKey, sendgridEndpoint, sendgridHost)
	req.Method = http.MethodPost
	req.Body = body
	res, err := sendgrid.API(req)
	if err != nil {
		return 0, "", err
	}
	return res.StatusCode, res.Body, nil
}

func (m *Mailer) Send(toName, toEmail, subject, htmlContent string) error {
	if m == nil {
		log.Printf("Email client not initialized, skipping email %q to %s", subject, toEmail)
		return nil
	}

	msg, err := m.message(toName, toEmail, subject, htmlContent)
	if err != nil {
		return err
	}

	status, body, err := m.send(sgmail.GetRequestBody(msg))
	if err != nil {
		return fmt.Errorf("failed to send email via SendGrid: %w", err)
	}
	if status >= http.StatusBadRequest {
		return fmt.Errorf("SendGrid API error: status %d: %s", status, body)
	}

	log.Printf("✅ Email sent successfully to %s", toEmail)
	return nil
}
