// Package email sends outreach mail for leads. With a SendGrid API key the
// mail goes out for real; without one the service logs to console so
// development keeps working.
package email

import (
	"fmt"
	"html"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/leadpilot/leadpilot/pkg/models"
)

// Service handles outreach email sending
type Service struct {
	fromEmail   string
	fromName    string
	sendGridKey string
	useSendGrid bool
}

// NewService creates a new email service.
// If sendGridAPIKey is provided, emails are sent via SendGrid; otherwise
// they are logged to console (development mode).
func NewService(fromEmail, fromName, sendGridAPIKey string) *Service {
	useSendGrid := sendGridAPIKey != ""
	if useSendGrid {
		log.Printf("✅ Email service initialized with SendGrid")
	} else {
		log.Printf("⚠️  Email service in console-only mode (set SENDGRID_API_KEY for production)")
	}

	return &Service{
		fromEmail:   fromEmail,
		fromName:    fromName,
		sendGridKey: sendGridAPIKey,
		useSendGrid: useSendGrid,
	}
}

// SendOutreach sends the pitch or proposal for a lead to its contact address.
func (s *Service) SendOutreach(view models.LeadView, body string) error {
	if view.Email == "" {
		return fmt.Errorf("lead %s has no email address", view.Lead.ID)
	}

	subject := fmt.Sprintf("Quick question about %s", view.Lead.BusinessName)
	toName := view.Lead.ContactName
	if toName == "" {
		toName = view.Lead.BusinessName
	}

	return s.SendRawEmail(view.Email, toName, subject, htmlBody(body), body)
}

// SendRawEmail sends an email with custom subject and body content.
func (s *Service) SendRawEmail(toEmail, toName, subject, htmlBody, plainTextBody string) error {
	if s.useSendGrid {
		return s.sendViaSendGrid(toEmail, toName, subject, htmlBody, plainTextBody)
	}

	log.Printf("📧 [EMAIL] %s", subject)
	log.Printf("   To: %s <%s>", toName, toEmail)
	log.Printf("   From: %s <%s>", s.fromName, s.fromEmail)
	log.Printf("   ⚠️  Email NOT sent (development mode)")
	return nil
}

func (s *Service) sendViaSendGrid(toEmail, toName, subject, htmlBody, plainTextBody string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)

	message := mail.NewSingleEmail(from, subject, to, plainTextBody, htmlBody)

	client := sendgrid.NewSendClient(s.sendGridKey)
	response, err := client.Send(message)
	if err != nil {
		log.Printf("❌ SendGrid error: %v", err)
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		log.Printf("❌ SendGrid returned error status %d: %s", response.StatusCode, response.Body)
		return fmt.Errorf("sendgrid returned error status: %d", response.StatusCode)
	}

	log.Printf("✅ Email sent successfully to %s (SendGrid status: %d)", toEmail, response.StatusCode)
	return nil
}

// htmlBody converts plain text into a minimal paragraph layout.
func htmlBody(plain string) string {
	var b strings.Builder
	b.WriteString("<html><body>")
	for _, para := range strings.Split(plain, "\n\n") {
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
