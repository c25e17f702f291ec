package mailer

import (
	"fmt"
	"html"
	"strings"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendDocument(toEmail, title, content string) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

// SendDocument mails a saved draft to a recipient, typically the drafting
// lawyer themselves or a colleague on the matter.
func (s *emailService) SendDocument(toEmail, title, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Entwurf: %s", title))

	escaped := strings.ReplaceAll(html.EscapeString(content), "\n", "<br>")

	body := fmt.Sprintf(`
		<div style="font-family: Georgia, serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<div style="border: 1px solid #ddd; padding: 16px; background: #fafafa;">%s</div>
			<p style="color: #888; font-size: 12px;">Dieser Entwurf wurde automatisch erstellt und ist vor Versand anwaltlich zu prüfen.</p>
		</div>
	`, html.EscapeString(title), escaped)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send document to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Document sent to %s\n", toEmail)
	return nil
}
