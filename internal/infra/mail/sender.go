package mail

import (
	"bytes"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"
)

var notificationTemplate = template.Must(template.New("notification").Parse(
	`<html><body>
<p>{{.Message}}</p>
<p><small>CRM notification ({{.Type}}). Do not reply to this email.</small></p>
</body></html>`))

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

// SendNotificationEmail delivers one queued notification over SMTP.
func (s *EmailSender) SendNotificationEmail(to, message, notificationType string) error {
	var body bytes.Buffer
	data := notificationEmailData{Message: message, Type: notificationType}
	if err := notificationTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to render notification template: %w", err)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subjectFor(notificationType))
	m.SetBody("text/html", body.String())

	d := gomail.NewDialer(s.Host, s.Port, s.User, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send SMTP email: %w", err)
	}

	return nil
}

func subjectFor(notificationType string) string {
	switch notificationType {
	case "LEAD_QUALIFIED":
		return "A lead you own was qualified"
	case "LEAD_CONVERTED":
		return "A lead you own was converted"
	case "ALERT":
		return "CRM alert"
	default:
		return "CRM notification"
	}
}
