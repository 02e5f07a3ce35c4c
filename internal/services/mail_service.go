package services

import (
	"bytes"
	"fmt"
	"html/template"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type MailService struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	Enabled  bool
}

func NewMailService() *MailService {
	host := os.Getenv("SMTP_HOST")
	port := os.Getenv("SMTP_PORT")
	user := os.Getenv("SMTP_USER")
	pass := os.Getenv("SMTP_PASS")
	from := os.Getenv("SMTP_FROM")

	enabled := host != "" && port != "" && user != "" && pass != "" && from != ""
	if !enabled {
		log.Println("MailService disabled: missing SMTP environment variables")
	}

	return &MailService{
		Host:     host,
		Port:     port,
		Username: user,
		Password: pass,
		From:     from,
		Enabled:  enabled,
	}
}

var mailBodyTmpl = template.Must(template.New("mail").Parse(`<html>
<body style="font-family: sans-serif; color: #333;">
  <p>Hi {{.Name}},</p>
  <p>{{.Message}}</p>
  <p style="color: #888; font-size: 12px;">You are receiving this because of activity on your CommonGround account. Manage notifications from your dashboard.</p>
</body>
</html>`))

// sendAsync delivers mail on a goroutine. Email is a best-effort side
// channel: failures are logged, never returned to the caller.
func (s *MailService) sendAsync(to []string, subject string, body string) {
	if !s.Enabled {
		return
	}

	go func() {
		auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)
		addr := fmt.Sprintf("%s:%s", s.Host, s.Port)

		mime := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n\n"
		msg := []byte(fmt.Sprintf("To: %s\r\n"+
			"From: CommonGround <%s>\r\n"+
			"Subject: %s\r\n"+
			"%s\r\n%s", strings.Join(to, ","), s.From, subject, mime, body))

		err := smtp.SendMail(addr, auth, s.From, to, msg)
		if err != nil {
			log.Printf("Failed to send email to %v: %v", to, err)
		} else {
			log.Printf("Email sent to %v: %s", to, subject)
		}
	}()
}

// SendNotificationEmail wraps a notification message in the shared mail
// body and dispatches it asynchronously.
func (s *MailService) SendNotificationEmail(email, name, subject, message string) {
	if email == "" {
		return
	}

	var buf bytes.Buffer
	if err := mailBodyTmpl.Execute(&buf, map[string]string{
		"Name":    name,
		"Message": message,
	}); err != nil {
		log.Printf("Error rendering notification email: %v", err)
		return
	}
	s.sendAsync([]string{email}, subject, buf.String())
}
