package service

import (
	"bitwise74/medflow-api/config"
	"bitwise74/medflow-api/internal/metrics"
	"fmt"
	"html"
	"net/url"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML email
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer(c *config.Config) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(c.Mail.Host, c.Mail.Port, c.Mail.SenderAddress, c.Mail.Password),
		from:   c.Mail.SenderAddress,
	}
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()

	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return m.dialer.DialAndSend(msg)
}

// sendMail is the fire-and-forget wrapper every workflow goes through
func sendMail(m Mailer, kind, to, subject, body string) {
	if err := m.Send(to, subject, body); err != nil {
		metrics.MailFailed.WithLabelValues(kind).Inc()
		zap.L().Error("Failed to send email", zap.Error(err), zap.String("kind", kind), zap.String("to", to))
		return
	}

	metrics.MailSent.WithLabelValues(kind).Inc()
}

func approvalLink(baseURL, uid, token string) string {
	q := url.Values{}
	q.Set("uid", uid)
	q.Set("token", token)

	return baseURL + "/api/users/verify?" + q.Encode()
}

func approvalMail(name, email, role, link string, ttlHours int) (string, string) {
	subject := fmt.Sprintf("A new %s has registered with the name %s", role, name)

	body := fmt.Sprintf(`<p>%s (%s) registered as a <b>%s</b> and is waiting for approval.</p>
<p>Click <a href="%s">here</a> to approve the account.</p>
<p>This link will expire in %d hours.</p>`,
		html.EscapeString(name), html.EscapeString(email), html.EscapeString(role), link, ttlHours)

	return subject, body
}

func confirmationMail(name string) (string, string) {
	return "Your MedFlow account was approved",
		fmt.Sprintf("<p>Hi %s,</p><p>Your account was approved by an administrator. You can now log in.</p>", html.EscapeString(name))
}
