package service

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/Slavchick12/api-yamdb/config"
	"github.com/Slavchick12/api-yamdb/logger"
)

// Mailer delivers a single message. Signup aborts when delivery fails, so
// implementations must report errors instead of swallowing them.
type Mailer interface {
	Send(to, subject, body string) error
}

// NewMailer picks the SMTP mailer when a relay is configured and the
// log-only mailer otherwise.
func NewMailer() Mailer {
	addr := config.GetSMTPAddr()
	if addr == "" {
		logger.Warning("YAMDB_SMTP_ADDR not set, confirmation codes will only be logged")
		return &logMailer{}
	}
	return &smtpMailer{
		addr:     addr,
		username: config.GetSMTPUsername(),
		password: config.GetSMTPPassword(),
		from:     config.GetMailFrom(),
	}
}

type smtpMailer struct {
	addr     string
	username string
	password string
	from     string
}

func (m *smtpMailer) Send(to, subject, body string) error {
	var auth smtp.Auth
	if m.username != "" {
		host := m.addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", m.username, m.password, host)
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, to, subject, body)
	return smtp.SendMail(m.addr, auth, m.from, []string{to}, []byte(msg))
}

// logMailer is the development fallback: the message goes to the log.
type logMailer struct{}

func (m *logMailer) Send(to, subject, body string) error {
	logger.Infof("mail to %s: %s: %s", to, subject, body)
	return nil
}
