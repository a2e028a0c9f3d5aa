package notifications

import (
	"context"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"time"
)

type SMTPSender struct {
	addr     string
	auth     smtp.Auth
	from     string
	fromName string
}

func NewSMTPSender(host, port, username, password, from, fromName string) *SMTPSender {
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{
		addr:     net.JoinHostPort(host, port),
		auth:     auth,
		from:     from,
		fromName: fromName,
	}
}

// SendEmail hands the message to the relay. net/smtp has no context
// support, so ctx is only checked before dialing.
func (s *SMTPSender) SendEmail(ctx context.Context, to, subject, htmlBody string) (SendResult, error) {
	if err := ctx.Err(); err != nil {
		return SendResult{}, err
	}

	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, buildMIMEMessage(s.fromName, s.from, to, subject, htmlBody)); err != nil {
		return SendResult{}, fmt.Errorf("smtp send failed: %w", err)
	}

	return SendResult{
		MessageID: fmt.Sprintf("smtp-%d", time.Now().UnixNano()),
		SentAt:    time.Now(),
	}, nil
}

func buildMIMEMessage(fromName, from, to, subject, htmlBody string) []byte {
	return []byte(
		"From: " + mime.QEncoding.Encode("utf-8", fromName) + " <" + from + ">\r\n" +
			"To: " + to + "\r\n" +
			"Subject: " + mime.QEncoding.Encode("utf-8", subject) + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n" +
			"\r\n" +
			htmlBody,
	)
}
