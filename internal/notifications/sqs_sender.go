package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// MessageQueue is satisfied by *aws.Queue.
type MessageQueue interface {
	SendMessage(ctx context.Context, body string, attrs map[string]string) (string, error)
}

type emailJob struct {
	To       string `json:"to"`
	From     string `json:"from"`
	FromName string `json:"from_name"`
	Subject  string `json:"subject"`
	HTML     string `json:"html"`
}

// QueueSender hands emails to an external mailer through a queue. A
// successful enqueue counts as sent.
type QueueSender struct {
	queue    MessageQueue
	from     string
	fromName string
}

func NewQueueSender(queue MessageQueue, from, fromName string) *QueueSender {
	return &QueueSender{queue: queue, from: from, fromName: fromName}
}

func (s *QueueSender) SendEmail(ctx context.Context, to, subject, htmlBody string) (SendResult, error) {
	body, err := json.Marshal(emailJob{To: to, From: s.from, FromName: s.fromName, Subject: subject, HTML: htmlBody})
	if err != nil {
		return SendResult{}, err
	}
	id, err := s.queue.SendMessage(ctx, string(body), map[string]string{"type": "email"})
	if err != nil {
		return SendResult{}, fmt.Errorf("enqueue email: %w", err)
	}
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}
