package notifications

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogSender only logs. Used in development.
type LogSender struct {
	logger *zap.Logger
}

func NewLogSender(logger *zap.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendEmail(_ context.Context, to, subject, htmlBody string) (SendResult, error) {
	id := "log-" + uuid.NewString()
	s.logger.Info("email (not delivered)",
		zap.String("message_id", id),
		zap.String("to", to),
		zap.String("subject", subject),
		zap.Int("body_len", len(htmlBody)),
	)
	return SendResult{MessageID: id, SentAt: time.Now()}, nil
}
