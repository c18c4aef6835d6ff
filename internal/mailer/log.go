package mailer

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LogMailer logs messages instead of delivering them. Used when no SMTP
// host is configured.
type LogMailer struct {
	logger *zap.Logger
}

// NewLogMailer builds the stub mailer.
func NewLogMailer(logger *zap.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(ctx context.Context, msg Message) (string, error) {
	messageID := uuid.NewString()
	m.logger.Info("email not delivered (no SMTP host configured)",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("message_id", messageID))
	return messageID, nil
}
