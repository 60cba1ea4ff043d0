package notification

import (
	"context"
	"log/slog"

	"firebase.google.com/go/v4/messaging"
)

// LoggingSMSPublisher and LoggingPushSender stand in when no relay or
// Firebase project is configured.
type LoggingSMSPublisher struct {
	logger *slog.Logger
}

func NewLoggingSMSPublisher(logger *slog.Logger) LoggingSMSPublisher {
	return LoggingSMSPublisher{logger: logger}
}

func (p LoggingSMSPublisher) PublishSMS(ctx context.Context, sms SMS) error {
	p.logger.InfoContext(ctx, "sms relay disabled, dropping message", "to", sms.To)
	return nil
}

type LoggingPushSender struct {
	logger *slog.Logger
}

func NewLoggingPushSender(logger *slog.Logger) LoggingPushSender {
	return LoggingPushSender{logger: logger}
}

func (s LoggingPushSender) Send(ctx context.Context, message *messaging.Message) (string, error) {
	s.logger.InfoContext(ctx, "web push disabled, dropping message", "topic", message.Topic)
	return "", nil
}
