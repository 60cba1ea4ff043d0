// Package notification delivers SMS through a Pub/Sub relay topic and web
// pushes through Firebase Cloud Messaging.
package notification

import (
	"context"
	"log/slog"
	"time"

	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"firebase.google.com/go/v4/messaging"
)

const pushTimeout = 10 * time.Second

// SMS is the payload published to the relay topic.
type SMS struct {
	To   string `json:"to"`
	Text string `json:"text"`
}

type smsPublisher interface {
	PublishSMS(ctx context.Context, sms SMS) error
}

type pushSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// Gateway implements ports.NotificationGateway.
type Gateway struct {
	sms    smsPublisher
	push   pushSender
	logger *slog.Logger
}

func NewGateway(sms smsPublisher, push pushSender, logger *slog.Logger) *Gateway {
	return &Gateway{sms: sms, push: push, logger: logger.With("component", "notification-gateway")}
}

func (g *Gateway) SendSMS(ctx context.Context, text, phoneNumber string) error {
	if phoneNumber == "" {
		return errs.NewValueIsRequiredError("phone number")
	}
	if err := g.sms.PublishSMS(ctx, SMS{To: phoneNumber, Text: text}); err != nil {
		return errs.NewExternalCallFailedError("sms relay", err)
	}
	return nil
}

// SendWebPush addresses every device subscribed to the customer's topic.
// Failures are logged only.
func (g *Gateway) SendWebPush(ctx context.Context, push ports.WebPush) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	defer cancel()

	message := &messaging.Message{
		Topic: CustomerTopic(push.CustomerID.String()),
		Notification: &messaging.Notification{
			Title: push.Title,
			Body:  push.Body,
		},
		Data: push.Data,
	}

	id, err := g.push.Send(ctx, message)
	if err != nil {
		g.logger.ErrorContext(ctx, "web push failed",
			"customerId", push.CustomerID.String(),
			"title", push.Title,
			"error", err,
		)
		return
	}
	g.logger.DebugContext(ctx, "web push sent", "customerId", push.CustomerID.String(), "messageId", id)
}

func CustomerTopic(customerID string) string {
	return "customer-" + customerID
}
