package notification

import (
	"context"
	"encoding/json"
	"log/slog"

	"cloud.google.com/go/pubsub/v2"
	"cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"
)

// PubSubSMSPublisher hands SMS to the relay topic and waits for the server
// acknowledgement.
type PubSubSMSPublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	logger    *slog.Logger
}

func NewPubSubSMSPublisher(ctx context.Context, projectID, topicID string, logger *slog.Logger) (*PubSubSMSPublisher, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topic := "projects/" + projectID + "/topics/" + topicID
	if _, err = client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topic}); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "failed to get topic %s", topicID)
	}

	logger.Info("sms relay publisher initialized", "projectId", projectID, "topicId", topicID)
	return &PubSubSMSPublisher{
		client:    client,
		publisher: client.Publisher(topicID),
		logger:    logger,
	}, nil
}

func (p *PubSubSMSPublisher) PublishSMS(ctx context.Context, sms SMS) error {
	data, err := json.Marshal(sms)
	if err != nil {
		return errors.WithStack(err)
	}

	result := p.publisher.Publish(ctx, &pubsub.Message{
		Data:       data,
		Attributes: map[string]string{"kind": "sms"},
	})
	serverID, err := result.Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}

	p.logger.DebugContext(ctx, "sms published", "serverId", serverID)
	return nil
}

func (p *PubSubSMSPublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}
	return nil
}
