package aws

import (
	"context"
	"encoding/json"
	"fmt"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

type snsAPI interface {
	Publish(ctx context.Context, in *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// EventPublisher publishes JSON domain events to a single SNS topic. The
// event type travels as the "event_type" message attribute so subscribers
// can filter on it.
type EventPublisher struct {
	client   snsAPI
	topicArn string
}

func NewEventPublisher(cfg sdkaws.Config, topicArn string) *EventPublisher {
	return &EventPublisher{client: sns.NewFromConfig(cfg), topicArn: topicArn}
}

func (p *EventPublisher) Publish(ctx context.Context, eventType string, payload interface{}) error {
	if p.topicArn == "" {
		return fmt.Errorf("empty topicArn")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", eventType, err)
	}

	_, err = p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: sdkaws.String(p.topicArn),
		Message:  sdkaws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"event_type": {DataType: sdkaws.String("String"), StringValue: sdkaws.String(eventType)},
		},
	})
	if err != nil {
		return fmt.Errorf("sns publish failed for topic %s: %w", p.topicArn, err)
	}
	return nil
}
