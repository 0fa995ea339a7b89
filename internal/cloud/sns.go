package cloud

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog"

	"github.com/ANIKETSHETTY47/renewable-ops-dashboard/internal/domain"
)

// LoadConfig resolves AWS credentials for the given region.
func LoadConfig(ctx context.Context, region string) (aws.Config, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load SDK config: %w", err)
	}
	return cfg, nil
}

// SNSClient publishes operator notifications to a topic.
type SNSClient struct {
	svc      *sns.Client
	topicArn string
	log      zerolog.Logger
}

func NewSNSClient(cfg aws.Config, topicArn string, log zerolog.Logger) *SNSClient {
	return &SNSClient{
		svc:      sns.NewFromConfig(cfg),
		topicArn: topicArn,
		log:      log.With().Str("component", "sns").Logger(),
	}
}

func (c *SNSClient) send(ctx context.Context, subject, message string) error {
	result, err := c.svc.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(c.topicArn),
		Subject:  aws.String(subject),
		Message:  aws.String(message),
	})
	if err != nil {
		return fmt.Errorf("failed to publish to SNS: %w", err)
	}
	c.log.Debug().Str("message_id", aws.ToString(result.MessageId)).Msg("notification sent")
	return nil
}

// AlertResolved tells the on-call topic an operator closed an alert.
func (c *SNSClient) AlertResolved(ctx context.Context, a domain.Alert) error {
	subject := fmt.Sprintf("[%s] Alert resolved - %s", a.Severity, a.Device)
	message := fmt.Sprintf(
		"Alert Resolved\n\n"+
			"Device: %s\n"+
			"Type: %s\n"+
			"Message: %s\n"+
			"Raised: %s\n"+
			"Resolved: %s",
		a.Device,
		a.Type,
		a.Message,
		a.Timestamp.Format(domain.TimestampLayout),
		time.Now().Format(time.RFC3339),
	)
	return c.send(ctx, subject, message)
}

// MaintenanceDue warns that a device needs service soon.
func (c *SNSClient) MaintenanceDue(ctx context.Context, device string, health int, next time.Time) error {
	message := fmt.Sprintf(
		"Device Maintenance Required\n\n"+
			"Device: %s\n"+
			"Current Health Score: %d%%\n"+
			"Predicted Maintenance Date: %s\n\n"+
			"Please schedule maintenance to prevent failures.",
		device,
		health,
		next.Format("2006-01-02"),
	)
	return c.send(ctx, "Predictive Maintenance Alert", message)
}
