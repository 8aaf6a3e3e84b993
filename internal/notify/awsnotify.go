// internal/notify/awsnotify.go
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	sestypes "github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"

	"ovse-portal/internal/common/aws"
	"ovse-portal/internal/common/logger"
)

// SNSNotifier publishes issuance/revocation events to an SNS topic.
type SNSNotifier struct {
	client   *aws.SNSClient
	topicARN string
	logger   logger.Logger
}

func NewSNSNotifier(client *aws.SNSClient, topicARN string, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{
		client:   client,
		topicARN: topicARN,
		logger:   log.WithFields(map[string]interface{}{"notifier": "sns"}),
	}
}

func (n *SNSNotifier) NotifyIssuance(ctx context.Context, notice IssuanceNotice) error {
	return n.publish(ctx, "ovse.issuance", notice)
}

func (n *SNSNotifier) NotifyRevocation(ctx context.Context, notice RevocationNotice) error {
	return n.publish(ctx, "ovse.revocation", notice)
}

func (n *SNSNotifier) publish(ctx context.Context, subject string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", subject, err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: awssdk.String(n.topicARN),
		Subject:  awssdk.String(subject),
		Message:  awssdk.String(string(body)),
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", subject, err)
	}

	n.logger.Debug("notice published", map[string]interface{}{"subject": subject})
	return nil
}

// SESNotifier emails the registered entity contact instead of calling a
// machine endpoint. Used where the receiving portal has no callback.
type SESNotifier struct {
	client    *aws.SESClient
	fromEmail string
	toEmail   string
	logger    logger.Logger
}

func NewSESNotifier(client *aws.SESClient, fromEmail, toEmail string, log logger.Logger) *SESNotifier {
	return &SESNotifier{
		client:    client,
		fromEmail: fromEmail,
		toEmail:   toEmail,
		logger:    log.WithFields(map[string]interface{}{"notifier": "ses"}),
	}
}

func (n *SESNotifier) NotifyIssuance(ctx context.Context, notice IssuanceNotice) error {
	subject := fmt.Sprintf("OVSE registration active: %s", notice.EntityName)
	body := fmt.Sprintf(
		"Your OVSE registration is now ACTIVE.\n\nClient ID: %s\n\nCertificate:\n%s\n",
		notice.ClientID, notice.Certificate,
	)
	return n.send(ctx, subject, body)
}

func (n *SESNotifier) NotifyRevocation(ctx context.Context, notice RevocationNotice) error {
	subject := fmt.Sprintf("OVSE registration revoked: %s", notice.ApplicationID)
	body := fmt.Sprintf("Registration %s has been revoked by the approval authority.\n", notice.ApplicationID)
	return n.send(ctx, subject, body)
}

func (n *SESNotifier) send(ctx context.Context, subject, body string) error {
	_, err := n.client.SendEmail(ctx, &ses.SendEmailInput{
		Source: awssdk.String(n.fromEmail),
		Destination: &sestypes.Destination{
			ToAddresses: []string{n.toEmail},
		},
		Message: &sestypes.Message{
			Subject: &sestypes.Content{Data: awssdk.String(subject)},
			Body: &sestypes.Body{
				Text: &sestypes.Content{Data: awssdk.String(body)},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("send email: %w", err)
	}

	n.logger.Debug("notice emailed", map[string]interface{}{"subject": subject})
	return nil
}
