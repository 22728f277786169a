package email

import (
	"context"

	"authms/internal/core/domain/notification"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charset = "UTF-8"

// SesDispatcher delivers notification messages through Amazon SES.
// The sender address must be verified with SES.
type SesDispatcher struct {
	ses *ses.Client
}

func NewSesDispatcher(awsConfig aws.Config) *SesDispatcher {
	return &SesDispatcher{ses: ses.NewFromConfig(awsConfig)}
}

func (d *SesDispatcher) Dispatch(ctx context.Context, message notification.Message) error {
	_, err := d.ses.SendEmail(
		ctx,
		&ses.SendEmailInput{
			Source: aws.String(message.From),
			Destination: &types.Destination{
				CcAddresses: []string{},
				ToAddresses: []string{message.To},
			},
			Message: &types.Message{
				Subject: &types.Content{
					Charset: aws.String(charset),
					Data:    aws.String(message.Subject),
				},
				Body: &types.Body{
					Text: &types.Content{
						Charset: aws.String(charset),
						Data:    aws.String(message.Text),
					},
					Html: &types.Content{
						Charset: aws.String(charset),
						Data:    aws.String(message.HTML),
					},
				},
			},
		},
	)
	return err
}
