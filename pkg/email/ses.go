package email

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	sestypes "github.com/aws/aws-sdk-go-v2/service/sesv2/types"
)

// SesV2Api is the subset of the SES v2 client the mailer uses.
type SesV2Api interface {
	SendEmail(
		context.Context,
		*sesv2.SendEmailInput,
		...func(*sesv2.Options),
	) (*sesv2.SendEmailOutput, error)
}

type SESMailer struct {
	Client    SesV2Api
	ConfigSet string
}

// SESOptions configures NewSESMailer. Static keys are optional; without them
// the default AWS credential chain is used.
type SESOptions struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	ConfigSet       string
}

func NewSESMailer(ctx context.Context, opts SESOptions) (*SESMailer, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(opts.Region),
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return &SESMailer{Client: sesv2.NewFromConfig(cfg), ConfigSet: opts.ConfigSet}, nil
}

func (m *SESMailer) Send(ctx context.Context, msg Message) error {
	input := &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(msg.From),
		Destination:      &sestypes.Destination{ToAddresses: []string{msg.To}},
		Content: &sestypes.EmailContent{
			Simple: &sestypes.Message{
				Subject: &sestypes.Content{Data: aws.String(msg.Subject), Charset: aws.String("UTF-8")},
				Body: &sestypes.Body{
					Html: &sestypes.Content{Data: aws.String(msg.HTMLBody), Charset: aws.String("UTF-8")},
				},
			},
		},
	}
	if msg.ReplyTo != "" {
		input.ReplyToAddresses = []string{msg.ReplyTo}
	}
	if m.ConfigSet != "" {
		input.ConfigurationSetName = aws.String(m.ConfigSet)
	}

	if _, err := m.Client.SendEmail(ctx, input); err != nil {
		return fmt.Errorf("ses send to %s failed: %w", msg.To, err)
	}
	return nil
}
