package email

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sesClientDouble struct {
	input *sesv2.SendEmailInput
	err   error
}

func (d *sesClientDouble) SendEmail(
	_ context.Context, input *sesv2.SendEmailInput, _ ...func(*sesv2.Options),
) (*sesv2.SendEmailOutput, error) {
	d.input = input
	if d.err != nil {
		return nil, d.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESMailer_Send(t *testing.T) {
	client := &sesClientDouble{}
	m := &SESMailer{Client: client, ConfigSet: "contact-form"}

	require.NoError(t, m.Send(context.Background(), testMessage()))

	in := client.input
	require.NotNil(t, in)
	assert.Equal(t, "noreply@clepsydra.tech", aws.ToString(in.FromEmailAddress))
	assert.Equal(t, []string{"team@clepsydra.tech"}, in.Destination.ToAddresses)
	assert.Equal(t, []string{"ada@example.com"}, in.ReplyToAddresses)
	assert.Equal(t, "contact-form", aws.ToString(in.ConfigurationSetName))
	assert.Equal(t, "New Contact Form Submission - other", aws.ToString(in.Content.Simple.Subject.Data))
	assert.Equal(t, "<p>hi</p>", aws.ToString(in.Content.Simple.Body.Html.Data))
}

func TestSESMailer_SendWithoutOptionalFields(t *testing.T) {
	client := &sesClientDouble{}
	m := &SESMailer{Client: client}

	msg := testMessage()
	msg.ReplyTo = ""
	require.NoError(t, m.Send(context.Background(), msg))

	assert.Empty(t, client.input.ReplyToAddresses)
	assert.Nil(t, client.input.ConfigurationSetName)
}

func TestSESMailer_SendError(t *testing.T) {
	throttled := errors.New("Throttling: Maximum sending rate exceeded")
	m := &SESMailer{Client: &sesClientDouble{err: throttled}}

	err := m.Send(context.Background(), testMessage())
	assert.ErrorIs(t, err, throttled)
}

func TestNewSESMailer_StaticCredentials(t *testing.T) {
	m, err := NewSESMailer(context.Background(), SESOptions{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDEXAMPLE",
		SecretAccessKey: "secret",
		ConfigSet:       "contact-form",
	})
	require.NoError(t, err)
	assert.NotNil(t, m.Client)
	assert.Equal(t, "contact-form", m.ConfigSet)
}
