package email

import (
	"context"

	"clepsydra-backend/pkg/logger"
)

// Message is a single outgoing HTML email.
type Message struct {
	From     string
	To       string
	ReplyTo  string
	Subject  string
	HTMLBody string
}

// Mailer delivers a message through some provider. Implementations may
// block until the provider acknowledges or times out.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// LogMailer only logs messages. Used when MAIL_TRANSPORT=none.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, msg Message) error {
	logger.Log.Info("Email delivery disabled, message dropped",
		"to", msg.To,
		"subject", msg.Subject,
	)
	return nil
}
