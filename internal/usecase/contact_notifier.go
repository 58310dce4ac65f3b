package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/email"
	"clepsydra-backend/pkg/metrics"
)

// NotifierConfig is injected once at startup; nothing is read from the
// environment at send time.
type NotifierConfig struct {
	// From is the sender address. It need not equal BusinessTo.
	From       string
	BusinessTo string

	CompanyName    string
	Tagline        string
	WebsiteURL     string
	SupportEmail   string
	SupportPhone   string
	WhatsAppURL    string
	ResponseWindow string

	// Location for the human-readable timestamp; UTC when nil
	Location *time.Location
	// ServiceLabels maps service values to display labels
	ServiceLabels map[string]string
}

type contactNotifier struct {
	mailer email.Mailer
	cfg    NotifierConfig
}

func NewContactNotifier(mailer email.Mailer, cfg NotifierConfig) domain.ContactNotifier {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &contactNotifier{mailer: mailer, cfg: cfg}
}

// Notify sends the business alert and the auto-reply concurrently and waits
// for both. Failed legs are collected into a single NotifyError.
func (n *contactNotifier) Notify(ctx context.Context, sub *domain.StoredSubmission) domain.NotifyResult {
	legs := map[string]func() (email.Message, error){
		domain.LegBusinessAlert: func() (email.Message, error) { return n.businessAlert(sub) },
		domain.LegAutoReply:     func() (email.Message, error) { return n.autoReply(sub) },
	}

	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed = map[string]error{}
	)
	for leg, build := range legs {
		wg.Add(1)
		go func(leg string, build func() (email.Message, error)) {
			defer wg.Done()

			msg, err := build()
			if err == nil {
				err = n.mailer.Send(ctx, msg)
			}

			result := "sent"
			if err != nil {
				result = "failed"
				mu.Lock()
				failed[leg] = err
				mu.Unlock()
			}
			metrics.ContactNotifications.WithLabelValues(leg, result).Inc()
		}(leg, build)
	}
	wg.Wait()

	if len(failed) == 0 {
		return domain.NotifyResult{}
	}
	return domain.NotifyResult{Err: &domain.NotifyError{Legs: failed}}
}

func (n *contactNotifier) businessAlert(sub *domain.StoredSubmission) (email.Message, error) {
	phone := "Not provided"
	if sub.Phone != nil && *sub.Phone != "" {
		phone = *sub.Phone
	}

	body, err := email.RenderAlert(email.AlertData{
		CompanyName:  n.cfg.CompanyName,
		Name:         sub.FullName(),
		Email:        sub.Email,
		Phone:        phone,
		Service:      n.serviceLabel(sub.Service),
		Message:      sub.Message,
		SubmissionID: sub.ID,
		SubmittedAt:  sub.CreatedAt.In(n.cfg.Location).Format("January 2, 2006 at 3:04 PM MST"),
	})
	if err != nil {
		return email.Message{}, err
	}

	return email.Message{
		From:     n.cfg.From,
		To:       n.cfg.BusinessTo,
		ReplyTo:  sub.Email,
		Subject:  fmt.Sprintf("New Contact Form Submission - %s", sub.Service),
		HTMLBody: body,
	}, nil
}

func (n *contactNotifier) autoReply(sub *domain.StoredSubmission) (email.Message, error) {
	body, err := email.RenderAutoReply(email.AutoReplyData{
		CompanyName:    n.cfg.CompanyName,
		Tagline:        n.cfg.Tagline,
		FirstName:      sub.FirstName,
		Service:        n.serviceLabel(sub.Service),
		WebsiteURL:     n.cfg.WebsiteURL,
		SupportEmail:   n.cfg.SupportEmail,
		SupportPhone:   n.cfg.SupportPhone,
		WhatsAppURL:    n.cfg.WhatsAppURL,
		ResponseWindow: n.cfg.ResponseWindow,
	})
	if err != nil {
		return email.Message{}, err
	}

	return email.Message{
		From:     n.cfg.From,
		To:       sub.Email,
		ReplyTo:  n.cfg.SupportEmail,
		Subject:  "Thank you for contacting " + n.cfg.CompanyName,
		HTMLBody: body,
	}, nil
}

func (n *contactNotifier) serviceLabel(value string) string {
	if label, ok := n.cfg.ServiceLabels[value]; ok && label != "" {
		return label
	}
	return value
}
