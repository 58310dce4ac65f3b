package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu     sync.Mutex
	sent   []email.Message
	failTo map[string]error
}

func (f *fakeMailer) Send(_ context.Context, msg email.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failTo[msg.To]; ok {
		return err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeMailer) sentTo(addr string) (email.Message, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.sent {
		if m.To == addr {
			return m, true
		}
	}
	return email.Message{}, false
}

const (
	testSender = "noreply@clepsydra.tech"
	testInbox  = "team@clepsydra.tech"
)

func testNotifierConfig() NotifierConfig {
	return NotifierConfig{
		From:           testSender,
		BusinessTo:     testInbox,
		CompanyName:    "Clepsydra Technologies",
		SupportEmail:   "hello@clepsydra.tech",
		SupportPhone:   "+234 800 000 0000",
		ResponseWindow: "24 hours",
		ServiceLabels:  map[string]string{"software-development": "Software Development"},
	}
}

func testStored() *domain.StoredSubmission {
	return &domain.StoredSubmission{
		ContactSubmission: domain.ContactSubmission{
			FirstName: "Ada",
			LastName:  "Lovelace",
			Email:     "ada@example.com",
			Service:   "software-development",
			Message:   "Build me <b>an engine</b>",
		},
		ID:        "2f0e4a8c-7b61-4d1e-9a55-0c3b9d1e6f42",
		CreatedAt: time.Date(2026, 3, 1, 14, 30, 0, 0, time.UTC),
	}
}

func TestContactNotifier_SendsBothLegs(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewContactNotifier(mailer, testNotifierConfig())

	result := n.Notify(context.Background(), testStored())
	require.True(t, result.OK())

	alert, ok := mailer.sentTo(testInbox)
	require.True(t, ok)
	assert.Equal(t, testSender, alert.From)
	assert.Equal(t, "ada@example.com", alert.ReplyTo)
	assert.Equal(t, "New Contact Form Submission - software-development", alert.Subject)
	assert.Contains(t, alert.HTMLBody, "Ada Lovelace")
	assert.Contains(t, alert.HTMLBody, "Not provided")
	assert.Contains(t, alert.HTMLBody, "Software Development")
	assert.Contains(t, alert.HTMLBody, "2f0e4a8c-7b61-4d1e-9a55-0c3b9d1e6f42")
	assert.Contains(t, alert.HTMLBody, "March 1, 2026 at 2:30 PM UTC")
	assert.Contains(t, alert.HTMLBody, "Build me &lt;b&gt;an engine&lt;/b&gt;")

	reply, ok := mailer.sentTo("ada@example.com")
	require.True(t, ok)
	assert.Equal(t, testSender, reply.From)
	assert.Equal(t, "Thank you for contacting Clepsydra Technologies", reply.Subject)
	assert.Contains(t, reply.HTMLBody, "Dear Ada,")
	assert.Contains(t, reply.HTMLBody, "24 hours")
	assert.Contains(t, reply.HTMLBody, "hello@clepsydra.tech")
}

func TestContactNotifier_IncludesPhoneWhenGiven(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewContactNotifier(mailer, testNotifierConfig())

	sub := testStored()
	phone := "+1 555 123 4567"
	sub.Phone = &phone

	require.True(t, n.Notify(context.Background(), sub).OK())

	alert, _ := mailer.sentTo(testInbox)
	assert.Contains(t, alert.HTMLBody, "+1 555 123 4567")
	assert.NotContains(t, alert.HTMLBody, "Not provided")
}

func TestContactNotifier_PartialFailureNamesTheLeg(t *testing.T) {
	bounce := errors.New("mailbox unavailable")
	mailer := &fakeMailer{failTo: map[string]error{"ada@example.com": bounce}}
	n := NewContactNotifier(mailer, testNotifierConfig())

	result := n.Notify(context.Background(), testStored())
	require.False(t, result.OK())
	assert.Equal(t, []string{domain.LegAutoReply}, result.Err.Failed())
	assert.ErrorIs(t, result.Err, bounce)

	// the alert still went out
	_, ok := mailer.sentTo(testInbox)
	assert.True(t, ok)
}

func TestContactNotifier_BothLegsFail(t *testing.T) {
	down := errors.New("smtp down")
	mailer := &fakeMailer{failTo: map[string]error{"ada@example.com": down, testInbox: down}}
	n := NewContactNotifier(mailer, testNotifierConfig())

	result := n.Notify(context.Background(), testStored())
	require.False(t, result.OK())
	assert.Equal(t, []string{domain.LegBusinessAlert, domain.LegAutoReply}, result.Err.Failed())
}

func TestContactNotifier_UsesConfiguredLocation(t *testing.T) {
	loc := time.FixedZone("WAT", 3600)
	cfg := testNotifierConfig()
	cfg.Location = loc

	mailer := &fakeMailer{}
	require.True(t, NewContactNotifier(mailer, cfg).Notify(context.Background(), testStored()).OK())

	alert, _ := mailer.sentTo(testInbox)
	assert.Contains(t, alert.HTMLBody, "March 1, 2026 at 3:30 PM WAT")
}

func TestContactNotifier_UnknownServiceFallsBackToValue(t *testing.T) {
	mailer := &fakeMailer{}
	n := NewContactNotifier(mailer, testNotifierConfig())

	sub := testStored()
	sub.Service = "other"
	require.True(t, n.Notify(context.Background(), sub).OK())

	reply, _ := mailer.sentTo("ada@example.com")
	assert.Contains(t, reply.HTMLBody, "<strong>other</strong>")
}
