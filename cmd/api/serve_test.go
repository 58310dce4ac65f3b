package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"clepsydra-backend/config"
	"clepsydra-backend/internal/domain"
	"clepsydra-backend/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotifierConfig(t *testing.T) {
	site, err := config.LoadSite("")
	require.NoError(t, err)

	cfg := &config.Config{
		MailFrom:       "noreply@clepsydra.tech",
		ContactEmailTo: "team@clepsydra.tech",
		Site:           site,
	}
	nc := notifierConfig(cfg)

	assert.Equal(t, "noreply@clepsydra.tech", nc.From)
	assert.Equal(t, "team@clepsydra.tech", nc.BusinessTo)
	assert.Equal(t, site.CompanyName, nc.CompanyName)
	assert.Equal(t, "Asia/Kolkata", nc.Location.String())
	assert.Equal(t, "Software Development", nc.ServiceLabels["software-development"])
}

func TestNotifierConfig_UnknownTimezone(t *testing.T) {
	cfg := &config.Config{Site: &config.Site{Timezone: "Mars/Olympus_Mons"}}
	assert.Equal(t, time.UTC, notifierConfig(cfg).Location)
}

func TestNewContactRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		repo, closeFn, err := newContactRepository(ctx, &config.Config{StorageDriver: config.StorageMemory})
		require.NoError(t, err)
		defer closeFn()
		assert.NoError(t, repo.Ping(ctx))
	})

	t.Run("sqlite", func(t *testing.T) {
		repo, closeFn, err := newContactRepository(ctx, &config.Config{
			StorageDriver: config.StorageSQLite,
			SQLitePath:    filepath.Join(t.TempDir(), "contact.db"),
		})
		require.NoError(t, err)
		defer closeFn()

		stored, err := repo.Create(ctx, &domain.ContactSubmission{
			FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.com", Service: "other", Message: "hi",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, stored.ID)
	})
}

func TestNewMailer(t *testing.T) {
	ctx := context.Background()

	m, err := newMailer(ctx, &config.Config{MailTransport: config.MailTransportNone})
	require.NoError(t, err)
	assert.IsType(t, email.LogMailer{}, m)

	m, err = newMailer(ctx, &config.Config{
		MailTransport: config.MailTransportSMTP,
		SMTPHost:      "smtp.gmail.com",
		SMTPPort:      "587",
		SMTPUsername:  "user",
		SMTPPassword:  "pass",
	})
	require.NoError(t, err)
	assert.IsType(t, &email.SMTPMailer{}, m)
}

func TestMigrateCmdRejectsUnknownCommand(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"migrate", "sideways"})
	assert.Error(t, root.Execute())
}
