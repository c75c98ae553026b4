package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"

	"github.com/postoffice/email-mcp/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"EMAIL_ADDRESS",
		"GMAIL_CREDENTIALS_FILE",
		"GMAIL_TOKEN_FILE",
		"GMAIL_SCOPES",
		"MAX_EMAILS_PER_REQUEST",
	} {
		t.Setenv(key, "")
	}
}

func TestFromEnvDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Empty(t, cfg.EmailAddress)
	assert.Equal(t, "credentials.json", cfg.CredentialsFile)
	assert.Equal(t, "token.json", cfg.TokenFile)
	assert.Equal(t, []string{gmail.GmailModifyScope, gmail.GmailSendScope}, cfg.Scopes)
	assert.Equal(t, 50, cfg.MaxResults)
}

func TestFromEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("EMAIL_ADDRESS", "sender@example.com")
	t.Setenv("GMAIL_CREDENTIALS_FILE", "/etc/mcp/credentials.json")
	t.Setenv("GMAIL_TOKEN_FILE", "/var/lib/mcp/token.json")
	t.Setenv("MAX_EMAILS_PER_REQUEST", "25")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "sender@example.com", cfg.EmailAddress)
	assert.Equal(t, "/etc/mcp/credentials.json", cfg.CredentialsFile)
	assert.Equal(t, "/var/lib/mcp/token.json", cfg.TokenFile)
	assert.Equal(t, 25, cfg.MaxResults)
}

func TestFromEnvScopeSplitting(t *testing.T) {
	clearEnv(t)
	t.Setenv("GMAIL_SCOPES", " scope-a , scope-b,, scope-c ")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, []string{"scope-a", "scope-b", "scope-c"}, cfg.Scopes)
}

func TestFromEnvInvalidMaxResults(t *testing.T) {
	cases := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "plenty"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-5"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv("MAX_EMAILS_PER_REQUEST", tc.value)

			_, err := config.FromEnv()
			assert.Error(t, err)
		})
	}
}
