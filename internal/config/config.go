// Package config reads environment-level settings for the email MCP server.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"google.golang.org/api/gmail/v1"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultCredentialsFile = "credentials.json"
	DefaultTokenFile       = "token.json"
	DefaultMaxResults      = 50
)

// Config holds the injected constants the core treats as fixed for the
// process lifetime.
type Config struct {
	// EmailAddress is the sending identity placed in the From header.
	EmailAddress string
	// CredentialsFile is the OAuth client-identity artifact, required only
	// for first-time interactive authorization.
	CredentialsFile string
	// TokenFile is where the acquired token record is persisted.
	TokenFile string
	// Scopes are the authorization scopes requested during consent.
	Scopes []string
	// MaxResults caps the limit argument of listing/search tools.
	MaxResults int
}

// FromEnv builds a Config from environment variables, applying defaults for
// any that are unset.
func FromEnv() (*Config, error) {
	cfg := &Config{
		EmailAddress:    os.Getenv("EMAIL_ADDRESS"),
		CredentialsFile: envOr("GMAIL_CREDENTIALS_FILE", DefaultCredentialsFile),
		TokenFile:       envOr("GMAIL_TOKEN_FILE", DefaultTokenFile),
		Scopes:          splitScopes(envOr("GMAIL_SCOPES", defaultScopes())),
		MaxResults:      DefaultMaxResults,
	}

	if raw := os.Getenv("MAX_EMAILS_PER_REQUEST"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_EMAILS_PER_REQUEST %q: %w", raw, err)
		}
		if n < 1 {
			return nil, fmt.Errorf("MAX_EMAILS_PER_REQUEST must be positive, got %d", n)
		}
		cfg.MaxResults = n
	}

	return cfg, nil
}

func defaultScopes() string {
	return gmail.GmailModifyScope + "," + gmail.GmailSendScope
}

func splitScopes(raw string) []string {
	parts := strings.Split(raw, ",")
	scopes := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			scopes = append(scopes, trimmed)
		}
	}
	return scopes
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
