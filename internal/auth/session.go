package auth

import (
	"context"
	"net/http"

	"golang.org/x/oauth2"
)

// Session is an authorized handle bound to one TokenRecord snapshot. It is
// never persisted; the Authorizer caches one per process and replaces it
// through a fresh EnsureSession cycle when the record expires.
type Session struct {
	record *TokenRecord
	client *http.Client
}

// NewSession builds a Session around an already-authorized HTTP client.
// Production sessions come from the Authorizer; this constructor exists so
// other packages can assemble sessions against fake transports in tests.
func NewSession(rec *TokenRecord, client *http.Client) *Session {
	return &Session{record: rec, client: client}
}

func newSession(ctx context.Context, rec *TokenRecord) *Session {
	// Static source: the transport must never refresh behind the
	// Authorizer's back, the record snapshot stays authoritative.
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(rec.OAuthToken()))

	return &Session{record: rec, client: client}
}

// HTTPClient returns the client carrying the session's bearer token.
func (s *Session) HTTPClient() *http.Client { return s.client }

// Record returns the token snapshot this session is bound to.
func (s *Session) Record() *TokenRecord { return s.record }
