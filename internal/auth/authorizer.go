package auth

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// MissingCredentialsError indicates the OAuth client-identity file required
// for first-time interactive authorization does not exist.
type MissingCredentialsError struct {
	Path string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf(
		"credentials file not found at %s; download the OAuth client file from Google Cloud Console: https://console.cloud.google.com/apis/credentials",
		e.Path,
	)
}

// ConsentFlow drives interactive user authorization and yields a fresh token.
type ConsentFlow interface {
	Authorize(ctx context.Context, cfg *oauth2.Config) (*oauth2.Token, error)
}

// Authorizer owns the process-scoped authorized session. It consults the
// Store first, refreshes an expired record when possible and falls back to
// the interactive consent flow, so consent happens at most once per process.
type Authorizer struct {
	store           *Store
	credentialsPath string
	scopes          []string
	flow            ConsentFlow

	refresh func(ctx context.Context, cfg *oauth2.Config, t *oauth2.Token) (*oauth2.Token, error)

	mu      sync.Mutex
	session *Session
}

// NewAuthorizer creates an Authorizer persisting through store, reading the
// client-identity artifact from credentialsPath and requesting scopes during
// consent.
func NewAuthorizer(store *Store, credentialsPath string, scopes []string, flow ConsentFlow) *Authorizer {
	return &Authorizer{
		store:           store,
		credentialsPath: credentialsPath,
		scopes:          scopes,
		flow:            flow,
		refresh:         refreshToken,
	}
}

func refreshToken(ctx context.Context, cfg *oauth2.Config, t *oauth2.Token) (*oauth2.Token, error) {
	return cfg.TokenSource(ctx, t).Token()
}

// EnsureSession returns the cached session, or establishes one: a valid
// stored record is used directly, an expired refreshable record triggers one
// refresh call, and only when neither works does the interactive consent
// flow run. Every record mutation is persisted before the session is built.
func (a *Authorizer) EnsureSession(ctx context.Context) (*Session, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil && a.session.record.Valid() {
		return a.session, nil
	}

	rec, err := a.store.Load()
	if err != nil {
		return nil, err
	}

	if rec.Valid() {
		a.session = newSession(ctx, rec)
		return a.session, nil
	}

	if rec.Refreshable() {
		sess, err := a.refreshSession(ctx, rec)
		if err == nil {
			a.session = sess
			return sess, nil
		}
		log.Printf("Token refresh failed, falling back to interactive authorization: %v", err)
	}

	cfg, err := a.clientConfig()
	if err != nil {
		return nil, err
	}

	log.Println("Starting OAuth2 consent flow")
	tok, err := a.flow.Authorize(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("consent flow failed: %w", err)
	}

	rec = recordFromToken(tok, a.scopes)
	if err := a.store.Save(rec); err != nil {
		return nil, err
	}
	log.Printf("Token saved to %s", a.store.path)

	a.session = newSession(ctx, rec)
	return a.session, nil
}

func (a *Authorizer) refreshSession(ctx context.Context, rec *TokenRecord) (*Session, error) {
	cfg, err := a.clientConfig()
	if err != nil {
		return nil, err
	}

	log.Println("Refreshing access token")
	tok, err := a.refresh(ctx, cfg, rec.OAuthToken())
	if err != nil {
		return nil, fmt.Errorf("token refresh failed: %w", err)
	}

	next := recordFromToken(tok, rec.Scopes)
	if next.RefreshToken == "" {
		next.RefreshToken = rec.RefreshToken
	}

	if err := a.store.Save(next); err != nil {
		return nil, err
	}

	return newSession(ctx, next), nil
}

func (a *Authorizer) clientConfig() (*oauth2.Config, error) {
	b, err := os.ReadFile(a.credentialsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingCredentialsError{Path: a.credentialsPath}
		}
		return nil, fmt.Errorf("read credentials file %s: %w", a.credentialsPath, err)
	}

	cfg, err := google.ConfigFromJSON(b, a.scopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file %s: %w", a.credentialsPath, err)
	}

	return cfg, nil
}
