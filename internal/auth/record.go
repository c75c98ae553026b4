// Package auth handles the OAuth2 credential lifecycle: token persistence,
// refresh and interactive acquisition.
package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// TokenRecord is the persisted form of an OAuth2 access/refresh token pair.
type TokenRecord struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token,omitempty"`
	Expiry       time.Time `json:"expiry"`
	Scopes       []string  `json:"scopes,omitempty"`
}

// Valid reports whether the record can authorize calls as-is.
func (r *TokenRecord) Valid() bool {
	return r != nil && r.AccessToken != "" && time.Now().Before(r.Expiry)
}

// Refreshable reports whether a refresh token is present, regardless of expiry.
func (r *TokenRecord) Refreshable() bool {
	return r != nil && r.RefreshToken != ""
}

// OAuthToken converts the record into the oauth2 library's token type.
func (r *TokenRecord) OAuthToken() *oauth2.Token {
	return &oauth2.Token{
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		Expiry:       r.Expiry,
		TokenType:    "Bearer",
	}
}

func recordFromToken(t *oauth2.Token, scopes []string) *TokenRecord {
	return &TokenRecord{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		Expiry:       t.Expiry,
		Scopes:       scopes,
	}
}
