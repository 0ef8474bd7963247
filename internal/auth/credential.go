// Package auth owns the OAuth credential lifecycle: persistent
// storage, validity, refresh, interactive re-authentication, and the
// bounded retry executor built on top of it.
package auth

import (
	"time"

	"golang.org/x/oauth2"
)

// Scope is the OAuth scope required for Google Tasks access.
const Scope = "https://www.googleapis.com/auth/tasks"

// Credential is one access/refresh token pair with the scopes it was
// granted. A Credential is replaced wholesale on refresh, never
// mutated in place.
type Credential struct {
	Token  oauth2.Token
	Scopes []string
}

// Valid reports whether the credential can authorize a call right
// now: it carries an access token, is not expired, and was granted
// the Tasks scope.
func (c *Credential) Valid() bool {
	if c == nil || c.Token.AccessToken == "" {
		return false
	}
	if !c.Token.Expiry.IsZero() && !time.Now().Before(c.Token.Expiry) {
		return false
	}
	return c.HasScope(Scope)
}

// HasScope reports whether the credential was granted the scope.
func (c *Credential) HasScope(scope string) bool {
	if c == nil {
		return false
	}
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// CanRefresh reports whether a refresh attempt is possible.
func (c *Credential) CanRefresh() bool {
	return c != nil && c.Token.RefreshToken != ""
}
