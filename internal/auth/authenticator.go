package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"
)

var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrBlocked         = errors.New("too many failed login attempts, try again later")
	ErrNotConfigured   = errors.New("admin login is not configured")
)

type Authenticator struct {
	password string
	tokens   *TokenIssuer
	guard    *LoginGuard
}

// NewAuthenticator checks the shared admin password. guard may be nil, in
// which case failed attempts are not throttled.
func NewAuthenticator(password string, tokens *TokenIssuer, guard *LoginGuard) *Authenticator {
	return &Authenticator{password: password, tokens: tokens, guard: guard}
}

func (a *Authenticator) Login(ctx context.Context, ip, password string) (string, time.Time, error) {
	if a.password == "" {
		return "", time.Time{}, ErrNotConfigured
	}
	if a.guard != nil {
		blocked, err := a.guard.Blocked(ctx, ip)
		if err != nil {
			return "", time.Time{}, err
		}
		if blocked {
			return "", time.Time{}, ErrBlocked
		}
	}

	if subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) != 1 {
		if a.guard != nil {
			blocked, err := a.guard.RecordFailure(ctx, ip)
			if err != nil {
				return "", time.Time{}, err
			}
			if blocked {
				return "", time.Time{}, ErrBlocked
			}
		}
		return "", time.Time{}, ErrInvalidPassword
	}

	if a.guard != nil {
		if err := a.guard.Reset(ctx, ip); err != nil {
			return "", time.Time{}, err
		}
	}
	return a.tokens.Issue(AdminSubject)
}

func (a *Authenticator) Tokens() *TokenIssuer {
	return a.tokens
}
