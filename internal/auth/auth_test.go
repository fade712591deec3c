package auth

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gollllden/Done/internal/clock"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newGuard(t *testing.T) (*LoginGuard, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewLoginGuard(rdb), mr
}

func TestTokenIssuer_RoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow))

	token, exp, err := issuer.Issue(AdminSubject)
	require.NoError(t, err)
	assert.Equal(t, fixedNow.Add(time.Hour), exp)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, AdminSubject, claims.Subject)
}

func TestTokenIssuer_RejectsExpiredAndForeign(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow))
	token, _, err := issuer.Issue(AdminSubject)
	require.NoError(t, err)

	later := NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow.Add(2*time.Hour)))
	_, err = later.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewTokenIssuer("other", time.Hour, clock.NewFixed(fixedNow))
	_, err = other.Parse(token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = issuer.Parse("not.a.jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenIssuer_NoSecret(t *testing.T) {
	issuer := NewTokenIssuer("", time.Hour, clock.NewFixed(fixedNow))
	_, _, err := issuer.Issue(AdminSubject)
	assert.Error(t, err)
}

func TestLoginGuard_BlocksAfterMaxFailures(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	for i := 1; i < DefaultMaxAttempts; i++ {
		blocked, err := g.RecordFailure(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.False(t, blocked, "attempt %d", i)
	}
	blocked, err := g.RecordFailure(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, blocked)

	isBlocked, err := g.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, isBlocked)
	assert.Equal(t, DefaultBlock, mr.TTL(blockKey("10.0.0.1")))

	other, err := g.Blocked(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.False(t, other)

	mr.FastForward(DefaultBlock + time.Second)
	isBlocked, err = g.Blocked(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, isBlocked)
}

func TestLoginGuard_WindowExpires(t *testing.T) {
	g, mr := newGuard(t)
	ctx := context.Background()

	for i := 0; i < DefaultMaxAttempts-1; i++ {
		_, err := g.RecordFailure(ctx, "10.0.0.3")
		require.NoError(t, err)
	}
	mr.FastForward(DefaultWindow + time.Second)

	blocked, err := g.RecordFailure(ctx, "10.0.0.3")
	require.NoError(t, err)
	assert.False(t, blocked)
}

func TestAuthenticator_Login(t *testing.T) {
	g, _ := newGuard(t)
	issuer := NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow))
	a := NewAuthenticator("hunter2", issuer, g)
	ctx := context.Background()

	_, _, err := a.Login(ctx, "1.1.1.1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidPassword)

	token, _, err := a.Login(ctx, "1.1.1.1", "hunter2")
	require.NoError(t, err)
	_, err = issuer.Parse(token)
	assert.NoError(t, err)
}

func TestAuthenticator_LockoutRejectsCorrectPassword(t *testing.T) {
	g, _ := newGuard(t)
	a := NewAuthenticator("hunter2", NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow)), g)
	ctx := context.Background()

	var err error
	for i := 0; i < DefaultMaxAttempts; i++ {
		_, _, err = a.Login(ctx, "2.2.2.2", "nope")
	}
	assert.ErrorIs(t, err, ErrBlocked)

	_, _, err = a.Login(ctx, "2.2.2.2", "hunter2")
	assert.ErrorIs(t, err, ErrBlocked)
}

func TestAuthenticator_NotConfigured(t *testing.T) {
	a := NewAuthenticator("", NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow)), nil)
	_, _, err := a.Login(context.Background(), "3.3.3.3", "")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestAuthenticator_WithoutGuard(t *testing.T) {
	a := NewAuthenticator("pw", NewTokenIssuer("secret", time.Hour, clock.NewFixed(fixedNow)), nil)
	for i := 0; i < 10; i++ {
		_, _, err := a.Login(context.Background(), "4.4.4.4", "bad")
		assert.ErrorIs(t, err, ErrInvalidPassword)
	}
}
