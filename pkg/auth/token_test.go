package auth

import (
	"testing"
	"time"

	"github.com/expensebuddy/expensebuddy/internal/config"
	"github.com/expensebuddy/expensebuddy/internal/utils"
	"github.com/expensebuddy/expensebuddy/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUser = user.User{ID: "user-1", Email: "test@example.com", Name: "Test User"}

func newIssuer(clock utils.Clock) *TokenIssuer {
	return NewTokenIssuer(config.Auth{
		Secret:        "test-secret",
		TokenDuration: 24 * time.Hour,
	}, clock)
}

func TestTokenIssuer_IssueAndVerify(t *testing.T) {
	t.Run("round trip carries the user claims", func(t *testing.T) {
		clock := &utils.MockClock{FixedNow: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)}
		issuer := newIssuer(clock)

		// when
		token, err := issuer.Issue(testUser)
		require.NoError(t, err)
		claims, err := issuer.Verify(token)

		// then
		assert.NoError(t, err)
		assert.Equal(t, "user-1", claims.UserID)
		assert.Equal(t, "test@example.com", claims.Email)
	})

	t.Run("token is rejected after expiry", func(t *testing.T) {
		clock := &utils.MockClock{FixedNow: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)}
		issuer := newIssuer(clock)

		token, err := issuer.Issue(testUser)
		require.NoError(t, err)

		// when
		clock.SetNow(clock.FixedNow.Add(25 * time.Hour))
		_, err = issuer.Verify(token)

		// then
		assert.ErrorIs(t, err, ErrTokenExpired)
	})

	t.Run("token is valid just before expiry", func(t *testing.T) {
		clock := &utils.MockClock{FixedNow: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)}
		issuer := newIssuer(clock)

		token, err := issuer.Issue(testUser)
		require.NoError(t, err)

		// when
		clock.SetNow(clock.FixedNow.Add(23 * time.Hour))
		_, err = issuer.Verify(token)

		// then
		assert.NoError(t, err)
	})

	t.Run("token signed with a different secret is rejected", func(t *testing.T) {
		clock := &utils.MockClock{FixedNow: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)}
		issuer := newIssuer(clock)
		other := NewTokenIssuer(config.Auth{Secret: "other-secret", TokenDuration: 24 * time.Hour}, clock)

		token, err := other.Issue(testUser)
		require.NoError(t, err)

		// when
		_, err = issuer.Verify(token)

		// then
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		clock := &utils.MockClock{FixedNow: time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)}
		issuer := newIssuer(clock)

		// when
		_, err := issuer.Verify("not-a-token")

		// then
		assert.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestHashPassword(t *testing.T) {
	t.Run("hash verifies against the original password", func(t *testing.T) {
		hash, err := HashPassword("s3cret-password")

		require.NoError(t, err)
		assert.NotEqual(t, "s3cret-password", hash)
		assert.True(t, CheckPassword("s3cret-password", hash))
	})

	t.Run("wrong password does not verify", func(t *testing.T) {
		hash, err := HashPassword("s3cret-password")

		require.NoError(t, err)
		assert.False(t, CheckPassword("wrong-password", hash))
	})

	t.Run("hashing is salted", func(t *testing.T) {
		first, err := HashPassword("s3cret-password")
		require.NoError(t, err)
		second, err := HashPassword("s3cret-password")
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
	})
}
