package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptService(t *testing.T) {
	svc := NewBcryptService(bcrypt.MinCost)

	hash, err := svc.Hash("s3cret!")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret!", hash)

	require.NoError(t, svc.Compare(hash, "s3cret!"))
	require.Error(t, svc.Compare(hash, "wrong"))
}

func TestJWTService_RoundTrip(t *testing.T) {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewJWTService("test-secret", 2*time.Hour).WithClock(func() time.Time { return now })

	token, err := svc.GenerateToken("sess-1", now)
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	require.Equal(t, "sess-1", claims.SessionID)
	require.True(t, now.Equal(claims.IssuedAt))
	require.True(t, now.Add(2*time.Hour).Equal(claims.ExpiresAt))
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	issued := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	clock := issued
	svc := NewJWTService("test-secret", time.Hour).WithClock(func() time.Time { return clock })

	token, err := svc.GenerateToken("sess-1", issued)
	require.NoError(t, err)

	clock = issued.Add(2 * time.Hour)
	_, err = svc.ParseToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsForeignSignature(t *testing.T) {
	issuer := NewJWTService("secret-a", time.Hour)
	verifier := NewJWTService("secret-b", time.Hour)

	token, err := issuer.GenerateToken("sess-1", time.Now())
	require.NoError(t, err)

	_, err = verifier.ParseToken(token)
	require.Error(t, err)
}

func TestJWTService_RejectsTokenWithoutSessionID(t *testing.T) {
	svc := NewJWTService("test-secret", time.Hour)

	token, err := svc.GenerateToken("", time.Now())
	require.NoError(t, err)

	_, err = svc.ParseToken(token)
	require.Error(t, err)
}
