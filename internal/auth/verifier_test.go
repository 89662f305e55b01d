package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticVerifierRoundTrip(t *testing.T) {
	verifier, err := NewStaticVerifier(StaticConfig{Secret: "test-secret", Issuer: "cinebase-dev"})
	require.NoError(t, err)

	token, err := SignStatic("test-secret", "cinebase-dev", "user-123", time.Hour, nil)
	require.NoError(t, err)

	identity, err := verifier.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", identity.Subject)
}

func TestStaticVerifierRejectsWrongSecret(t *testing.T) {
	verifier, err := NewStaticVerifier(StaticConfig{Secret: "right"})
	require.NoError(t, err)

	token, err := SignStatic("wrong", "", "user-123", time.Hour, nil)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestStaticVerifierRejectsWrongIssuer(t *testing.T) {
	verifier, err := NewStaticVerifier(StaticConfig{Secret: "s", Issuer: "expected"})
	require.NoError(t, err)

	token, err := SignStatic("s", "other", "user-123", time.Hour, nil)
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestStaticVerifierRejectsExpiredToken(t *testing.T) {
	past := func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, err := SignStatic("s", "", "user-123", time.Hour, past)
	require.NoError(t, err)

	verifier, err := NewStaticVerifier(StaticConfig{Secret: "s"})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	require.Error(t, err)
}

func TestStaticVerifierRequiresSecret(t *testing.T) {
	_, err := NewStaticVerifier(StaticConfig{})
	require.Error(t, err)
}

func TestSignStaticRequiresSubject(t *testing.T) {
	_, err := SignStatic("s", "", "", time.Hour, nil)
	require.Error(t, err)
}

func TestNewOIDCVerifierRequiresIssuer(t *testing.T) {
	_, err := NewOIDCVerifier(context.Background(), OIDCConfig{})
	require.Error(t, err)
}
