package jwtx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestSigner(t *testing.T) *EdDSASigner {
	t.Helper()

	pemKey, err := GenerateEd25519PEM()
	require.NoError(t, err)

	signer, err := NewSignerEdDSA(pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())

	return signer
}

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	verifier := NewVerifierEdDSA(signer.PublicKey(), "taskboard")

	claims := NewAccessClaims(
		"01HQ7T3Z1MZ0JQ3M6MZQ1FQ3ZV", "admin", "John Doe", "john@example.com",
		time.Hour, "taskboard", time.Now().UTC(),
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := verifier.Verify(token)
	require.NoError(t, err)
	require.Equal(t, claims.Subject, got.Subject)
	require.Equal(t, "admin", got.Role)
	require.Equal(t, "john@example.com", got.Email)
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	other := newTestSigner(t)
	verifier := NewVerifierEdDSA(other.PublicKey(), "taskboard")

	claims := NewAccessClaims("sub", "user", "", "", time.Hour, "taskboard", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsExpired(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	verifier := NewVerifierEdDSA(signer.PublicKey(), "taskboard")

	claims := NewAccessClaims("sub", "user", "", "", time.Hour, "taskboard",
		time.Now().UTC().Add(-2*time.Hour))
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.Error(t, err)
}

func TestVerifyRejectsIssuerMismatch(t *testing.T) {
	t.Parallel()

	signer := newTestSigner(t)
	verifier := NewVerifierEdDSA(signer.PublicKey(), "someone-else")

	claims := NewAccessClaims("sub", "user", "", "", time.Hour, "taskboard", time.Now().UTC())
	token, err := signer.Sign(claims)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	require.ErrorIs(t, err, ErrIssuer)
}
