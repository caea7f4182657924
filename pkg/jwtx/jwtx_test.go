package jwtx_test

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/gatherly/identity/pkg/jwtx"
)

func newTestSigner(t *testing.T, kid string) jwtx.Signer {
	t.Helper()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)

	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	signer, err := jwtx.NewSignerEdDSA(kid, pemKey)
	require.NoError(t, err)
	require.NoError(t, signer.Validate())
	return signer
}

func TestNewSignerEdDSARejectsBadPEM(t *testing.T) {
	t.Run("not PEM", func(t *testing.T) {
		_, err := jwtx.NewSignerEdDSA("kid", []byte("garbage"))
		require.Error(t, err)
	})

	t.Run("wrong block type", func(t *testing.T) {
		block := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: []byte{1, 2, 3}})
		_, err := jwtx.NewSignerEdDSA("kid", block)
		require.Error(t, err)
	})
}

func TestSignAndVerify(t *testing.T) {
	signer := newTestSigner(t, "key-1")

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	verifier := jwtx.NewVerifierEdDSA(keys, "identity", []string{"gatherly"})

	now := time.Now().UTC()
	claims := jwtx.NewSessionClaims(
		"01ARZ3NDEKTSV4RRFFQ69G5FAV",
		"alice", "Alice",
		time.Hour,
		"identity",
		[]string{"gatherly"},
		now,
	)

	token, err := signer.Sign(claims)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	t.Run("valid token round trips", func(t *testing.T) {
		got, err := verifier.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "01ARZ3NDEKTSV4RRFFQ69G5FAV", got.Subject)
		require.Equal(t, "alice", got.Username)
		require.Equal(t, "Alice", got.DisplayName)
		require.NotEmpty(t, got.ID, "jti should be set")
	})

	t.Run("expired token fails", func(t *testing.T) {
		expired := jwtx.NewSessionClaims(
			"01ARZ3NDEKTSV4RRFFQ69G5FAV",
			"alice", "Alice",
			-time.Minute,
			"identity",
			[]string{"gatherly"},
			now.Add(-time.Hour),
		)
		tok, err := signer.Sign(expired)
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.Error(t, err)
	})

	t.Run("unknown kid fails", func(t *testing.T) {
		other := newTestSigner(t, "key-2")
		tok, err := other.Sign(claims)
		require.NoError(t, err)

		_, err = verifier.Verify(tok)
		require.Error(t, err)
	})

	t.Run("wrong issuer fails", func(t *testing.T) {
		strict := jwtx.NewVerifierEdDSA(keys, "someone-else", nil)
		_, err := strict.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong audience fails", func(t *testing.T) {
		strict := jwtx.NewVerifierEdDSA(keys, "identity", []string{"admin"})
		_, err := strict.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrAudience)
	})

	t.Run("tampered token fails", func(t *testing.T) {
		_, err := verifier.Verify(token + "x")
		require.Error(t, err)
	})
}

func TestValidateExpiry(t *testing.T) {
	now := time.Now().UTC()

	t.Run("expired", func(t *testing.T) {
		c := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second)),
			},
		}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrExpired)
	})

	t.Run("not yet valid", func(t *testing.T) {
		c := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				NotBefore: jwt.NewNumericDate(now.Add(time.Hour)),
			},
		}
		require.ErrorIs(t, c.ValidateExpiry(), jwtx.ErrNotYetValid)
	})

	t.Run("leeway forgives recent expiry", func(t *testing.T) {
		c := &jwtx.Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Second)),
			},
		}
		require.NoError(t, c.ValidateExpiryWithLeeway(time.Minute))
	})
}
