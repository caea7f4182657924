package service_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gatherly/identity/internal/identity/domain"
	"github.com/gatherly/identity/internal/identity/service"
	"github.com/gatherly/identity/internal/identity/store/drivers/sqlite"
	"github.com/gatherly/identity/pkg/cryptox"
	"github.com/gatherly/identity/pkg/jwtx"
)

func TestMain(m *testing.M) {
	pepperPath := filepath.Join(os.TempDir(), "identity-service-test-pepper")
	cryptox.SetPepperPath(pepperPath)
	os.Remove(pepperPath)
	defer os.Remove(pepperPath)

	os.Exit(m.Run())
}

func newAuthService(t *testing.T) (*service.AuthService, *jwtx.KeySet) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	require.NoError(t, err)
	pemKey := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	signer, err := jwtx.NewSignerEdDSA("test-key", pemKey)
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	return &service.AuthService{
		Store: st,
		Tokens: &service.TokenService{
			Signer:   signer,
			Issuer:   "identity-test",
			Audience: []string{"gatherly"},
			TTL:      time.Hour,
		},
	}, keys
}

func validParams() service.RegisterParams {
	return service.RegisterParams{
		Email:       "a@b.com",
		Username:    "alice",
		Password:    "Passw0rd",
		DisplayName: "Alice",
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("valid registration returns a session with a token", func(t *testing.T) {
		svc, keys := newAuthService(t)

		session, err := svc.Register(ctx, validParams())
		require.NoError(t, err)
		require.Equal(t, "alice", session.Username)
		require.Equal(t, "Alice", session.DisplayName)
		require.NotEmpty(t, session.Token)

		verifier := jwtx.NewVerifierEdDSA(keys, "identity-test", []string{"gatherly"})
		claims, err := verifier.Verify(session.Token)
		require.NoError(t, err)
		require.Equal(t, "alice", claims.Username)
		require.NotEmpty(t, claims.Subject)
		require.NotNil(t, claims.ExpiresAt)
	})

	t.Run("policy violations are all reported and nothing is stored", func(t *testing.T) {
		svc, _ := newAuthService(t)

		p := validParams()
		p.Password = "abc"
		_, err := svc.Register(ctx, p)

		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Equal(t, []string{
			cryptox.ViolationTooShort,
			cryptox.ViolationNoUppercase,
		}, verr.Violations)

		// Login with the same email must not find an account.
		_, err = svc.Login(ctx, p.Email, "Passw0rd")
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("missing fields are enumerated", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, service.RegisterParams{Password: "Passw0rd"})

		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Contains(t, verr.Violations, "email is required")
		require.Contains(t, verr.Violations, "username is required")
		require.Contains(t, verr.Violations, "display name is required")
	})

	t.Run("duplicate email is a generic conflict", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, validParams())
		require.NoError(t, err)

		p := validParams()
		p.Username = "alice2"
		_, err = svc.Register(ctx, p)
		require.ErrorIs(t, err, service.ErrConflict)

		// The losing registration must not have created an account.
		_, err = svc.Login(ctx, p.Email, "Passw0rd")
		require.NoError(t, err, "original account still the only one for that email")
		_, err = svc.CurrentUser(ctx, domain.ClaimSet{domain.ClaimNameIdentifier: "alice2"})
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("duplicate username is a generic conflict", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, validParams())
		require.NoError(t, err)

		p := validParams()
		p.Email = "other@b.com"
		_, err = svc.Register(ctx, p)
		require.ErrorIs(t, err, service.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("register then login round trips", func(t *testing.T) {
		svc, _ := newAuthService(t)

		registered, err := svc.Register(ctx, validParams())
		require.NoError(t, err)

		session, err := svc.Login(ctx, "a@b.com", "Passw0rd")
		require.NoError(t, err)
		require.Equal(t, registered.Username, session.Username)
		require.NotEmpty(t, session.Token)
	})

	t.Run("wrong password and unknown email are identical failures", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, validParams())
		require.NoError(t, err)

		_, wrongPassword := svc.Login(ctx, "a@b.com", "wrong")
		_, unknownEmail := svc.Login(ctx, "nobody@x.com", "Passw0rd")

		require.ErrorIs(t, wrongPassword, service.ErrUnauthorized)
		require.ErrorIs(t, unknownEmail, service.ErrUnauthorized)
		require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
	})

	t.Run("missing inputs fail validation before the store", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Login(ctx, "", "")
		var verr *service.ValidationError
		require.ErrorAs(t, err, &verr)
		require.Len(t, verr.Violations, 2)
	})
}

func TestCurrentUser(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves profile from claim set", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.Register(ctx, validParams())
		require.NoError(t, err)

		profile, err := svc.CurrentUser(ctx, domain.ClaimSet{
			domain.ClaimNameIdentifier: "alice",
			domain.ClaimDisplayName:    "ignored for resolution",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", profile.Username)
		require.Equal(t, "Alice", profile.DisplayName)
		require.NotEmpty(t, profile.Token)
	})

	t.Run("claim set without name identifier is unauthorized", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.CurrentUser(ctx, domain.ClaimSet{
			domain.ClaimDisplayName: "Alice",
		})
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})

	t.Run("unknown identity is unauthorized", func(t *testing.T) {
		svc, _ := newAuthService(t)

		_, err := svc.CurrentUser(ctx, domain.ClaimSet{
			domain.ClaimNameIdentifier: "ghost",
		})
		require.ErrorIs(t, err, service.ErrUnauthorized)
	})
}

func TestResolveIdentity(t *testing.T) {
	t.Run("returns the name identifier", func(t *testing.T) {
		username, err := service.ResolveIdentity(domain.ClaimSet{
			domain.ClaimNameIdentifier: "alice",
			domain.ClaimSubject:        "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		})
		require.NoError(t, err)
		require.Equal(t, "alice", username)
	})

	t.Run("empty claim set", func(t *testing.T) {
		_, err := service.ResolveIdentity(domain.ClaimSet{})
		require.ErrorIs(t, err, service.ErrNoIdentity)
	})

	t.Run("other claim types are ignored", func(t *testing.T) {
		_, err := service.ResolveIdentity(domain.ClaimSet{
			domain.ClaimSubject: "01ARZ3NDEKTSV4RRFFQ69G5FAV",
		})
		require.ErrorIs(t, err, service.ErrNoIdentity)
	})
}
