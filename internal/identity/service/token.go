package service

import (
	"time"

	"github.com/gatherly/identity/internal/identity/domain"
	"github.com/gatherly/identity/pkg/jwtx"
)

// TokenService mints signed session tokens for verified accounts. It is a
// pure function of (account, now, signing key): no side effects, and the
// only failure mode is signing-key misconfiguration, which the app treats
// as fatal at startup rather than per-request.
type TokenService struct {
	Signer   jwtx.Signer
	Issuer   string
	Audience []string
	TTL      time.Duration
}

// Issue produces a compact signed token binding the account's stable
// identifier, username and display name, with a mandatory expiry.
func (s *TokenService) Issue(account domain.Account, now time.Time) (string, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = jwtx.DefaultSessionTokenTTL
	}

	claims := jwtx.NewSessionClaims(
		account.ID,
		account.Username,
		account.DisplayName,
		ttl,
		s.Issuer,
		s.Audience,
		now,
	)

	return s.Signer.Sign(claims)
}
