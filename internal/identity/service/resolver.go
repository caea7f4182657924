package service

import (
	"errors"

	"github.com/gatherly/identity/internal/identity/domain"
)

// ErrNoIdentity reports a claim set with no resolvable identity. The caller
// treats this as an authorization failure.
var ErrNoIdentity = errors.New("service: no identity in claim set")

// ResolveIdentity extracts the canonical identity from a verified claim
// set. Only the name-identifier claim is consulted; every other claim type
// is ignored for identity resolution. The claim set is assumed to have
// passed transport-level signature verification already, so no
// cryptographic check happens here.
func ResolveIdentity(cs domain.ClaimSet) (string, error) {
	username, ok := cs.Get(domain.ClaimNameIdentifier)
	if !ok || username == "" {
		return "", ErrNoIdentity
	}
	return username, nil
}
