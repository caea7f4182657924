package domain

// ClaimType identifies a kind of assertion in a verified claim set. Using a
// typed key instead of raw claim-name strings keeps lookups exact.
type ClaimType string

const (
	// ClaimNameIdentifier is the canonical identity claim. It is the only
	// claim type consulted when resolving the calling identity.
	ClaimNameIdentifier ClaimType = "name_identifier"

	// ClaimSubject carries the account's stable identifier.
	ClaimSubject ClaimType = "subject"

	// ClaimDisplayName carries the account's display name.
	ClaimDisplayName ClaimType = "display_name"
)

// ClaimSet holds the decoded assertions attached to an inbound request.
// It is only ever built from claims that already passed transport-level
// signature verification at the HTTP boundary.
type ClaimSet map[ClaimType]string

// Get returns the value for a claim type and whether it was present.
func (cs ClaimSet) Get(t ClaimType) (string, bool) {
	v, ok := cs[t]
	return v, ok
}
