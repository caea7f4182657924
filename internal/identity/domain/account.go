package domain

import "time"

// Account is the durable identity record. The ID is assigned at creation and
// never changes. Email and Username are unique across all accounts.
// PasswordHash holds the argon2 encoded credential and must never be
// serialized to clients or compared outside cryptox.
type Account struct {
	ID           string
	Email        string
	Username     string
	DisplayName  string
	PasswordHash string // argon2 encoded
	Bio          string
	Image        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is the transient result of a successful authentication. It is
// never persisted and never constructed for an identity that failed
// verification; the caller transports the token as a bearer credential.
type Session struct {
	Username    string
	DisplayName string
	Token       string
}
