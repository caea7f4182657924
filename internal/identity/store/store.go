package store

import (
	"context"
	"errors"

	"github.com/gatherly/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Accounts() Accounts

	ApplyMigrations() error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

type Accounts interface {
	// GetAccountByID returns an account by its stable identifier.
	GetAccountByID(ctx context.Context, id string) (domain.Account, error)

	// GetAccountByEmail is used during login.
	GetAccountByEmail(ctx context.Context, email string) (domain.Account, error)

	// GetAccountByUsername is used to resolve the current caller and for
	// uniqueness checks at registration.
	GetAccountByUsername(ctx context.Context, username string) (domain.Account, error)

	// CreateAccount inserts a new account (id is provided by app via ULID).
	// Returns ErrAlreadyExists if the email or username is taken; the
	// uniqueness check is atomic with the insert.
	CreateAccount(ctx context.Context, a domain.Account) error

	// UpdateProfile mutates display_name, bio and image and bumps
	// updated_at. The identifier and credential are never touched here.
	UpdateProfile(ctx context.Context, accountID, displayName, bio, image string) error
}
