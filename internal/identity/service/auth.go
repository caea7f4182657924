package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gatherly/identity/internal/identity/domain"
	"github.com/gatherly/identity/internal/identity/store"
	"github.com/gatherly/identity/pkg/cryptox"
	"github.com/gatherly/identity/pkg/idx"
	"github.com/gatherly/identity/pkg/slogx"
)

var (
	// ErrUnauthorized is the single undifferentiated authentication
	// failure. Unknown email and wrong password both return exactly this
	// value so callers cannot enumerate accounts.
	ErrUnauthorized = errors.New("service: unauthorized")

	// ErrConflict reports a uniqueness violation at registration without
	// naming the colliding field.
	ErrConflict = errors.New("service: registration conflict")
)

// ValidationError enumerates every violated input rule so a UI can show
// them all at once. It never reaches the store.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "service: validation failed: " + strings.Join(e.Violations, "; ")
}

// AuthService coordinates the registration, login and current-user flows.
// Each flow is a stateless unit of work; concurrent callers share nothing
// mutable beyond the store.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// RegisterParams are the inputs to Register.
type RegisterParams struct {
	Email       string
	Username    string
	Password    string
	DisplayName string
}

// Profile is the public view of an account returned by CurrentUser. The
// hashed credential never appears here.
type Profile struct {
	Username    string
	DisplayName string
	Bio         string
	Image       string
	Token       string
}

// Register creates a new account with a hashed credential and returns a
// fresh session for it.
func (s *AuthService) Register(ctx context.Context, p RegisterParams) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Validate structural inputs. Every violation is collected; nothing
	// touches the store on failure.
	var violations []string
	if p.Email == "" {
		violations = append(violations, "email is required")
	}
	if p.Username == "" {
		violations = append(violations, "username is required")
	}
	if p.DisplayName == "" {
		violations = append(violations, "display name is required")
	}
	violations = append(violations, cryptox.ValidatePassword(p.Password)...)
	if len(violations) > 0 {
		return domain.Session{}, &ValidationError{Violations: violations}
	}

	// 2. Check email and username availability. The store's unique
	// constraints are still the authority; this just catches the common
	// case before hashing work.
	if err := s.checkAvailability(ctx, p.Email, p.Username); err != nil {
		return domain.Session{}, err
	}

	// 3. Hash the password using Argon2id.
	passwordHash, err := cryptox.HashPassword(p.Password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Session{}, err
	}

	// 4. Create the account. A concurrent registration racing on the same
	// email or username loses at the unique constraint.
	account := domain.Account{
		ID:           idx.New().String(),
		Email:        p.Email,
		Username:     p.Username,
		DisplayName:  p.DisplayName,
		PasswordHash: passwordHash,
	}
	if err := s.Store.Accounts().CreateAccount(ctx, account); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			log.Warn("registration conflict", slog.String("username", p.Username))
			return domain.Session{}, ErrConflict
		}
		log.Error("failed to create account", slog.Any("error", err))
		return domain.Session{}, err
	}

	log.Info("account registered",
		slog.String("account_id", account.ID),
		slog.String("username", account.Username),
	)

	// 5. Issue a session for the new account.
	return s.newSession(account)
}

// Login verifies a presented credential and returns a fresh session.
// The failure for an unknown email and the failure for a wrong password
// are deliberately indistinguishable.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	log := slogx.FromContext(ctx)

	// 1. Presence checks only. The password policy does not re-run at
	// login; the stored hash is the authority.
	var violations []string
	if email == "" {
		violations = append(violations, "email is required")
	}
	if password == "" {
		violations = append(violations, "password is required")
	}
	if len(violations) > 0 {
		return domain.Session{}, &ValidationError{Violations: violations}
	}

	// 2. Look up the account by email.
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Info("login failed")
			return domain.Session{}, ErrUnauthorized
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Session{}, err
	}

	// 3. Verify the password against the stored hash.
	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		log.Info("login failed")
		return domain.Session{}, ErrUnauthorized
	}

	// 4. Issue a session.
	return s.newSession(account)
}

// CurrentUser resolves the caller from an already-verified claim set and
// returns the matching public profile with a freshly issued token.
func (s *AuthService) CurrentUser(ctx context.Context, claims domain.ClaimSet) (Profile, error) {
	log := slogx.FromContext(ctx)

	// 1. Resolve identity from the verified claims.
	username, err := ResolveIdentity(claims)
	if err != nil {
		return Profile{}, ErrUnauthorized
	}

	// 2. Load the account.
	account, err := s.Store.Accounts().GetAccountByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrUnauthorized
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return Profile{}, err
	}

	// 3. Re-issue the token so the caller always leaves with a fresh
	// expiry.
	token, err := s.Tokens.Issue(account, time.Now().UTC())
	if err != nil {
		return Profile{}, fmt.Errorf("issue token: %w", err)
	}

	return Profile{
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Bio:         account.Bio,
		Image:       account.Image,
		Token:       token,
	}, nil
}

// checkAvailability maps an existing email or username to the generic
// conflict error.
func (s *AuthService) checkAvailability(ctx context.Context, email, username string) error {
	if _, err := s.Store.Accounts().GetAccountByEmail(ctx, email); err == nil {
		return ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.Store.Accounts().GetAccountByUsername(ctx, username); err == nil {
		return ErrConflict
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	return nil
}

func (s *AuthService) newSession(account domain.Account) (domain.Session, error) {
	token, err := s.Tokens.Issue(account, time.Now().UTC())
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue token: %w", err)
	}

	return domain.Session{
		Username:    account.Username,
		DisplayName: account.DisplayName,
		Token:       token,
	}, nil
}
