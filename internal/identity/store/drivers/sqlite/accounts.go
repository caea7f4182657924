package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/gatherly/identity/internal/identity/domain"
)

type accountsRepo struct {
	db *sql.DB
}

const accountColumns = `id, email, username, display_name, password_hash, bio, image, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByEmail(ctx context.Context, email string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE email = ?`, email)
	return scanAccount(row)
}

func (r *accountsRepo) GetAccountByUsername(ctx context.Context, username string) (domain.Account, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE username = ?`, username)
	return scanAccount(row)
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	now := time.Now().UTC()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, email, username, display_name, password_hash, bio, image, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.Username, a.DisplayName, a.PasswordHash,
		nullString(a.Bio), nullString(a.Image), now, now,
	)
	if err != nil {
		return mapConstraint(err)
	}
	return nil
}

func (r *accountsRepo) UpdateProfile(ctx context.Context, accountID, displayName, bio, image string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE accounts SET display_name = ?, bio = ?, image = ?, updated_at = ? WHERE id = ?`,
		displayName, nullString(bio), nullString(image), time.Now().UTC(), accountID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return mapNotFound(sql.ErrNoRows)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (domain.Account, error) {
	var a domain.Account
	var bio, image sql.NullString
	err := row.Scan(
		&a.ID, &a.Email, &a.Username, &a.DisplayName, &a.PasswordHash,
		&bio, &image, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	a.Bio = mapNullString(bio)
	a.Image = mapNullString(image)
	return a, nil
}

func mapNullString(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}
