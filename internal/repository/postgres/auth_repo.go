// internal/repository/postgres/auth_repository.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"crm-service/internal/domain/auth"
	xerrors "crm-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type AuthRepository struct {
	db *pgxpool.Pool
}

func NewAuthRepository(db *pgxpool.Pool) *AuthRepository {
	return &AuthRepository{db: db}
}

// CreateAccount inserts a new account row.
func (r *AuthRepository) CreateAccount(ctx context.Context, account *auth.Account) error {
	query := `
		INSERT INTO accounts (id, email, display_name, password_hash, roles)
		VALUES ($1, LOWER($2), $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		account.ID, account.Email, account.DisplayName, account.PasswordHash, account.Roles,
	).Scan(&account.CreatedAt, &account.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// FindAccountByEmail retrieves an account by email
func (r *AuthRepository) FindAccountByEmail(ctx context.Context, email string) (*auth.Account, error) {
	query := `
		SELECT id, email, display_name, password_hash, roles, last_login, created_at, updated_at
		FROM accounts
		WHERE LOWER(email) = LOWER($1)
	`

	var account auth.Account
	err := r.db.QueryRow(ctx, query, email).Scan(
		&account.ID, &account.Email, &account.DisplayName, &account.PasswordHash,
		&account.Roles, &account.LastLogin, &account.CreatedAt, &account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

// FindAccountByID retrieves an account by its ULID
func (r *AuthRepository) FindAccountByID(ctx context.Context, id string) (*auth.Account, error) {
	query := `
		SELECT id, email, display_name, password_hash, roles, last_login, created_at, updated_at
		FROM accounts
		WHERE id = $1
	`

	var account auth.Account
	err := r.db.QueryRow(ctx, query, id).Scan(
		&account.ID, &account.Email, &account.DisplayName, &account.PasswordHash,
		&account.Roles, &account.LastLogin, &account.CreatedAt, &account.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account: %w", err)
	}

	return &account, nil
}

// UpdateLastLogin stamps the last successful login.
func (r *AuthRepository) UpdateLastLogin(ctx context.Context, id string) error {
	query := `UPDATE accounts SET last_login = NOW(), updated_at = NOW() WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	return nil
}

// ExistsByEmail reports whether an account with the email exists.
func (r *AuthRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM accounts WHERE LOWER(email) = LOWER($1))`

	var exists bool
	if err := r.db.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check account existence: %w", err)
	}
	return exists, nil
}
