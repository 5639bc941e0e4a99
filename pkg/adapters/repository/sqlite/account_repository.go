package sqlite

import (
	"context"
	"database/sql"

	"github.com/warakornp/go-shortlink/pkg/core/domain"
	"github.com/warakornp/go-shortlink/pkg/ports"
)

type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO accounts (email, username, password_hash, role, secret, created_at)
			  VALUES (?, ?, ?, ?, ?, ?)`

	res, err := r.db.ExecContext(ctx, query,
		account.Email, account.Username, account.PasswordHash, account.Role,
		nullString(account.Secret), account.CreatedAt)
	if err != nil {
		return mapConstraintError(err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	account.ID = id
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.get(ctx, `WHERE id = ?`, id)
}

func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.get(ctx, `WHERE username = ?`, username)
}

func (r *AccountRepository) get(ctx context.Context, where string, arg any) (*domain.Account, error) {
	query := `SELECT id, email, username, password_hash, role, secret, created_at
			  FROM accounts ` + where

	var account domain.Account
	var secret sql.NullString

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&account.ID, &account.Email, &account.Username, &account.PasswordHash,
		&account.Role, &secret, &account.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	account.Secret = secret.String
	return &account, nil
}

func (r *AccountRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&count)
	return count, err
}

func (r *AccountRepository) UpdateEmail(ctx context.Context, id int64, email string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE accounts SET email = ? WHERE id = ?`, email, id)
	return mapConstraintError(err)
}

func (r *AccountRepository) UpdateUsername(ctx context.Context, id int64, username string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE accounts SET username = ? WHERE id = ?`, username, id)
	return mapConstraintError(err)
}

func (r *AccountRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE accounts SET password_hash = ? WHERE id = ?`, hash, id)
	return err
}

func (r *AccountRepository) UpdateSecret(ctx context.Context, id int64, secret string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE accounts SET secret = ? WHERE id = ?`, secret, id)
	return err
}

// Ensure interface compliance
var _ ports.AccountRepository = (*AccountRepository)(nil)
