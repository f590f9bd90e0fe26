package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/wekip/internal/common"
	"github.com/dmitrijs2005/wekip/internal/dbx"
)

const (
	pgUniqueViolation = "23505"
	pgInvalidText     = "22P02"
)

// PostgresRepository stores users in the users table created by the server
// migrations.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func (r *PostgresRepository) Create(ctx context.Context, user *User) (*User, error) {
	query :=
		`INSERT INTO users (email, username, password_hash, verified, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id
		 `

	u := *user
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.Username, u.PasswordHash, u.Verified, u.CreatedAt).Scan(&u.ID)

	if err != nil {
		if pgCode(err) == pgUniqueViolation {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return &u, nil
}

func (r *PostgresRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	query :=
		`SELECT id, email, username, password_hash, verified, created_at FROM users
		 WHERE lower(email) = lower($1)
		 `
	return r.getUser(ctx, query, strings.TrimSpace(email))
}

func (r *PostgresRepository) GetUserByID(ctx context.Context, id string) (*User, error) {
	query :=
		`SELECT id, email, username, password_hash, verified, created_at FROM users
		 WHERE id = $1
		 `
	return r.getUser(ctx, query, id)
}

func (r *PostgresRepository) getUser(ctx context.Context, query string, arg string) (*User, error) {
	u := &User{}
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Verified, &u.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || pgCode(err) == pgInvalidText {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return u, nil
}

func (r *PostgresRepository) MarkVerified(ctx context.Context, id string) error {
	return r.update(ctx, `UPDATE users SET verified = TRUE WHERE id = $1`, id)
}

func (r *PostgresRepository) SetPasswordHash(ctx context.Context, id string, hash []byte) error {
	return r.update(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, id, hash)
}

func (r *PostgresRepository) update(ctx context.Context, query string, args ...any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		if pgCode(err) == pgInvalidText {
			return common.ErrorNotFound
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}
