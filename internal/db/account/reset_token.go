package account

import (
	"context"
	"errors"
	"time"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	e "authms/internal/core/domain/errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

type PgxResetTokenRepository struct {
	pool *pgxpool.Pool
}

func NewPgxResetTokenRepository(pool *pgxpool.Pool) *PgxResetTokenRepository {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxResetTokenRepository{pool: pool}
}

func (r *PgxResetTokenRepository) Create(ctx context.Context, token account.PasswordResetToken) error {
	// Concurrent forgot-password requests race on the primary key, the
	// upsert keeps last-writer-wins semantics instead of failing one side.
	_, err := r.pool.Exec(
		ctx,
		`INSERT INTO password_reset_token (email, token, expires_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (email) DO UPDATE SET token = EXCLUDED.token, expires_at = EXCLUDED.expires_at`,
		string(token.Email),
		string(token.Token),
		token.ExpiresAt,
	)
	return err
}

func (r *PgxResetTokenRepository) Update(ctx context.Context, token account.PasswordResetToken) error {
	commandTag, err := r.pool.Exec(
		ctx,
		`UPDATE password_reset_token SET token = $2, expires_at = $3 WHERE email = $1`,
		string(token.Email),
		string(token.Token),
		token.ExpiresAt,
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return account.ErrResetTokenNotFound
	}
	return nil
}

func (r *PgxResetTokenRepository) GetByEmail(ctx context.Context, email c.Email) (t account.PasswordResetToken, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT email, token, expires_at FROM password_reset_token WHERE email = $1`,
		string(email),
	)
	t, err = decodeResetToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, account.ErrResetTokenNotFound
	}
	return t, err
}

func (r *PgxResetTokenRepository) GetByToken(ctx context.Context, token account.ResetToken) (t account.PasswordResetToken, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT email, token, expires_at FROM password_reset_token WHERE token = $1`,
		string(token),
	)
	t, err = decodeResetToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, account.ErrResetTokenNotFound
	}
	return t, err
}

func (r *PgxResetTokenRepository) DeleteByEmail(ctx context.Context, email c.Email) error {
	commandTag, err := r.pool.Exec(
		ctx,
		`DELETE FROM password_reset_token WHERE email = $1`,
		string(email),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return account.ErrResetTokenNotFound
	}
	return nil
}

func decodeResetToken(row pgx.Row) (t account.PasswordResetToken, err error) {
	var (
		email     string
		token     string
		expiresAt time.Time
	)
	if err = row.Scan(&email, &token, &expiresAt); err != nil {
		return t, err
	}
	return account.PasswordResetToken{
		Email:     c.Email(email),
		Token:     account.ResetToken(token),
		ExpiresAt: expiresAt,
	}, nil
}
