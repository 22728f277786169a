package account

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"authms/internal/core/domain/account"
	c "authms/internal/core/domain/common"
	e "authms/internal/core/domain/errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "account_email_idx"

const accountColumns = "id, email, first_name, last_name, password_hash, role, is_verified, avatar, created_at"

type PgxAccountRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	return &PgxAccountRepository{pool: pool}
}

func (r *PgxAccountRepository) Create(ctx context.Context, input account.CreateAccountInput) (a account.Account, err error) {
	row := r.pool.QueryRow(
		ctx,
		`INSERT INTO account (id, email, first_name, last_name, password_hash, role, is_verified, avatar, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8)
		 RETURNING `+accountColumns,
		account.NewID().String(),
		string(input.Email),
		encodeOptionalString(input.FirstName),
		encodeOptionalString(input.LastName),
		encodePasswordHash(input.PasswordHash),
		input.Role.String(),
		input.Avatar,
		input.CreatedAt,
	)
	a, err = decodeAccount(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return a, account.ErrEmailAlreadyExists
		}
	}
	return a, err
}

func (r *PgxAccountRepository) GetByID(ctx context.Context, id account.ID) (a account.Account, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+accountColumns+` FROM account WHERE id = $1`,
		id.String(),
	)
	a, err = decodeAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	return a, err
}

func (r *PgxAccountRepository) GetByEmail(ctx context.Context, email c.Email) (a account.Account, err error) {
	row := r.pool.QueryRow(
		ctx,
		`SELECT `+accountColumns+` FROM account WHERE email = $1`,
		string(email),
	)
	a, err = decodeAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	return a, err
}

func (r *PgxAccountRepository) SetVerified(ctx context.Context, id account.ID) (a account.Account, err error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE account SET is_verified = TRUE WHERE id = $1 RETURNING `+accountColumns,
		id.String(),
	)
	a, err = decodeAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	return a, err
}

func (r *PgxAccountRepository) SetPassword(ctx context.Context, id account.ID, password account.PasswordHash) error {
	commandTag, err := r.pool.Exec(
		ctx,
		`UPDATE account SET password_hash = $2 WHERE id = $1`,
		id.String(),
		string(password),
	)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return account.ErrAccountDoesNotExist
	}
	return nil
}

func (r *PgxAccountRepository) Update(ctx context.Context, input account.UpdateAccountInput) (a account.Account, err error) {
	row := r.pool.QueryRow(
		ctx,
		`UPDATE account SET
			first_name = CASE WHEN $2 THEN $3 ELSE first_name END,
			last_name  = CASE WHEN $4 THEN $5 ELSE last_name END,
			avatar     = CASE WHEN $6 THEN $7 ELSE avatar END
		 WHERE id = $1
		 RETURNING `+accountColumns,
		input.ID.String(),
		input.DoFirstNameUpdate,
		encodeOptionalString(input.FirstName),
		input.DoLastNameUpdate,
		encodeOptionalString(input.LastName),
		input.DoAvatarUpdate,
		input.Avatar,
	)
	a, err = decodeAccount(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return a, account.ErrAccountDoesNotExist
	}
	return a, err
}

func encodeOptionalString(value c.Optional[string]) sql.NullString {
	return sql.NullString{String: value.Value, Valid: value.IsPresent}
}

func encodePasswordHash(ph c.Optional[account.PasswordHash]) sql.NullString {
	return sql.NullString{String: string(ph.Value), Valid: ph.IsPresent}
}

func decodeAccount(row pgx.Row) (a account.Account, err error) {
	var (
		rawID        string
		email        string
		firstName    sql.NullString
		lastName     sql.NullString
		passwordHash sql.NullString
		rawRole      string
		isVerified   bool
		avatar       string
		createdAt    time.Time
	)
	err = row.Scan(&rawID, &email, &firstName, &lastName, &passwordHash, &rawRole, &isVerified, &avatar, &createdAt)
	if err != nil {
		return a, err
	}

	id, err := account.ParseID(rawID)
	if err != nil {
		return a, err
	}
	role, err := account.ParseRole(rawRole)
	if err != nil {
		return a, err
	}

	return account.Account{
		ID:           id,
		Email:        c.Email(email),
		FirstName:    c.NewOptional(firstName.String, firstName.Valid),
		LastName:     c.NewOptional(lastName.String, lastName.Valid),
		PasswordHash: c.NewOptional(account.PasswordHash(passwordHash.String), passwordHash.Valid),
		Role:         role,
		IsVerified:   isVerified,
		Avatar:       avatar,
		CreatedAt:    createdAt,
	}, nil
}
