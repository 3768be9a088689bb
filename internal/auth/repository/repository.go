package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("not found")
var ErrDuplicateEmail = errors.New("email already registered")

const uniqueViolation = "23505"

type Repository struct {
	pool *pgxpool.Pool
}

func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

type Account struct {
	ID           uuid.UUID
	Name         string
	Email        string
	Phone        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type CreateAccountParams struct {
	Name         string
	Email        string
	Phone        string
	PasswordHash string
}

const insertAccountQuery = `
	INSERT INTO hospital_accounts (name, email, phone, password_hash)
	VALUES ($1, $2, $3, $4)
	RETURNING id, name, email, phone, password_hash, created_at, updated_at`

const insertHospitalQuery = `
	INSERT INTO hospitals (account_id, name)
	VALUES ($1, $2)
	RETURNING id`

const selectAccountByEmailQuery = `
	SELECT id, name, email, phone, password_hash, created_at, updated_at
	FROM hospital_accounts WHERE lower(email) = lower($1)`

const consumeRefreshTokenQuery = `
	UPDATE refresh_tokens SET revoked_at = now()
	WHERE token_hash = $1 AND revoked_at IS NULL
	RETURNING account_id, expires_at`

const selectAccountByIDQuery = `
	SELECT id, name, email, phone, password_hash, created_at, updated_at
	FROM hospital_accounts WHERE id = $1`

func (r *Repository) CreateAccount(ctx context.Context, params CreateAccountParams) (account Account, hospitalID uuid.UUID, err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return Account{}, uuid.Nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	err = scanAccount(tx.QueryRow(ctx, insertAccountQuery,
		params.Name, params.Email, params.Phone, params.PasswordHash,
	), &account)
	if err != nil {
		if isUniqueViolation(err) {
			return Account{}, uuid.Nil, ErrDuplicateEmail
		}
		return Account{}, uuid.Nil, err
	}

	if err = tx.QueryRow(ctx, insertHospitalQuery, account.ID, account.Name).Scan(&hospitalID); err != nil {
		return Account{}, uuid.Nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return Account{}, uuid.Nil, err
	}
	return account, hospitalID, nil
}

func (r *Repository) GetAccountByEmail(ctx context.Context, email string) (Account, error) {
	var account Account
	err := scanAccount(r.pool.QueryRow(ctx, selectAccountByEmailQuery, email), &account)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return account, err
}

func (r *Repository) GetAccountByID(ctx context.Context, accountID uuid.UUID) (Account, error) {
	var account Account
	err := scanAccount(r.pool.QueryRow(ctx, selectAccountByIDQuery, accountID), &account)
	if errors.Is(err, pgx.ErrNoRows) {
		return Account{}, ErrNotFound
	}
	return account, err
}

func (r *Repository) CreateRefreshToken(ctx context.Context, accountID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (account_id, token_hash, expires_at)
		VALUES ($1, $2, $3)
	`, accountID, tokenHash, expiresAt)
	return err
}

func (r *Repository) ConsumeRefreshToken(ctx context.Context, tokenHash string) (uuid.UUID, time.Time, error) {
	var accountID uuid.UUID
	var expiresAt time.Time
	err := r.pool.QueryRow(ctx, consumeRefreshTokenQuery, tokenHash).Scan(&accountID, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.UUID{}, time.Time{}, ErrNotFound
	}
	return accountID, expiresAt, err
}

func (r *Repository) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked_at = now()
		WHERE token_hash = $1 AND revoked_at IS NULL
	`, tokenHash)
	return err
}

func scanAccount(row pgx.Row, account *Account) error {
	return row.Scan(
		&account.ID,
		&account.Name,
		&account.Email,
		&account.Phone,
		&account.PasswordHash,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
