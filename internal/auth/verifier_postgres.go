// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/portal/internal/platform/sec"
	"github.com/taibuivan/portal/internal/session"
)

// Querier is the subset of [pgxpool.Pool] used by [PostgresVerifier].
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresVerifier verifies credentials against the users.account table.
type PostgresVerifier struct {
	db        Querier
	dummyHash string
}

// NewPostgresVerifier creates a verifier over the given pool.
func NewPostgresVerifier(db Querier) (*PostgresVerifier, error) {
	filler, err := sec.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("auth_postgres_verifier_filler_failed: %w", err)
	}

	dummyHash, err := sec.HashPassword(filler)
	if err != nil {
		return nil, fmt.Errorf("auth_postgres_verifier_hash_failed: %w", err)
	}

	return &PostgresVerifier{db: db, dummyHash: dummyHash}, nil
}

/*
Verify implements [CredentialVerifier].

Description: Loads the live account by case-insensitive email and compares
the bcrypt hash. Missing rows and hash mismatches both yield
[ErrInvalidCredentials].

Parameters:
  - ctx: context.Context
  - email: string
  - password: string

Returns:
  - *session.User: Identity snapshot
  - error: ErrInvalidCredentials or database failures
*/
func (verifier *PostgresVerifier) Verify(ctx context.Context, email, password string) (*session.User, error) {
	const query = `
		SELECT id, email, displayname, passwordhash
		FROM users.account
		WHERE lower(email) = lower($1) AND deletedat IS NULL`

	var user session.User
	var passwordHash string

	err := verifier.db.QueryRow(ctx, query, email).Scan(&user.ID, &user.Email, &user.Name, &passwordHash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			sec.CheckPasswordHash(password, verifier.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("postgres_account_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(password, passwordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

/*
EnsureAccount seeds the account keyed by its ID.

Description: A row holding the same email under a different ID is removed
first, then the row with the account's ID is inserted or refreshed. Changing
either DEMO_USER_ID or DEMO_USER_EMAIL between restarts therefore converges
on a single row.

Parameters:
  - ctx: context.Context
  - account: Account

Returns:
  - error: Hashing or persistence failures
*/
func (verifier *PostgresVerifier) EnsureAccount(ctx context.Context, account Account) error {
	const releaseEmail = `
		DELETE FROM users.account
		WHERE lower(email) = lower($1) AND id <> $2`

	const upsert = `
		INSERT INTO users.account (id, email, displayname, passwordhash)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET email = EXCLUDED.email,
		    displayname = EXCLUDED.displayname,
		    passwordhash = EXCLUDED.passwordhash,
		    deletedat = NULL`

	passwordHash, err := sec.HashPassword(account.Password)
	if err != nil {
		return fmt.Errorf("postgres_account_hash_failed: %w", err)
	}

	if _, err := verifier.db.Exec(ctx, releaseEmail, account.Email, account.ID); err != nil {
		return fmt.Errorf("postgres_account_release_failed: %w", err)
	}

	if _, err := verifier.db.Exec(ctx, upsert, account.ID, account.Email, account.Name, passwordHash); err != nil {
		return fmt.Errorf("postgres_account_upsert_failed: %w", err)
	}

	return nil
}
