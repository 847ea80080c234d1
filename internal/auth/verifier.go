// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taibuivan/portal/internal/platform/sec"
	"github.com/taibuivan/portal/internal/session"
)

// # Credential Verification

// ErrInvalidCredentials is returned by a [CredentialVerifier] when the email is
// unknown or the password does not match. Verifiers must not distinguish the two.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// CredentialVerifier checks an email/password pair against an identity backend.
//
// Input shape has already been validated by [Service.Login] when Verify runs.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*session.User, error)
}

// Account is a fixed identity served by [StaticVerifier].
type Account struct {
	ID       string
	Email    string
	Name     string
	Password string
}

type staticAccount struct {
	user         session.User
	passwordHash string
}

// StaticVerifier verifies credentials against a fixed set of accounts held in memory.
//
// Passwords are kept only as bcrypt hashes. Unknown emails are still checked
// against a throwaway hash so that both failure paths cost the same.
type StaticVerifier struct {
	accounts  map[string]staticAccount
	dummyHash string
}

// NewStaticVerifier hashes the account passwords with the given bcrypt cost.
func NewStaticVerifier(cost int, accounts ...Account) (*StaticVerifier, error) {
	verifier := &StaticVerifier{accounts: make(map[string]staticAccount, len(accounts))}

	for _, account := range accounts {
		hash, err := sec.HashPasswordWithCost(account.Password, cost)
		if err != nil {
			return nil, fmt.Errorf("auth_static_verifier_hash_failed: %w", err)
		}

		verifier.accounts[normalizeEmail(account.Email)] = staticAccount{
			user:         session.User{ID: account.ID, Email: account.Email, Name: account.Name},
			passwordHash: hash,
		}
	}

	filler, err := sec.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("auth_static_verifier_filler_failed: %w", err)
	}
	verifier.dummyHash, err = sec.HashPasswordWithCost(filler, cost)
	if err != nil {
		return nil, fmt.Errorf("auth_static_verifier_hash_failed: %w", err)
	}

	return verifier, nil
}

// Verify implements [CredentialVerifier].
func (verifier *StaticVerifier) Verify(_ context.Context, email, password string) (*session.User, error) {
	account, found := verifier.accounts[normalizeEmail(email)]
	if !found {
		sec.CheckPasswordHash(password, verifier.dummyHash)
		return nil, ErrInvalidCredentials
	}

	if !sec.CheckPasswordHash(password, account.passwordHash) {
		return nil, ErrInvalidCredentials
	}

	user := account.user
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
