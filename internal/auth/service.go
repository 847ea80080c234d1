// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements credential verification and the session lifecycle.

Architecture:

  - Service: Orchestrates login, current-user resolution, and logout.
  - CredentialVerifier: Pluggable identity backend (fixed accounts or Postgres).
  - Store: The [session.Store] this package exclusively writes to.

Errors leave the service as [apperr.AppError] values: VALIDATION_ERROR for
malformed login input and UNAUTHORIZED for every authentication failure.
*/
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/taibuivan/portal/internal/platform/apperr"
	"github.com/taibuivan/portal/internal/platform/sec"
	"github.com/taibuivan/portal/internal/platform/validate"
	"github.com/taibuivan/portal/internal/session"
)

// errTokenExhausted is returned when every drawn token already names a live session.
var errTokenExhausted = errors.New("auth: no unique token after retries")

// # Contracts & Types

// Credentials is the input to [Service.Login]. It is never persisted.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Ack acknowledges a logout.
type Ack struct {
	OK bool `json:"ok"`
}

// Service implements the authentication use cases.
//
// It is the only component allowed to create or delete sessions.
type Service struct {
	store      session.Store
	verifier   CredentialVerifier
	sessionTTL time.Duration
}

// NewService constructs a new [Service].
//
// A sessionTTL of zero issues sessions that live until logout.
func NewService(store session.Store, verifier CredentialVerifier, sessionTTL time.Duration) *Service {
	return &Service{
		store:      store,
		verifier:   verifier,
		sessionTTL: sessionTTL,
	}
}

// # Authentication Flow

/*
Login validates credentials and issues a new session.

Description: Checks input shape first and stops there on failure, then asks
the verifier, then stores a session under a freshly drawn token.

Parameters:
  - ctx: context.Context
  - credentials: Credentials

Returns:
  - *session.Session: The issued session (token and user snapshot)
  - err: VALIDATION_ERROR, UNAUTHORIZED, or backend failures
*/
func (service *Service) Login(ctx context.Context, credentials Credentials) (*session.Session, error) {
	validator := &validate.Validator{}
	validator.Required(FieldEmail, credentials.Email).
		Email(FieldEmail, credentials.Email).
		Required(FieldPassword, credentials.Password).
		MinLen(FieldPassword, credentials.Password, MinPasswordLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	user, err := service.verifier.Verify(ctx, credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, apperr.Unauthorized(MessageInvalidCredentials)
		}
		return nil, fmt.Errorf("auth_service_verify_failed: %w", err)
	}

	token, err := service.issueToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	now := time.Now()
	issued := session.Session{
		Token:     token,
		User:      *user,
		CreatedAt: now,
	}
	if service.sessionTTL > 0 {
		issued.ExpiresAt = now.Add(service.sessionTTL)
	}

	if err := service.store.Put(ctx, token, issued); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &issued, nil
}

/*
CurrentUser resolves the user bound to token.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *session.User: Snapshot captured at login
  - err: UNAUTHORIZED when no live session exists, or backend failures
*/
func (service *Service) CurrentUser(ctx context.Context, token string) (*session.User, error) {
	found, err := service.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}

	if found == nil {
		return nil, apperr.Unauthorized(MessageNotAuthenticated)
	}

	user := found.User
	return &user, nil
}

/*
Logout destroys the session bound to token.

Description: Idempotent. Logging out an unknown or already removed token
succeeds.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - Ack: Always OK when err is nil
  - err: Backend failures only
*/
func (service *Service) Logout(ctx context.Context, token string) (Ack, error) {
	if token != "" {
		if err := service.store.Delete(ctx, token); err != nil {
			return Ack{}, fmt.Errorf("auth_service_logout_failed: %w", err)
		}
	}

	return Ack{OK: true}, nil
}

// # Session Resolution

/*
ResolveSession looks up token without treating absence as an error.

Parameters:
  - ctx: context.Context
  - token: string

Returns:
  - *session.Session: The live session, or nil
  - err: Backend failures only
*/
func (service *Service) ResolveSession(ctx context.Context, token string) (*session.Session, error) {
	if token == "" {
		return nil, nil
	}

	found, err := service.store.Get(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("auth_service_session_lookup_failed: %w", err)
	}

	return found, nil
}

// issueToken draws tokens until one is not held by a live session.
func (service *Service) issueToken(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxTokenAttempts; attempt++ {
		token, err := sec.GenerateSecureToken(TokenLength)
		if err != nil {
			return "", err
		}

		existing, err := service.store.Get(ctx, token)
		if err != nil {
			return "", err
		}
		if existing == nil {
			return token, nil
		}
	}

	return "", errTokenExhausted
}

// # Error Classification

// IsValidationError reports whether err is a malformed-input failure from [Service.Login].
func IsValidationError(err error) bool {
	return apperr.HasCode(err, apperr.CodeValidation)
}

// IsAuthenticationError reports whether err is an authentication failure.
func IsAuthenticationError(err error) bool {
	return apperr.HasCode(err, apperr.CodeUnauthorized)
}
