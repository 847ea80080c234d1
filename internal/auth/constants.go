// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// MinPasswordLength is the shortest password accepted by [Service.Login].
	MinPasswordLength = 4

	// TokenLength is the byte length of the random session token.
	TokenLength = 32

	// maxTokenAttempts bounds how many times a colliding token is re-drawn.
	maxTokenAttempts = 3

	// DefaultSessionTTL is used when the configuration does not override it.
	DefaultSessionTTL = 24 * time.Hour
)

// # Client Messages

// Both failure paths of a login share one message so that callers cannot
// tell an unknown email from a wrong password.
const (
	MessageInvalidCredentials = "Invalid credentials"
	MessageNotAuthenticated   = "Not authenticated"
)

// # Field Identifiers

const (
	FieldEmail    = "email"
	FieldPassword = "password"
)
