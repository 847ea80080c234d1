// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session holds the live bindings between opaque bearer tokens and
user identities.

# Ownership

A single [Store] is constructed at startup and handed to the auth service,
which is the only writer. The middleware chain reads through the auth
service and never touches the store directly.

# Lifecycle

A [Session] is created by a successful login and destroyed by logout or by
expiry. It is never mutated in place: stores keep their own copy and hand
out copies.
*/
package session

import "time"

// # Domain Entities

// User is the identity snapshot captured at login time.
// It is not re-fetched on later requests.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Session binds a token to a user snapshot.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`

	// ExpiresAt is the absolute expiry. The zero value means the session
	// lives until logout or process exit.
	ExpiresAt time.Time `json:"expires_at,omitempty"`
}

// ExpiredAt reports whether the session is no longer valid at instant now.
func (s *Session) ExpiredAt(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
