// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import "context"

// # Session Data Access

// Store defines the data access contract for live sessions.
//
// Implementations must be safe for concurrent use and linearizable per key.
type Store interface {

	/*
		Put inserts or overwrites the session stored under token.

		Parameters:
		  - ctx: context.Context
		  - token: string
		  - session: Session

		Returns:
		  - error: Backend transport failures only
	*/
	Put(ctx context.Context, token string, session Session) error

	/*
		Get returns the live session stored under token.

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - *Session: A copy of the stored session, or nil when the token is
		    empty, unknown, or expired
		  - error: Backend transport failures only; absence is never an error
	*/
	Get(ctx context.Context, token string) (*Session, error)

	/*
		Delete removes the session stored under token. Deleting an absent
		token is a no-op.

		Parameters:
		  - ctx: context.Context
		  - token: string

		Returns:
		  - error: Backend transport failures only
	*/
	Delete(ctx context.Context, token string) error
}
