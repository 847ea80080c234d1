// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package users

import (
	"context"
	"net/url"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/portal/internal/platform/validate"
	"github.com/taibuivan/portal/internal/upstream"
	"github.com/taibuivan/portal/pkg/pointer"
	"github.com/taibuivan/portal/pkg/slice"
)

const (
	usersPath    = "/users"
	resourceName = "User"

	maxNameLength  = 100
	maxEmailLength = 254
)

// Gateway is the subset of [upstream.Client] used by [Service].
type Gateway interface {
	Get(ctx context.Context, path string, query url.Values, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Put(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string) error
}

// # Service Layer

// Service implements the user directory use cases on top of the upstream API.
type Service struct {
	gateway Gateway
}

// NewService constructs a new [Service].
func NewService(gateway Gateway) *Service {
	return &Service{gateway: gateway}
}

/*
List returns every upstream user, optionally filtered.

Description: The filter is a case-folded substring match against name or
email. An empty filter returns the full list.

Parameters:
  - ctx: context.Context
  - filter: string

Returns:
  - []User: Matching users in upstream order
  - error: BAD_GATEWAY on upstream failure
*/
func (service *Service) List(ctx context.Context, filter string) ([]User, error) {
	var all []User
	if err := service.gateway.Get(ctx, usersPath, nil, &all); err != nil {
		return nil, upstream.MapError(err, resourceName)
	}

	filter = strings.TrimSpace(filter)
	if filter == "" {
		return all, nil
	}

	// Casers are stateful, so each call gets its own.
	caser := cases.Fold()
	needle := caser.String(filter)

	return slice.Filter(all, func(user User) bool {
		return strings.Contains(caser.String(user.Name), needle) || strings.Contains(caser.String(user.Email), needle)
	}), nil
}

// Get returns one user, or NOT_FOUND when the upstream has no such record.
func (service *Service) Get(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := service.gateway.Get(ctx, userPath(userID), nil, &user); err != nil {
		return nil, upstream.MapError(err, resourceName)
	}
	return &user, nil
}

/*
Create validates input and forwards it to the upstream API.

Returns:
  - *User: The record echoed by the upstream
  - error: VALIDATION_ERROR or BAD_GATEWAY
*/
func (service *Service) Create(ctx context.Context, input CreateInput) (*User, error) {
	validator := &validate.Validator{}
	validator.Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, maxNameLength).
		Required(FieldEmail, input.Email).
		MaxLen(FieldEmail, input.Email, maxEmailLength).
		Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	var created User
	if err := service.gateway.Post(ctx, usersPath, input, &created); err != nil {
		return nil, upstream.MapError(err, resourceName)
	}
	return &created, nil
}

/*
Update applies a partial change to a user.

Description: Only non-nil fields are validated and forwarded.

Returns:
  - *User: The record echoed by the upstream
  - error: VALIDATION_ERROR, NOT_FOUND, or BAD_GATEWAY
*/
func (service *Service) Update(ctx context.Context, userID string, input UpdateInput) (*User, error) {
	validator := &validate.Validator{}
	if input.Name != nil {
		validator.Required(FieldName, pointer.Val(input.Name)).
			MaxLen(FieldName, pointer.Val(input.Name), maxNameLength)
	}
	if input.Email != nil {
		validator.MaxLen(FieldEmail, pointer.Val(input.Email), maxEmailLength).
			Email(FieldEmail, pointer.Val(input.Email))
	}

	if err := validator.Err(); err != nil {
		return nil, err
	}

	var updated User
	if err := service.gateway.Put(ctx, userPath(userID), input, &updated); err != nil {
		return nil, upstream.MapError(err, resourceName)
	}
	return &updated, nil
}

// Delete forwards a delete for userID.
func (service *Service) Delete(ctx context.Context, userID string) (Ack, error) {
	if err := service.gateway.Delete(ctx, userPath(userID)); err != nil {
		return Ack{}, upstream.MapError(err, resourceName)
	}
	return Ack{OK: true}, nil
}

func userPath(userID string) string {
	return usersPath + "/" + url.PathEscape(userID)
}
