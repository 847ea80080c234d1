// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package users proxies the upstream user directory.

Only the id, name and email of each upstream record are exposed. Mutations are
forwarded to the upstream API, which may or may not persist them.
*/
package users

// # Domain Types

// User is the public projection of an upstream user record.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateInput is the payload for [Service.Create].
type CreateInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// UpdateInput is the payload for [Service.Update]. Nil fields are left unchanged.
type UpdateInput struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
}

// Ack acknowledges a delete.
type Ack struct {
	OK bool `json:"ok"`
}

// # Field Identifiers

const (
	FieldName  = "name"
	FieldEmail = "email"
)
