// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides the cryptographic primitives used by authentication:
// password hashing and session token generation.
package sec

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	return HashPasswordWithCost(plainTextPassword, bcrypt.DefaultCost)
}

// HashPasswordWithCost hashes a plain-text password with an explicit bcrypt cost.
// Costs below [bcrypt.MinCost] are raised to it by bcrypt itself.
func HashPasswordWithCost(plainTextPassword string, cost int) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// CheckPasswordHash compares a plain-text password with its hashed version.
func CheckPasswordHash(plainTextPassword, existingHash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	return err == nil
}
