// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/portal/internal/platform/sec"
)

/*
TestPasswordHash verifies the hash/compare round trip.
*/
func TestPasswordHash(t *testing.T) {
	hash, err := sec.HashPasswordWithCost("password", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NotEqual(t, "password", hash)
	assert.True(t, sec.CheckPasswordHash("password", hash))
	assert.False(t, sec.CheckPasswordHash("wrong", hash))
	assert.False(t, sec.CheckPasswordHash("password", "not-a-hash"))
}

/*
TestGenerateSecureToken verifies token length and that draws differ.
*/
func TestGenerateSecureToken(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 100; i++ {
		token, err := sec.GenerateSecureToken(32)
		require.NoError(t, err)

		decoded, err := base64.RawURLEncoding.DecodeString(token)
		require.NoError(t, err)
		assert.Len(t, decoded, 32)

		_, duplicate := seen[token]
		assert.False(t, duplicate)
		seen[token] = struct{}{}
	}
}
