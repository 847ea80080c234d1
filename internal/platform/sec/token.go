// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecureToken returns size bytes from the OS CSPRNG, base64url encoded
// without padding. 32 bytes give 256 bits of entropy.
func GenerateSecureToken(size int) (string, error) {
	buffer := make([]byte, size)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}
