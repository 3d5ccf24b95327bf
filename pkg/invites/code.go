// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package invites

import (
	"crypto/rand"
	"fmt"
)

// Alphabet excludes 0/O and 1/I to keep codes unambiguous when read
// aloud or typed from a child's screen.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const codeLength = 6

// newInviteCode returns a short human-typeable code. Uniqueness is
// enforced by the database, not here; the caller retries on collision.
func newInviteCode() (string, error) {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}

	for i, b := range buf {
		buf[i] = codeAlphabet[int(b)%len(codeAlphabet)]
	}

	return string(buf), nil
}
