// Package ident generates the opaque identifiers and invite codes used
// across the service. Both kinds of value double as external-facing tokens,
// so the random component is always drawn from crypto/rand.
package ident

import (
	"crypto/rand"
	"fmt"

	"github.com/oklog/ulid/v2"
)

// inviteCodeAlphabet deliberately omits 0/O/1/I/l to keep codes readable
// when typed from another screen. 57 symbols at 24 positions gives ~140
// bits of entropy.
const (
	inviteCodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	inviteCodeLength   = 24
)

// NewID returns "<prefix>_<ULID>". The ULID combines a 48-bit millisecond
// timestamp with 80 bits of randomness, so concurrent callers never need to
// coordinate and the suffix is not guessable from the timestamp alone.
func NewID(prefix string) string {
	return fmt.Sprintf("%s_%s", prefix, ulid.Make().String())
}

func NewGroupID() string {
	return NewID("group")
}

func NewInviteID() string {
	return NewID("invite")
}

// NewInviteCode returns the public join credential for a group. Bytes are
// drawn with rejection sampling: 256 is not a multiple of the alphabet size,
// so reducing raw bytes modulo 57 would skew the first 28 symbols. It panics
// only if the OS entropy source is broken, in which case nothing else in
// the process is trustworthy either.
func NewInviteCode() string {
	// Largest multiple of len(inviteCodeAlphabet) that fits in a byte.
	const limit = byte(256 - 256%len(inviteCodeAlphabet))

	code := make([]byte, 0, inviteCodeLength)
	buf := make([]byte, inviteCodeLength)
	for len(code) < inviteCodeLength {
		if _, err := rand.Read(buf); err != nil {
			panic(fmt.Sprintf("ident: reading random bytes: %v", err))
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			code = append(code, inviteCodeAlphabet[int(b)%len(inviteCodeAlphabet)])
			if len(code) == inviteCodeLength {
				break
			}
		}
	}
	return string(code)
}
