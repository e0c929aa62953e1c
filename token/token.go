// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package token

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/rrex971/pokehunt/roster"
)

var ErrMissingSecret = errors.New("QR secret key required")

// digestLen is the length of a hex-encoded SHA-256 sum.
const digestLen = sha256.Size * 2

// Digest returns hex(sha256(identifier || secret)). This is the value
// printed into each QR code.
func Digest(identifier, secret string) string {
	sum := sha256.Sum256([]byte(identifier + secret))
	return hex.EncodeToString(sum[:])
}

// Verifier maps scanned tokens back to roster entries.
//
// The keyed digest is an anti-cheat check for a physical scavenger hunt, not
// an access-control boundary. Lookup goes through a map built at startup and
// makes no attempt to hide its timing.
type Verifier struct {
	byDigest map[string]roster.Entry
}

// NewVerifier precomputes the digest of every roster entry.
func NewVerifier(r *roster.Roster, secret string) (*Verifier, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if r == nil || r.Len() == 0 {
		return nil, roster.ErrEmptyRoster
	}

	byDigest := make(map[string]roster.Entry, r.Len())
	for _, e := range r.All() {
		d := Digest(e.Key, secret)
		if prev, dup := byDigest[d]; dup {
			return nil, fmt.Errorf("digest collision between %q and %q", prev.Key, e.Key)
		}
		byDigest[d] = e
	}

	return &Verifier{byDigest: byDigest}, nil
}

// Verify returns the roster entry whose digest equals tok.
// Empty or malformed tokens never reach the lookup.
func (v *Verifier) Verify(tok string) (roster.Entry, bool) {
	if !wellFormed(tok) {
		return roster.Entry{}, false
	}

	e, ok := v.byDigest[strings.ToLower(tok)]
	return e, ok
}

// Len reports how many entries the verifier can match.
func (v *Verifier) Len() int { return len(v.byDigest) }

func wellFormed(tok string) bool {
	if len(tok) != digestLen {
		return false
	}
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}
	return true
}
