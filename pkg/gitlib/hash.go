// Package gitlib wraps the libgit2 operations gitpulse needs: repository
// access, revision walking, tree diffs with line stats, and file blame.
package gitlib

import (
	"encoding/hex"
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// HashSize is the byte length of a SHA-1 object id.
const HashSize = 20

// ErrBadHash is returned when a string does not parse as a full object id.
var ErrBadHash = errors.New("malformed object id")

// Hash is a git object id.
type Hash [HashSize]byte

// HashFromOid converts a libgit2 oid.
func HashFromOid(oid *git2go.Oid) Hash {
	var h Hash
	copy(h[:], oid[:])

	return h
}

// HashFromString parses a full 40-character hex object id.
func HashFromString(s string) (Hash, error) {
	var h Hash

	if len(s) != hex.EncodedLen(HashSize) {
		return Hash{}, fmt.Errorf("%w: %q", ErrBadHash, s)
	}

	_, err := hex.Decode(h[:], []byte(s))
	if err != nil {
		return Hash{}, fmt.Errorf("%w: %q", ErrBadHash, s)
	}

	return h, nil
}

// ToOid converts the hash back to a libgit2 oid.
func (h Hash) ToOid() *git2go.Oid {
	oid := new(git2go.Oid)
	copy(oid[:], h[:])

	return oid
}

// String returns the 40-character hex form.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}
