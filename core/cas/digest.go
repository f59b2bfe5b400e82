// Package cas computes the content digests recorded for converted sources.
// SHA-256 is the primary identity; BLAKE3 is carried alongside it.
package cas

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"github.com/zeebo/blake3"
)

// sha256Pattern matches a valid lowercase SHA-256 hex string (64 characters).
var sha256Pattern = regexp.MustCompile(`^[a-f0-9]{64}$`)

// Digest holds both hashes of one blob.
type Digest struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// Sum computes both hashes of data.
func Sum(data []byte) Digest {
	return Digest{
		SHA256: Hash(data),
		BLAKE3: Blake3(data),
	}
}

// Hash computes the SHA-256 hash of data.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Blake3 computes the BLAKE3-256 hash of data.
func Blake3(data []byte) string {
	b3 := blake3.Sum256(data)
	return hex.EncodeToString(b3[:])
}

// IsValidHash reports whether hash is a lowercase hex SHA-256 string.
func IsValidHash(hash string) bool {
	return sha256Pattern.MatchString(hash)
}

// IsZero reports whether the digest was never computed.
func (d Digest) IsZero() bool {
	return d.SHA256 == "" && d.BLAKE3 == ""
}
