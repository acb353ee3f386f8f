package cas

import (
	"encoding/hex"
	"regexp"

	"github.com/zeebo/blake3"
)

// KeyLength is the number of hex characters in a key (128 bits).
const KeyLength = 32

// keyPattern matches a valid lowercase key.
var keyPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

// Key returns the content key of data: a truncated BLAKE3 digest.
func Key(data []byte) string {
	return Blake3Hash(data)[:KeyLength]
}

// Blake3Hash computes the full BLAKE3 hash of the given data.
func Blake3Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

func isValidKey(key string) bool {
	return keyPattern.MatchString(key)
}
