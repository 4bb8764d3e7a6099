package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Key builds a content-addressed cache key from the generator version
// and the canonical (JSON) forms of the run inputs. Any input or
// version change produces a different key.
func Key(version string, inputs ...any) string {
	data, _ := json.Marshal(inputs)
	return fmt.Sprintf("expr:%s:%s", version, Hash(data))
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
