package module

import (
	"encoding/hex"

	"github.com/tidwall/gjson"
	"golang.org/x/crypto/blake2b"
)

// Fingerprint hashes a JSON document with insignificant whitespace removed.
func Fingerprint(data []byte) string {
	compact := data
	if gjson.ValidBytes(data) {
		compact = []byte(gjson.GetBytes(data, "@ugly").Raw)
	}
	sum := blake2b.Sum256(compact)
	return hex.EncodeToString(sum[:])
}
