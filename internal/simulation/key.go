package simulation

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"golang.org/x/crypto/blake2b"
)

// KeyMode selects what a cache key covers.
type KeyMode string

const (
	// KeyContent hashes the level range, iteration count, module and config
	// fingerprints. A stored entry is reused while its hash matches.
	KeyContent KeyMode = "content"
	// KeyLegacy hashes the level range against an empty module mod list
	// and treats every stored entry as dirty, so each run re-simulates.
	KeyLegacy KeyMode = "legacy"
)

// ParseKeyMode parses "content" or "legacy". Empty means content.
func ParseKeyMode(s string) (KeyMode, error) {
	switch KeyMode(s) {
	case "", KeyContent:
		return KeyContent, nil
	case KeyLegacy:
		return KeyLegacy, nil
	default:
		return "", fmt.Errorf("unknown cache key mode %q", s)
	}
}

// CacheKey computes the content hash stored with cfg's entry.
func CacheKey(mode KeyMode, cfg SearchConfig, moduleFingerprint string) string {
	h, _ := blake2b.New256(nil)
	write := func(s string) {
		h.Write([]byte(s))
		h.Write([]byte{0})
	}
	write(strconv.Itoa(cfg.StartLevel))
	write(strconv.Itoa(cfg.EndLevel))
	write(strconv.Itoa(cfg.NumIterations))
	if mode == KeyLegacy {
		write("[]")
	} else {
		write(moduleFingerprint)
		write(cfg.Fingerprint())
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Dirty reports whether e must be recomputed for key.
func Dirty(mode KeyMode, e *Entry, key string) bool {
	if mode == KeyLegacy {
		return true
	}
	return e == nil || e.Hash != key
}
