package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint derives the cache key from the three free-text query fields.
// Each field is lower-cased and trimmed of surrounding whitespace, then the
// three are joined with "_". Empty optional fields normalize to empty strings,
// so queries differing only in case or padding share one entry.
func Fingerprint(interests, skills, goals string) string {
	return normalize(interests) + "_" + normalize(skills) + "_" + normalize(goals)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// hashFingerprint produces a fixed-length hex digest of a fingerprint,
// used where raw user text is unsuitable as a key (Redis).
func hashFingerprint(fp string) string {
	sum := sha256.Sum256([]byte(fp))
	return hex.EncodeToString(sum[:])
}
