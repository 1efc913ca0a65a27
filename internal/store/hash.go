package store

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

const hashPrefix = "sha256:"

// HashContent computes the SHA-256 fingerprint of a report and returns it in "sha256:<hex>" format.
func HashContent(data []byte) string {
	h := sha256.Sum256(data)
	return hashPrefix + hex.EncodeToString(h[:])
}

// ParseHash splits a "sha256:<hex>" fingerprint into its algorithm and hex parts.
func ParseHash(ref string) (algorithm string, hexStr string, err error) {
	if !strings.HasPrefix(ref, hashPrefix) {
		return "", "", fmt.Errorf("invalid fingerprint: expected %s prefix, got %q", hashPrefix, ref)
	}
	hexStr = ref[len(hashPrefix):]
	if len(hexStr) != 64 {
		return "", "", fmt.Errorf("invalid fingerprint: expected 64 hex chars, got %d", len(hexStr))
	}
	if _, err := hex.DecodeString(hexStr); err != nil {
		return "", "", fmt.Errorf("invalid fingerprint: bad hex encoding: %w", err)
	}
	return "sha256", hexStr, nil
}

// ShortHash returns the first n characters of the hex portion of a fingerprint.
// Anything that is not a well-formed fingerprint is returned unchanged.
func ShortHash(ref string, n int) string {
	_, hexStr, err := ParseHash(ref)
	if err != nil {
		return ref
	}
	if n > len(hexStr) {
		n = len(hexStr)
	}
	return hexStr[:n]
}
