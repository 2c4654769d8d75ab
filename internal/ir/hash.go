package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainSnapshot separates snapshot fingerprints from other hashes.
// The version suffix allows a future algorithm migration.
const DomainSnapshot = "kore/snapshot/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Fingerprint computes the content-addressed identity of a snapshot.
// Two definitions preprocessed to identical numbering share a fingerprint.
func Fingerprint(s *Snapshot) (string, error) {
	canonical, err := MarshalCanonical(s)
	if err != nil {
		return "", fmt.Errorf("fingerprint: %w", err)
	}
	return hashWithDomain(DomainSnapshot, canonical), nil
}

// MustFingerprint is like Fingerprint but panics on error.
// Use only in tests or when the snapshot is known to be valid.
func MustFingerprint(s *Snapshot) string {
	fp, err := Fingerprint(s)
	if err != nil {
		panic(err)
	}
	return fp
}
