package registry

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefixes for content-addressed identity. The version suffix
// enables future algorithm migration.
const (
	DomainRegistry = "neungen/registry/v1"
	DomainArtifact = "neungen/artifact/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Hash computes the content-addressed identity of a loaded registry.
// Two registry files that load to the same sequences of models, couplings,
// precisions, integrators, and generation settings hash identically,
// regardless of YAML formatting or key spelling quirks the loader
// normalizes away.
//
// The JSON encoding of Registry is canonical by construction: every
// collection is an ordered slice, struct fields marshal in declaration
// order, and strings are NFC-normalized at load time.
func (r *Registry) Hash() (string, error) {
	canonical, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("registry hash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainRegistry, canonical), nil
}

// MustHash is like Hash but panics on error. Use only in tests or when the
// registry is known to be valid.
func (r *Registry) MustHash() string {
	sum, err := r.Hash()
	if err != nil {
		panic(err)
	}
	return sum
}

// ArtifactHash computes the content-addressed identity of generated output
// bytes. Equal registries produce equal artifacts, so run history rows with
// matching registry hashes must also carry matching artifact hashes.
func ArtifactHash(data []byte) string {
	return hashWithDomain(DomainArtifact, data)
}
