// Package security provides the password hashing implementations behind
// ports.PasswordHasher.
package security

import (
	"fmt"
	"strings"

	"github.com/99minutos/uuid-resolver/internal/core/ports"
)

const (
	AlgorithmBcrypt   = "bcrypt"
	AlgorithmArgon2id = "argon2id"
)

// Hasher hashes with one algorithm and verifies digests of either supported
// algorithm, picked by digest prefix.
type Hasher struct {
	primary  ports.PasswordHasher
	bcrypt   *BcryptHasher
	argon2id *Argon2idHasher
}

// NewHasher builds a Hasher whose Hash uses algorithm.
func NewHasher(algorithm string, bcryptCost int, argonParams Argon2idParams) (*Hasher, error) {
	h := &Hasher{
		bcrypt:   NewBcryptHasher(bcryptCost),
		argon2id: NewArgon2idHasher(argonParams),
	}
	switch strings.ToLower(algorithm) {
	case AlgorithmBcrypt, "":
		h.primary = h.bcrypt
	case AlgorithmArgon2id:
		h.primary = h.argon2id
	default:
		return nil, fmt.Errorf("unsupported password hasher %q", algorithm)
	}
	return h, nil
}

func (h *Hasher) Hash(password string) (string, error) {
	return h.primary.Hash(password)
}

func (h *Hasher) Verify(password, digest string) bool {
	switch Algorithm(digest) {
	case AlgorithmArgon2id:
		return h.argon2id.Verify(password, digest)
	case AlgorithmBcrypt:
		return h.bcrypt.Verify(password, digest)
	default:
		return false
	}
}

// Algorithm names the scheme that produced digest, or "" if it is neither.
func Algorithm(digest string) string {
	switch {
	case strings.HasPrefix(digest, argon2idPrefix):
		return AlgorithmArgon2id
	case isBcryptDigest(digest):
		return AlgorithmBcrypt
	default:
		return ""
	}
}

// PredominantAlgorithm returns the algorithm used by most digests. Ties and
// an empty input return fallback.
func PredominantAlgorithm(fallback string, digests ...string) string {
	counts := make(map[string]int, 2)
	for _, d := range digests {
		if alg := Algorithm(d); alg != "" {
			counts[alg]++
		}
	}

	best, bestN := strings.ToLower(fallback), counts[strings.ToLower(fallback)]
	for alg, n := range counts {
		if n > bestN {
			best, bestN = alg, n
		}
	}
	return best
}

var _ ports.PasswordHasher = (*Hasher)(nil)
