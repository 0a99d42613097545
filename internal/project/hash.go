package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш содержимого снапшота
type Digest [32]byte

// HashBytes returns the digest of data.
func HashBytes(data []byte) Digest {
	return Digest(sha256.Sum256(data))
}

// Combine hashes a sequence of digests in order: H(d1 || d2 ...).
func Combine(parts ...Digest) Digest {
	h := sha256.New()
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func (d Digest) IsZero() bool { return d == Digest{} }

func (d Digest) String() string { return hex.EncodeToString(d[:]) }
