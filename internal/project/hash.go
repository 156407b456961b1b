package project

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest - фиксированный 256 битный хеш (совместим с source.File.Hash)
type Digest [32]byte

// Combine строит хеш результата: H( content || part1 || part2 ... ).
// Порядок частей должен быть детерминированным.
func Combine(content Digest, parts ...Digest) Digest {
	h := sha256.New()
	_, _ = h.Write(content[:])
	for _, d := range parts {
		_, _ = h.Write(d[:])
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// StringDigest hashes a string (settings, schema tags).
func StringDigest(s string) Digest {
	return sha256.Sum256([]byte(s))
}

// Hex returns the lowercase hex form used for cache file names.
func (d Digest) Hex() string {
	return hex.EncodeToString(d[:])
}
