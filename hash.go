package eccpem

import (
	"crypto/sha256"

	"golang.org/x/crypto/ripemd160"
)

// Hash256 does two rounds of SHA256 hashing.
func Hash256(data []byte) []byte {
	h := sha256.Sum256(data)
	h1 := sha256.Sum256(h[:])
	return h1[:]
}

// Hash160 calculates ripemd160(sha256(b)), the digest used for Bitcoin
// addresses.
func Hash160(buf []byte) []byte {
	h := sha256.Sum256(buf)
	hasher := ripemd160.New()
	hasher.Write(h[:])
	return hasher.Sum(nil)
}
