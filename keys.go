package siphash

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"
)

// KeysFromSeed derives a SipHash key pair from an arbitrary-length seed. The
// seed is compressed with SHA3-256 and the first 16 bytes of the sum are
// read as two little-endian words. Callers holding a password or salt rather
// than two words get a full-entropy key pair this way.
func KeysFromSeed(seed []byte) (k0, k1 uint64) {
	sum := sha3.Sum256(seed)
	k0 = binary.LittleEndian.Uint64(sum[0:8])
	k1 = binary.LittleEndian.Uint64(sum[8:16])
	return k0, k1
}
