// Package siphash implements SipHash-2-4, a fast keyed pseudorandom function
// producing 64-bit digests. It is meant for keying hash tables against
// hash-flooding attacks; although the algorithm is considered strong, this
// implementation has not been reviewed for cryptographic use.
package siphash

import "encoding/binary"

// Initialization constants, the ASCII string
// "somepseudorandomlygeneratedbytes" read as four little-endian words.
const (
	iv0 = 0x736f6d6570736575
	iv1 = 0x646f72616e646f6d
	iv2 = 0x6c7967656e657261
	iv3 = 0x7465646279746573
)

// Digest computes a SipHash-2-4 hash over a stream of bytes. It is a plain
// value: copying one yields an independent engine with identical state. A
// Digest has no internal locking and must not be written to concurrently.
type Digest struct {
	k0, k1 uint64

	v0, v1, v2, v3 uint64

	length uint64 // bytes absorbed so far, wraps on overflow
	tail   uint64 // up to 7 unprocessed bytes, packed little-endian
	ntail  int    // valid bytes in tail, 0..7
}

// New returns a Digest keyed with k0 and k1.
func New(k0, k1 uint64) *Digest {
	d := &Digest{k0: k0, k1: k1}
	d.Reset()
	return d
}

// Reset restores the state right after construction. The keys are kept, so
// one instance can be recycled for a new, independent digest.
func (d *Digest) Reset() {
	d.v0 = d.k0 ^ iv0
	d.v1 = d.k1 ^ iv1
	d.v2 = d.k0 ^ iv2
	d.v3 = d.k1 ^ iv3
	d.length = 0
	d.tail = 0
	d.ntail = 0
}

func round(v0, v1, v2, v3 uint64) (uint64, uint64, uint64, uint64) {
	v0 += v1
	v1 = v1<<13 | v1>>51
	v1 ^= v0
	v0 = v0<<32 | v0>>32

	v2 += v3
	v3 = v3<<16 | v3>>48
	v3 ^= v2

	v0 += v3
	v3 = v3<<21 | v3>>43
	v3 ^= v0

	v2 += v1
	v1 = v1<<17 | v1>>47
	v1 ^= v2
	v2 = v2<<32 | v2>>32

	return v0, v1, v2, v3
}

// partialWord packs up to 7 bytes into a word, little-endian from bit 0.
func partialWord(p []byte) uint64 {
	var w uint64
	for i, c := range p {
		w |= uint64(c) << (8 * uint(i))
	}
	return w
}

// mix absorbs one 8-byte word: XOR in, two rounds, XOR out.
func (d *Digest) mix(m uint64) {
	d.v3 ^= m
	d.v0, d.v1, d.v2, d.v3 = round(d.v0, d.v1, d.v2, d.v3)
	d.v0, d.v1, d.v2, d.v3 = round(d.v0, d.v1, d.v2, d.v3)
	d.v0 ^= m
}

// Write absorbs p into the hash state. The digest depends only on the
// concatenation of all bytes written, never on how they were split across
// calls. It always returns len(p) and a nil error.
func (d *Digest) Write(p []byte) (int, error) {
	n := len(p)
	d.length += uint64(n)

	if d.ntail > 0 {
		needed := 8 - d.ntail
		if n < needed {
			d.tail |= partialWord(p) << (8 * uint(d.ntail))
			d.ntail += n
			return n, nil
		}

		d.mix(d.tail | partialWord(p[:needed])<<(8*uint(d.ntail)))
		d.ntail = 0
		p = p[needed:]
	}

	for len(p) >= 8 {
		d.mix(binary.LittleEndian.Uint64(p))
		p = p[8:]
	}

	d.tail = partialWord(p)
	d.ntail = len(p)

	return n, nil
}

// Sum64 returns the digest of the bytes written so far. It operates on
// copies of the state, so writing may continue afterwards, and repeated
// calls without intervening writes return the same value.
func (d *Digest) Sum64() uint64 {
	v0, v1, v2, v3 := d.v0, d.v1, d.v2, d.v3

	b := d.length<<56 | d.tail

	v3 ^= b
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0 ^= b

	v2 ^= 0xff
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)
	v0, v1, v2, v3 = round(v0, v1, v2, v3)

	return v0 ^ v1 ^ v2 ^ v3
}

// Sum appends the digest to b in little-endian order, the byte order of the
// published SipHash reference vectors.
func (d *Digest) Sum(b []byte) []byte {
	var out [8]byte
	binary.LittleEndian.PutUint64(out[:], d.Sum64())
	return append(b, out[:]...)
}

func (d *Digest) Size() int { return 8 }

func (d *Digest) BlockSize() int { return 8 }
