package siphash

// Sink consumes a byte stream in arbitrary chunks. Chunk boundaries carry no
// meaning; only the concatenated bytes determine the outcome.
type Sink interface {
	Absorb(p []byte)
}

// Absorb implements Sink.
func (d *Digest) Absorb(p []byte) {
	_, _ = d.Write(p)
}

// Hashable is a value that can feed its canonical byte representation into a
// Sink, absorbing one or more chunks, recursively for nested fields. The
// order of Absorb calls is part of the contract: two values that serialize
// identically hash identically.
type Hashable interface {
	HashInto(s Sink)
}

// Hasher hashes Hashable values under a fixed key pair. It holds no other
// state; every Digest call spawns a fresh engine, so a single Hasher may be
// used from any number of goroutines.
type Hasher struct {
	k0, k1 uint64
}

// NewHasher returns a Hasher with both keys zero. Digests are deterministic,
// but the keys are public, so this offers no protection against
// hash-flooding; use NewHasherWithKeys with secret keys for that.
func NewHasher() Hasher {
	return NewHasherWithKeys(0, 0)
}

// NewHasherWithKeys returns a Hasher keyed with k0 and k1.
func NewHasherWithKeys(k0, k1 uint64) Hasher {
	return Hasher{k0: k0, k1: k1}
}

// Digest hashes v under the Hasher's keys.
func (h Hasher) Digest(v Hashable) uint64 {
	d := New(h.k0, h.k1)
	v.HashInto(d)
	return d.Sum64()
}

// Hash hashes v with both keys zero. See NewHasher for the caveat.
func Hash(v Hashable) uint64 {
	return NewHasher().Digest(v)
}

// HashWithKeys hashes v under the given keys.
func HashWithKeys(k0, k1 uint64, v Hashable) uint64 {
	return NewHasherWithKeys(k0, k1).Digest(v)
}

// Sum64 returns the SipHash-2-4 of p under the given keys.
func Sum64(k0, k1 uint64, p []byte) uint64 {
	d := New(k0, k1)
	_, _ = d.Write(p)
	return d.Sum64()
}

// Bytes adapts a raw byte slice to Hashable.
type Bytes []byte

func (b Bytes) HashInto(s Sink) {
	s.Absorb(b)
}

// String adapts a string to Hashable.
type String string

func (str String) HashInto(s Sink) {
	s.Absorb([]byte(str))
}
