package blockdigest

import (
	"bytes"
	"errors"
	"io"
	"testing"

	siphash "github.com/AppImageCrafters/libsiphash-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	k0 = uint64(0x0706050403020100)
	k1 = uint64(0x0f0e0d0c0b0a0908)
)

type mapLookup map[int]uint64

func (m mapLookup) BlockDigest(blockID int) (uint64, bool) {
	d, ok := m[blockID]
	return d, ok
}

func TestDigestReader(t *testing.T) {
	data := []byte("0123456789abcdefXY")

	digester := Digester{BlockSize: 8, K0: k0, K1: k1}
	digests, err := digester.DigestReader(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, digests, 3)
	assert.Equal(t, siphash.Sum64(k0, k1, []byte("01234567")), digests[0])
	assert.Equal(t, siphash.Sum64(k0, k1, []byte("89abcdef")), digests[1])
	// short final block is zero-padded
	assert.Equal(t, siphash.Sum64(k0, k1, []byte{'X', 'Y', 0, 0, 0, 0, 0, 0}), digests[2])
}

func TestDigestReaderExactMultiple(t *testing.T) {
	data := []byte("0123456789abcdef")

	digester := Digester{BlockSize: 8, K0: k0, K1: k1}
	digests, err := digester.DigestReader(bytes.NewReader(data))
	require.NoError(t, err)

	require.Len(t, digests, 2)
}

func TestDigestReaderEmpty(t *testing.T) {
	digester := Digester{BlockSize: 8, K0: k0, K1: k1}

	digests, err := digester.DigestReader(bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Empty(t, digests)
}

type failingReader struct{}

func (failingReader) Read(p []byte) (int, error) {
	return 0, errors.New("disk gone")
}

func TestDigestReaderPropagatesError(t *testing.T) {
	digester := Digester{BlockSize: 8, K0: k0, K1: k1}

	_, err := digester.DigestReader(io.MultiReader(
		bytes.NewReader([]byte("01234567")),
		failingReader{},
	))
	assert.Error(t, err)
}

func TestVerifyBlockRange(t *testing.T) {
	data := []byte("0123456789abcdefXY")

	digester := Digester{BlockSize: 8, K0: k0, K1: k1}
	digests, err := digester.DigestReader(bytes.NewReader(data))
	require.NoError(t, err)

	lookup := mapLookup{}
	for i, d := range digests {
		lookup[i] = d
	}

	verifier := Verifier{BlockSize: 8, K0: k0, K1: k1, Lookup: lookup}

	assert.True(t, verifier.VerifyBlockRange(0, data))
	// offset into the digest list
	assert.True(t, verifier.VerifyBlockRange(1, data[8:]))

	corrupted := append([]byte{}, data...)
	corrupted[3] ^= 0x01
	assert.False(t, verifier.VerifyBlockRange(0, corrupted))

	// corruption in the zero-padded tail block is caught too
	corrupted = append([]byte{}, data...)
	corrupted[17] ^= 0x01
	assert.False(t, verifier.VerifyBlockRange(0, corrupted))
}

func TestVerifyBlockRangeUnknownBlocksPass(t *testing.T) {
	verifier := Verifier{BlockSize: 8, K0: k0, K1: k1, Lookup: mapLookup{}}

	assert.True(t, verifier.VerifyBlockRange(0, []byte("anything at all here")))
}

func TestVerifyBlockRangeEmptyData(t *testing.T) {
	verifier := Verifier{BlockSize: 8, K0: k0, K1: k1, Lookup: mapLookup{0: 1}}

	assert.True(t, verifier.VerifyBlockRange(0, nil))
}
