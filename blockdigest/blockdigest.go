package blockdigest

import (
	"io"

	siphash "github.com/AppImageCrafters/libsiphash-go"
)

// Digester splits a stream into consecutive fixed-size blocks and computes
// the keyed SipHash-2-4 of each. A short final block is zero-padded to
// BlockSize, so a stream always digests as a whole number of blocks.
type Digester struct {
	BlockSize int
	K0, K1    uint64
}

func (d Digester) DigestReader(input io.Reader) ([]uint64, error) {
	var digests []uint64
	block := make([]byte, d.BlockSize)

	for {
		n, err := io.ReadFull(input, block)
		if n > 0 {
			for i := n; i < d.BlockSize; i++ {
				block[i] = 0
			}
			digests = append(digests, siphash.Sum64(d.K0, d.K1, block))
		}

		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return digests, nil
		}
		if err != nil {
			return digests, err
		}
	}
}

// DigestLookup resolves the expected digest for a block. A false second
// return means no digest is known for that block.
type DigestLookup interface {
	BlockDigest(blockID int) (uint64, bool)
}

type Verifier struct {
	BlockSize int
	K0, K1    uint64
	Lookup    DigestLookup
}

// VerifyBlockRange digests data block by block and compares each against the
// expected digest for startBlockID+i. Blocks with no known digest are
// accepted. A short final block is zero-padded to BlockSize, matching
// Digester.
func (v Verifier) VerifyBlockRange(startBlockID int, data []byte) bool {
	for i := 0; i*v.BlockSize < len(data); i++ {
		start := i * v.BlockSize
		end := start + v.BlockSize

		if end > len(data) {
			end = len(data)
		}

		blockData := data[start:end]
		if len(blockData) < v.BlockSize {
			padded := make([]byte, v.BlockSize)
			copy(padded, blockData)
			blockData = padded
		}

		expected, ok := v.Lookup.BlockDigest(startBlockID + i)
		if !ok {
			continue
		}

		if siphash.Sum64(v.K0, v.K1, blockData) != expected {
			return false
		}
	}

	return true
}
