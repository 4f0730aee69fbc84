package hashedbuffer

import (
	"encoding/hex"
	"io"

	siphash "github.com/AppImageCrafters/libsiphash-go"
	"github.com/glycerine/rbuf"
)

// HashedRingBuffer keeps the most recent bytes of a stream in a fixed-size
// window and produces the keyed SipHash-2-4 of the current window contents
// on demand.
type HashedRingBuffer struct {
	k0, k1 uint64
	rBuf   *rbuf.FixedSizeRingBuf
}

func NewHashedBuffer(size int, k0, k1 uint64) *HashedRingBuffer {
	return &HashedRingBuffer{
		k0:   k0,
		k1:   k1,
		rBuf: rbuf.NewFixedSizeRingBuf(size),
	}
}

// Write appends p to the window, evicting the oldest bytes once it is full.
func (h *HashedRingBuffer) Write(p []byte) (n int, err error) {
	n = len(p)

	if n >= h.rBuf.N {
		h.rBuf.Reset()
		_, err = h.rBuf.Write(p[n-h.rBuf.N:])
		return n, err
	}

	evictedSize := (h.rBuf.Readable + n) - h.rBuf.N
	if evictedSize > 0 {
		h.rBuf.Advance(evictedSize)
	}

	_, err = h.rBuf.Write(p)
	return n, err
}

func (h HashedRingBuffer) Bytes() []byte {
	return h.rBuf.Bytes()
}

// WindowSum64 returns the keyed SipHash-2-4 of the bytes currently in the
// window. The ring's two raw slices are fed to a fresh engine in order, so
// the window is never copied.
func (h HashedRingBuffer) WindowSum64() uint64 {
	d := siphash.New(h.k0, h.k1)
	slice1, slice2 := h.rBuf.BytesTwo(false)
	_, _ = d.Write(slice1)
	_, _ = d.Write(slice2)
	return d.Sum64()
}

// WindowSum returns WindowSum64 as 8 little-endian bytes.
func (h HashedRingBuffer) WindowSum() []byte {
	d := siphash.New(h.k0, h.k1)
	slice1, slice2 := h.rBuf.BytesTwo(false)
	_, _ = d.Write(slice1)
	_, _ = d.Write(slice2)
	return d.Sum(nil)
}

func (h HashedRingBuffer) WindowSumHex() string {
	return hex.EncodeToString(h.WindowSum())
}

// ReadNFrom fills the window with up to n bytes from input, evicting the
// oldest bytes as needed.
func (h *HashedRingBuffer) ReadNFrom(input io.Reader, n int64) (int64, error) {
	copied, err := io.CopyN(h, input, n)
	if err == io.EOF {
		err = nil
	}
	return copied, err
}

// ReadFull replaces the window with the next window-size bytes of input,
// missing bytes are replaced by zeroes.
func (h *HashedRingBuffer) ReadFull(input io.Reader) (int64, error) {
	h.rBuf.Reset()

	n, err := h.rBuf.ReadFrom(io.LimitReader(input, int64(h.rBuf.N)))
	if err != nil {
		return n, err
	}

	if missing := int64(h.rBuf.N) - n; missing > 0 {
		_, err = h.rBuf.Write(make([]byte, missing))
	}

	return n, err
}
