// Package hmac implements HMAC (RFC 2104, FIPS 198-1) over any
// stdlib-shaped hash.Hash constructor, so it composes directly with
// this module's sha256 and sha512 packages.
package hmac

import (
	"crypto/subtle"
	"hash"
)

const (
	ipadByte = 0x36
	opadByte = 0x5c
)

// HMAC is a keyed hash.Hash. New resets it to the state just after
// the key has been absorbed into the inner hash, so repeated Sum
// calls with no intervening Write are safe, matching hash.Hash.
type HMAC struct {
	newHash    func() hash.Hash
	outer      hash.Hash
	inner      hash.Hash
	ipad, opad []byte
}

// New returns an HMAC over the given hash constructor and key.
func New(newHash func() hash.Hash, key []byte) *HMAC {
	h := &HMAC{newHash: newHash, inner: newHash(), outer: newHash()}
	blockSize := h.inner.BlockSize()

	if len(key) > blockSize {
		h.outer.Write(key)
		key = h.outer.Sum(nil)
		h.outer.Reset()
	}

	h.ipad = make([]byte, blockSize)
	h.opad = make([]byte, blockSize)
	copy(h.ipad, key)
	copy(h.opad, key)
	for i := range h.ipad {
		h.ipad[i] ^= ipadByte
		h.opad[i] ^= opadByte
	}
	h.inner.Write(h.ipad)
	return h
}

func (h *HMAC) Write(p []byte) (int, error) { return h.inner.Write(p) }

// Sum appends the HMAC tag to in.
func (h *HMAC) Sum(in []byte) []byte {
	origLen := len(in)
	in = h.inner.Sum(in)
	h.outer.Reset()
	h.outer.Write(h.opad)
	h.outer.Write(in[origLen:])
	return h.outer.Sum(in[:origLen])
}

func (h *HMAC) Size() int      { return h.outer.Size() }
func (h *HMAC) BlockSize() int { return h.inner.BlockSize() }

// Reset returns the HMAC to the state right after key absorption, so
// it can be reused for a new message under the same key.
func (h *HMAC) Reset() {
	h.inner.Reset()
	h.inner.Write(h.ipad)
}

// Equal does a constant-time tag comparison, mirroring
// crypto/hmac.Equal's API shape.
func Equal(mac1, mac2 []byte) bool {
	return subtle.ConstantTimeCompare(mac1, mac2) == 1
}

// Sum is the one-shot convenience wrapper.
func Sum(newHash func() hash.Hash, key, message []byte) []byte {
	h := New(newHash, key)
	h.Write(message)
	return h.Sum(nil)
}
