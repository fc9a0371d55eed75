// Package signing implements ECDSA over P-256 and P-384 with RFC 6979
// deterministic nonce generation, X25519 and ECDH key agreement
// wrappers, and ASN.1 DER signature encoding.
package signing

import (
	"hash"

	"coreprim.dev/hmac"
)

// bits2int takes the leftmost qlenBits bits of b, interpreted as a
// big-endian integer, per RFC 6979 §2.3.2.
func bits2int(b []byte, qlenBits int) []byte {
	blen := len(b) * 8
	if blen <= qlenBits {
		return append([]byte(nil), b...)
	}
	shift := blen - qlenBits
	out := append([]byte(nil), b...)
	shiftRightBits(out, shift)
	return trimToBytes(out, (qlenBits+7)/8)
}

func shiftRightBits(b []byte, shift int) {
	byteShift := shift / 8
	bitShift := uint(shift % 8)
	if byteShift > 0 {
		copy(b, b[byteShift:])
		for i := len(b) - byteShift; i < len(b); i++ {
			b[i] = 0
		}
	}
	if bitShift == 0 {
		return
	}
	var carry byte
	for i := 0; i < len(b); i++ {
		v := b[i]
		b[i] = v>>bitShift | carry
		carry = v << (8 - bitShift)
	}
}

func trimToBytes(b []byte, n int) []byte {
	if len(b) <= n {
		return b
	}
	return b[len(b)-n:]
}

func padLeft(b []byte, n int) []byte {
	if len(b) >= n {
		return b[len(b)-n:]
	}
	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

// rfc6979Gen is the HMAC-DRBG candidate generator from RFC 6979 §3.2,
// steps a-g precomputed once, with Next implementing the per-attempt
// step h candidate generation and Reject the step h.3 state update, so
// callers can keep pulling candidates when one is rejected for
// curve-specific reasons such as r == 0 or s == 0.
type rfc6979Gen struct {
	newHash func() hash.Hash
	v, k    []byte
	qlenB   int
}

func newRFC6979(newHash func() hash.Hash, qlenBits int, priv, h1 []byte) *rfc6979Gen {
	qlenBytes := (qlenBits + 7) / 8
	holen := newHash().Size()

	v := make([]byte, holen)
	for i := range v {
		v[i] = 0x01
	}
	k := make([]byte, holen)

	bh := padLeft(bits2int(h1, qlenBits), qlenBytes)

	k = hmacSum(newHash, k, v, []byte{0x00}, priv, bh)
	v = hmacSum(newHash, k, v)
	k = hmacSum(newHash, k, v, []byte{0x01}, priv, bh)
	v = hmacSum(newHash, k, v)

	return &rfc6979Gen{newHash: newHash, v: v, k: k, qlenB: qlenBytes}
}

// Next returns the next qlenBytes-byte candidate k value.
func (g *rfc6979Gen) Next() []byte {
	var t []byte
	for len(t) < g.qlenB {
		g.v = hmacSum(g.newHash, g.k, g.v)
		t = append(t, g.v...)
	}
	return padLeft(bits2int(t, g.qlenB*8), g.qlenB)
}

// Reject advances the DRBG state after a candidate has been rejected
// (out of range, or yielding r == 0 / s == 0), per RFC 6979 §3.2 step h.3.
func (g *rfc6979Gen) Reject() {
	g.k = hmacSum(g.newHash, g.k, g.v, []byte{0x00})
	g.v = hmacSum(g.newHash, g.k, g.v)
}

func hmacSum(newHash func() hash.Hash, key []byte, parts ...[]byte) []byte {
	mac := hmac.New(newHash, key)
	for _, p := range parts {
		mac.Write(p)
	}
	return mac.Sum(nil)
}
