// Package chacha20 implements the ChaCha20 and XChaCha20 stream
// ciphers from RFC 8439 and draft-irtf-cfrg-xchacha, as a generic
// 32-bit-word block function with no SIMD-lane batching.
package chacha20

import (
	"encoding/binary"
	"math/bits"
)

const (
	KeySize    = 32
	NonceSize  = 12
	NonceSizeX = 24
	BlockSize  = 64
)

const (
	c0 uint32 = 0x61707865
	c1 uint32 = 0x3320646e
	c2 uint32 = 0x79622d32
	c3 uint32 = 0x6b206574
)

// Cipher is a stateful ChaCha20 (or XChaCha20, via NewX) keystream
// generator under a single key and nonce.
type Cipher struct {
	key     [8]uint32
	counter uint32
	nonce   [3]uint32

	buf [BlockSize]byte
	off int
}

// New creates a ChaCha20 cipher for a 32-byte key and 12-byte nonce,
// with the given initial block counter.
func New(key [KeySize]byte, nonce [NonceSize]byte, counter uint32) *Cipher {
	c := &Cipher{counter: counter}
	loadWords(c.key[:], key[:])
	loadWords(c.nonce[:], nonce[:])
	c.off = BlockSize
	return c
}

// NewX creates an XChaCha20 cipher for a 32-byte key and 24-byte
// extended nonce, deriving a sub-key via HChaCha20 per
// draft-irtf-cfrg-xchacha §2.3.
func NewX(key [KeySize]byte, nonce [NonceSizeX]byte, counter uint32) *Cipher {
	subKey := HChaCha20(key, *(*[16]byte)(nonce[0:16]))
	var innerNonce [NonceSize]byte
	copy(innerNonce[4:12], nonce[16:24])
	return New(subKey, innerNonce, counter)
}

func loadWords(dst []uint32, src []byte) {
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint32(src[i*4 : i*4+4])
	}
}

func quarterRound(a, b, c, d *uint32) {
	*a += *b
	*d ^= *a
	*d = bits.RotateLeft32(*d, 16)
	*c += *d
	*b ^= *c
	*b = bits.RotateLeft32(*b, 12)
	*a += *b
	*d ^= *a
	*d = bits.RotateLeft32(*d, 8)
	*c += *d
	*b ^= *c
	*b = bits.RotateLeft32(*b, 7)
}

// block runs the 20-round (10 double-round) ChaCha20 core on the
// initial state derived from key, counter, and nonce, and serializes
// the result little-endian into out.
func block(out *[BlockSize]byte, key *[8]uint32, counter uint32, nonce *[3]uint32) {
	s := [16]uint32{
		c0, c1, c2, c3,
		key[0], key[1], key[2], key[3],
		key[4], key[5], key[6], key[7],
		counter, nonce[0], nonce[1], nonce[2],
	}
	x := s

	for i := 0; i < 10; i++ {
		quarterRound(&x[0], &x[4], &x[8], &x[12])
		quarterRound(&x[1], &x[5], &x[9], &x[13])
		quarterRound(&x[2], &x[6], &x[10], &x[14])
		quarterRound(&x[3], &x[7], &x[11], &x[15])

		quarterRound(&x[0], &x[5], &x[10], &x[15])
		quarterRound(&x[1], &x[6], &x[11], &x[12])
		quarterRound(&x[2], &x[7], &x[8], &x[13])
		quarterRound(&x[3], &x[4], &x[9], &x[14])
	}

	for i := range x {
		x[i] += s[i]
	}
	for i := 0; i < 16; i++ {
		binary.LittleEndian.PutUint32(out[i*4:i*4+4], x[i])
	}
}

// KeyStream writes len(out) bytes of raw ChaCha20 keystream to out,
// continuing from the cipher's current block counter and buffered
// offset.
func (c *Cipher) KeyStream(out []byte) {
	for i := range out {
		out[i] = 0
	}
	c.XORKeyStream(out, out)
}

// XORKeyStream XORs src with the keystream, writing to dst. dst and
// src may overlap exactly.
func (c *Cipher) XORKeyStream(dst, src []byte) {
	for len(src) > 0 {
		if c.off == BlockSize {
			block(&c.buf, &c.key, c.counter, &c.nonce)
			c.counter++
			c.off = 0
		}
		n := copy(dst, src[:min(len(src), BlockSize-c.off)])
		for i := 0; i < n; i++ {
			dst[i] = src[i] ^ c.buf[c.off+i]
		}
		dst = dst[n:]
		src = src[n:]
		c.off += n
	}
}

// SetCounter rewinds or advances the block counter, resetting the
// buffered keystream offset so the next block is regenerated.
func (c *Cipher) SetCounter(counter uint32) {
	c.counter = counter
	c.off = BlockSize
}

// HChaCha20 derives a 32-byte sub-key from a key and 16-byte nonce by
// running the ChaCha20 core for 20 rounds and returning the first and
// last quarters of the resulting state directly, without the
// feed-forward addition step.
func HChaCha20(key [KeySize]byte, nonce [16]byte) [32]byte {
	var k [8]uint32
	loadWords(k[:], key[:])
	var n [4]uint32
	loadWords(n[:], nonce[:])

	x := [16]uint32{
		c0, c1, c2, c3,
		k[0], k[1], k[2], k[3],
		k[4], k[5], k[6], k[7],
		n[0], n[1], n[2], n[3],
	}

	for i := 0; i < 10; i++ {
		quarterRound(&x[0], &x[4], &x[8], &x[12])
		quarterRound(&x[1], &x[5], &x[9], &x[13])
		quarterRound(&x[2], &x[6], &x[10], &x[14])
		quarterRound(&x[3], &x[7], &x[11], &x[15])

		quarterRound(&x[0], &x[5], &x[10], &x[15])
		quarterRound(&x[1], &x[6], &x[11], &x[12])
		quarterRound(&x[2], &x[7], &x[8], &x[13])
		quarterRound(&x[3], &x[4], &x[9], &x[14])
	}

	var out [32]byte
	binary.LittleEndian.PutUint32(out[0:4], x[0])
	binary.LittleEndian.PutUint32(out[4:8], x[1])
	binary.LittleEndian.PutUint32(out[8:12], x[2])
	binary.LittleEndian.PutUint32(out[12:16], x[3])
	binary.LittleEndian.PutUint32(out[16:20], x[12])
	binary.LittleEndian.PutUint32(out[20:24], x[13])
	binary.LittleEndian.PutUint32(out[24:28], x[14])
	binary.LittleEndian.PutUint32(out[28:32], x[15])
	return out
}

