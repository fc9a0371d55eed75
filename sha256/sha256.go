// Package sha256 implements SHA-256 (FIPS 180-4) streaming hashing,
// dispatching between a generic scalar compressor and an
// SIMD-accelerated one from github.com/minio/sha256-simd depending on
// the detected CPU features, gated once through cpufeature.
package sha256

import (
	"encoding/binary"
	"hash"

	simd "github.com/minio/sha256-simd"

	"coreprim.dev/cpufeature"
)

const (
	Size      = 32
	BlockSize = 64
)

var k = [64]uint32{
	0x428a2f98, 0x71374491, 0xb5c0fbcf, 0xe9b5dba5, 0x3956c25b, 0x59f111f1, 0x923f82a4, 0xab1c5ed5,
	0xd807aa98, 0x12835b01, 0x243185be, 0x550c7dc3, 0x72be5d74, 0x80deb1fe, 0x9bdc06a7, 0xc19bf174,
	0xe49b69c1, 0xefbe4786, 0x0fc19dc6, 0x240ca1cc, 0x2de92c6f, 0x4a7484aa, 0x5cb0a9dc, 0x76f988da,
	0x983e5152, 0xa831c66d, 0xb00327c8, 0xbf597fc7, 0xc6e00bf3, 0xd5a79147, 0x06ca6351, 0x14292967,
	0x27b70a85, 0x2e1b2138, 0x4d2c6dfc, 0x53380d13, 0x650a7354, 0x766a0abb, 0x81c2c92e, 0x92722c85,
	0xa2bfe8a1, 0xa81a664b, 0xc24b8b70, 0xc76c51a3, 0xd192e819, 0xd6990624, 0xf40e3585, 0x106aa070,
	0x19a4c116, 0x1e376c08, 0x2748774c, 0x34b0bcb5, 0x391c0cb3, 0x4ed8aa4a, 0x5b9cca4f, 0x682e6ff3,
	0x748f82ee, 0x78a5636f, 0x84c87814, 0x8cc70208, 0x90befffa, 0xa4506ceb, 0xbef9a3f7, 0xc67178f2,
}

var initState = [8]uint32{
	0x6a09e667, 0xbb67ae85, 0x3c6ef372, 0xa54ff53a,
	0x510e527f, 0x9b05688c, 0x1f83d9ab, 0x5be0cd19,
}

// Digest is a streaming SHA-256 hash state.
type Digest struct {
	h        [8]uint32
	buf      [BlockSize]byte
	off      int
	length   uint64
	accel    hash.Hash // non-nil once the accelerated path is chosen
	useAccel bool
}

// New creates a fresh SHA-256 state, picking the accelerated
// implementation when the running CPU's detected feature set
// indicates it will be faster than the generic one.
func New() *Digest {
	d := &Digest{h: initState}
	if cpufeature.Get().HasSHA || cpufeature.Get().HasAVX2 {
		d.accel = simd.New()
		d.useAccel = true
	}
	return d
}

func (d *Digest) Write(p []byte) (int, error) {
	if d.useAccel {
		return d.accel.Write(p)
	}
	total := len(p)
	d.length += uint64(len(p))
	if d.off > 0 {
		n := copy(d.buf[d.off:], p)
		d.off += n
		p = p[n:]
		if d.off < BlockSize {
			return total, nil
		}
		compress(&d.h, d.buf[:])
		d.off = 0
	}
	for len(p) >= BlockSize {
		compress(&d.h, p[:BlockSize])
		p = p[BlockSize:]
	}
	if len(p) > 0 {
		d.off = copy(d.buf[:], p)
	}
	return total, nil
}

// Sum appends the 32-byte digest to b and returns the resulting
// slice, without mutating the running state.
func (d *Digest) Sum(b []byte) []byte {
	if d.useAccel {
		sum := d.accel.Sum(nil)
		return append(b, sum...)
	}
	state := *d
	length := state.length * 8

	var pad [BlockSize + 8]byte
	pad[0] = 0x80
	padLen := 56 - state.off%64
	if padLen <= 0 {
		padLen += 64
	}
	binary.BigEndian.PutUint64(pad[padLen:padLen+8], length)
	state.Write(pad[:padLen+8])

	var out [Size]byte
	for i, v := range state.h {
		binary.BigEndian.PutUint32(out[i*4:i*4+4], v)
	}
	return append(b, out[:]...)
}

func (d *Digest) Reset() {
	*d = *New()
}

func (d *Digest) Size() int      { return Size }
func (d *Digest) BlockSize() int { return BlockSize }

// Sum256 is the one-shot convenience wrapper.
func Sum256(data []byte) [Size]byte {
	d := New()
	d.Write(data)
	var out [Size]byte
	copy(out[:], d.Sum(nil))
	return out
}

func rotr(x uint32, n uint32) uint32 { return (x >> n) | (x << (32 - n)) }

// compress runs the FIPS 180-4 compression function over one or more
// 64-byte blocks.
func compress(h *[8]uint32, p []byte) {
	var w [64]uint32
	for len(p) >= BlockSize {
		for i := 0; i < 16; i++ {
			w[i] = binary.BigEndian.Uint32(p[i*4 : i*4+4])
		}
		for i := 16; i < 64; i++ {
			s0 := rotr(w[i-15], 7) ^ rotr(w[i-15], 18) ^ (w[i-15] >> 3)
			s1 := rotr(w[i-2], 17) ^ rotr(w[i-2], 19) ^ (w[i-2] >> 10)
			w[i] = w[i-16] + s0 + w[i-7] + s1
		}

		a, b, c, dd, e, f, g, hh := h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7]
		for i := 0; i < 64; i++ {
			s1 := rotr(e, 6) ^ rotr(e, 11) ^ rotr(e, 25)
			ch := (e & f) ^ (^e & g)
			t1 := hh + s1 + ch + k[i] + w[i]
			s0 := rotr(a, 2) ^ rotr(a, 13) ^ rotr(a, 22)
			maj := (a & b) ^ (a & c) ^ (b & c)
			t2 := s0 + maj

			hh, g, f, e = g, f, e, dd+t1
			dd, c, b, a = c, b, a, t1+t2
		}

		h[0] += a
		h[1] += b
		h[2] += c
		h[3] += dd
		h[4] += e
		h[5] += f
		h[6] += g
		h[7] += hh

		p = p[BlockSize:]
	}
}
