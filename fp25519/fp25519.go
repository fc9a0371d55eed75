// Package fp25519 implements constant-time field arithmetic modulo the
// curve25519 prime p = 2^255 - 19, as 4 64-bit limbs in Montgomery form.
package fp25519

import (
	"coreprim.dev/bignum"
)

const Limbs = 4

var modulus = []uint64{
	0xFFFFFFFFFFFFFFED,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
	0x7FFFFFFFFFFFFFFF,
}

var params = bignum.NewMontParams(modulus)

type Elem struct {
	limbs [Limbs]uint64
}

func Zero() Elem { return Elem{} }
func One() Elem  { var e Elem; copy(e.limbs[:], params.R1); return e }

// FromLEBytes parses a 32-byte little-endian integer, masking bit 255
// (the top bit of the last byte) per RFC 7748 §5 rather than rejecting
// out-of-range encodings: X25519 inputs are reduced mod p, not validated.
func FromLEBytes(b [32]byte) Elem {
	b[31] &= 0x7F
	var std [Limbs]uint64
	for i := 0; i < Limbs; i++ {
		var w uint64
		for j := 0; j < 8; j++ {
			w |= uint64(b[i*8+j]) << (8 * j)
		}
		std[i] = w
	}
	if bignum.Cmp(std[:], modulus) >= 0 {
		bignum.Sub(std[:], std[:], modulus)
	}
	var e Elem
	bignum.ToMont(e.limbs[:], std[:], params)
	return e
}

// ToLEBytes serializes e in standard form as 32 little-endian bytes.
func (e Elem) ToLEBytes() [32]byte {
	var std [Limbs]uint64
	bignum.Demont(std[:], e.limbs[:], params)
	var out [32]byte
	for i := 0; i < Limbs; i++ {
		w := std[i]
		for j := 0; j < 8; j++ {
			out[i*8+j] = byte(w)
			w >>= 8
		}
	}
	return out
}

func (e *Elem) Add(x, y *Elem) {
	carry := bignum.Add(e.limbs[:], x.limbs[:], y.limbs[:])
	if carry != 0 || bignum.Cmp(e.limbs[:], modulus) >= 0 {
		bignum.Sub(e.limbs[:], e.limbs[:], modulus)
	}
}

func (e *Elem) Sub(x, y *Elem) {
	borrow := bignum.Sub(e.limbs[:], x.limbs[:], y.limbs[:])
	if borrow != 0 {
		bignum.Add(e.limbs[:], e.limbs[:], modulus)
	}
}

func (e *Elem) Mul(x, y *Elem) { bignum.MontMul(e.limbs[:], x.limbs[:], y.limbs[:], params) }
func (e *Elem) Sqr(x *Elem)    { bignum.MontSqr(e.limbs[:], x.limbs[:], params) }
func (e *Elem) Inverse(x *Elem) { bignum.Inv(e.limbs[:], x.limbs[:], params) }

func (e *Elem) IsZero() bool       { return bignum.IsZero(e.limbs[:]) }
func (e *Elem) Equal(x *Elem) bool { return bignum.Equal(e.limbs[:], x.limbs[:]) }

// MulSmall multiplies by a small non-secret constant (used for the X25519
// ladder's a24 = 121665 constant). It converts c to Montgomery form and
// does a full Mul.
func (e *Elem) MulSmall(x *Elem, c uint64) {
	var cm Elem
	var std [Limbs]uint64
	std[0] = c
	bignum.ToMont(cm.limbs[:], std[:], params)
	e.Mul(x, &cm)
}

func (e *Elem) CondAssign(x *Elem, flag uint64) { bignum.CondAssign(e.limbs[:], x.limbs[:], flag) }
func (e *Elem) CondSwap(x *Elem, flag uint64)   { bignum.CondSwap(e.limbs[:], x.limbs[:], flag) }
func (e *Elem) Zeroize()                        { bignum.Zeroize(e.limbs[:]) }
