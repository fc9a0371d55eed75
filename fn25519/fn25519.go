// Package fn25519 implements constant-time arithmetic modulo n_25519 =
// 2^252 + 27742317777372353535851937790883648493, the order of the
// curve25519/edwards25519 base point subgroup, as 4 64-bit limbs in
// Montgomery form. See bignum for the generic Montgomery machinery this
// specializes, and fp25519 for the sibling field modulus p = 2^255-19.
package fn25519

import (
	"coreprim.dev/bignum"
	"coreprim.dev/coreerr"
)

const Limbs = 4

// n_25519, little-endian 64-bit limbs.
var modulus = []uint64{
	0x5812631a5cf5d3ed,
	0x14def9dea2f79cd6,
	0x0000000000000000,
	0x1000000000000000,
}

var params = bignum.NewMontParams(modulus)

// Elem is a scalar element mod n_25519, always held internally in
// Montgomery form.
type Elem struct {
	limbs [Limbs]uint64
}

func Zero() Elem { return Elem{} }
func One() Elem  { var e Elem; copy(e.limbs[:], params.R1); return e }

// FromLEBytes parses a 32-byte little-endian integer, rejecting values
// outside [0, n_25519) with coreerr.ErrOutOfRange.
func FromLEBytes(b [32]byte) (Elem, error) {
	var std [Limbs]uint64
	leToLimbs(std[:], b[:])
	if bignum.Cmp(std[:], modulus) >= 0 {
		return Elem{}, coreerr.ErrOutOfRange
	}
	var e Elem
	bignum.ToMont(e.limbs[:], std[:], params)
	return e, nil
}

// ToLEBytes serializes e in standard form as 32 little-endian bytes.
func (e Elem) ToLEBytes() [32]byte {
	var std [Limbs]uint64
	bignum.Demont(std[:], e.limbs[:], params)
	var out [32]byte
	limbsToLE(out[:], std[:])
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

func (e *Elem) Neg(x *Elem) {
	var zero Elem
	e.Sub(&zero, x)
}

func (e *Elem) Mul(x, y *Elem) { bignum.MontMul(e.limbs[:], x.limbs[:], y.limbs[:], params) }
func (e *Elem) Sqr(x *Elem)    { bignum.MontSqr(e.limbs[:], x.limbs[:], params) }

// Inverse sets e = x^-1 mod n_25519 (n_25519 is prime). Behavior for
// x == 0 is to yield 0, matching the core-wide "terminates, result
// implementation-defined" contract.
func (e *Elem) Inverse(x *Elem) { bignum.Inv(e.limbs[:], x.limbs[:], params) }

func (e *Elem) IsZero() bool       { return bignum.IsZero(e.limbs[:]) }
func (e *Elem) Equal(x *Elem) bool { return bignum.Equal(e.limbs[:], x.limbs[:]) }

func (e *Elem) CondAssign(x *Elem, flag uint64) { bignum.CondAssign(e.limbs[:], x.limbs[:], flag) }
func (e *Elem) Zeroize()                        { bignum.Zeroize(e.limbs[:]) }

// smallMont returns the Montgomery form of a small public constant.
func smallMont(c uint64) Elem {
	var std [Limbs]uint64
	std[0] = c
	var e Elem
	bignum.ToMont(e.limbs[:], std[:], params)
	return e
}

// ReduceWideLE reduces an arbitrary 64-byte little-endian integer (e.g. a
// SHA-512 digest, as used to expand an edwards25519/curve25519 seed into
// a scalar) modulo n_25519, via Horner's method from the most significant
// byte down: acc = acc*256 + b[i] (mod n_25519) for each byte.
func ReduceWideLE(b [64]byte) Elem {
	c256 := smallMont(256)
	var acc Elem
	for i := 63; i >= 0; i-- {
		acc.Mul(&acc, &c256)
		bi := smallMont(uint64(b[i]))
		acc.Add(&acc, &bi)
	}
	return acc
}

func leToLimbs(limbs []uint64, b []byte) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		var w uint64
		for j := 7; j >= 0; j-- {
			w = w<<8 | uint64(b[i*8+j])
		}
		limbs[i] = w
	}
}

func limbsToLE(b []byte, limbs []uint64) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		w := limbs[i]
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(w)
			w >>= 8
		}
	}
}
