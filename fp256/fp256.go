// Package fp256 implements constant-time field arithmetic modulo the
// NIST P-256 prime p = 2^256 - 2^224 + 2^192 + 2^96 - 1, as 4 64-bit
// limbs in Montgomery form. See bignum for the generic Montgomery
// machinery this specializes.
package fp256

import (
	"coreprim.dev/bignum"
	"coreprim.dev/coreerr"
)

const Limbs = 4

// p, little-endian 64-bit limbs.
var modulus = []uint64{
	0xFFFFFFFFFFFFFFFF,
	0x00000000FFFFFFFF,
	0x0000000000000000,
	0xFFFFFFFF00000001,
}

var params = bignum.NewMontParams(modulus)

// Elem is a field element, always held internally in Montgomery form.
type Elem struct {
	limbs [Limbs]uint64
}

// Zero and One are the additive and multiplicative identities.
func Zero() Elem { return Elem{} }
func One() Elem  { var e Elem; copy(e.limbs[:], params.R1); return e }

// FromBytes parses a 32-byte big-endian standard-form integer, rejecting
// values outside [0, p) with coreerr.OutOfRange.
func FromBytes(b []byte) (Elem, error) {
	if len(b) != 32 {
		return Elem{}, coreerr.ErrWrongLength
	}
	var std [Limbs]uint64
	beToLimbs(std[:], b)
	if bignum.Cmp(std[:], modulus) >= 0 {
		return Elem{}, coreerr.ErrOutOfRange
	}
	var e Elem
	bignum.ToMont(e.limbs[:], std[:], params)
	return e, nil
}

// Bytes serializes e in standard form as 32 big-endian bytes.
func (e Elem) Bytes() [32]byte {
	var std [Limbs]uint64
	bignum.Demont(std[:], e.limbs[:], params)
	var out [32]byte
	limbsToBE(out[:], std[:])
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

func (e *Elem) Mul(x, y *Elem) {
	bignum.MontMul(e.limbs[:], x.limbs[:], y.limbs[:], params)
}

func (e *Elem) Sqr(x *Elem) {
	bignum.MontSqr(e.limbs[:], x.limbs[:], params)
}

// Inverse sets e = x^-1 mod p, via Fermat's little theorem (p is prime).
// Behavior for x == 0 is to yield 0, matching the core-wide "terminates,
// result implementation-defined" contract.
func (e *Elem) Inverse(x *Elem) {
	bignum.Inv(e.limbs[:], x.limbs[:], params)
}

func (e *Elem) IsZero() bool { return bignum.IsZero(e.limbs[:]) }

func (e *Elem) Equal(x *Elem) bool { return bignum.Equal(e.limbs[:], x.limbs[:]) }

// IsOdd reports the least significant bit of the standard-form value.
func (e *Elem) IsOdd() bool {
	var std [Limbs]uint64
	bignum.Demont(std[:], e.limbs[:], params)
	return std[0]&1 == 1
}

// CondAssign sets e = x when flag == 1, leaves e unchanged when flag == 0.
func (e *Elem) CondAssign(x *Elem, flag uint64) {
	bignum.CondAssign(e.limbs[:], x.limbs[:], flag)
}

func (e *Elem) Zeroize() { bignum.Zeroize(e.limbs[:]) }

func beToLimbs(limbs []uint64, b []byte) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		var w uint64
		for j := 0; j < 8; j++ {
			w = w<<8 | uint64(b[len(b)-(i+1)*8+j])
		}
		limbs[i] = w
	}
}

func limbsToBE(b []byte, limbs []uint64) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		w := limbs[i]
		base := len(b) - (i+1)*8
		for j := 7; j >= 0; j-- {
			b[base+j] = byte(w)
			w >>= 8
		}
	}
}
