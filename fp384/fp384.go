// Package fp384 implements constant-time field arithmetic modulo the
// NIST P-384 prime p = 2^384 - 2^128 - 2^96 + 2^32 - 1, as 6 64-bit
// limbs in Montgomery form.
package fp384

import (
	"coreprim.dev/bignum"
	"coreprim.dev/coreerr"
)

const Limbs = 6

var modulus = []uint64{
	0x00000000FFFFFFFF,
	0xFFFFFFFF00000000,
	0xFFFFFFFFFFFFFFFE,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
}

var params = bignum.NewMontParams(modulus)

type Elem struct {
	limbs [Limbs]uint64
}

func Zero() Elem { return Elem{} }
func One() Elem  { var e Elem; copy(e.limbs[:], params.R1); return e }

func FromBytes(b []byte) (Elem, error) {
	if len(b) != 48 {
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

func (e Elem) Bytes() [48]byte {
	var std [Limbs]uint64
	bignum.Demont(std[:], e.limbs[:], params)
	var out [48]byte
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

func (e *Elem) Mul(x, y *Elem) { bignum.MontMul(e.limbs[:], x.limbs[:], y.limbs[:], params) }
func (e *Elem) Sqr(x *Elem)    { bignum.MontSqr(e.limbs[:], x.limbs[:], params) }

func (e *Elem) Inverse(x *Elem) { bignum.Inv(e.limbs[:], x.limbs[:], params) }

func (e *Elem) IsZero() bool       { return bignum.IsZero(e.limbs[:]) }
func (e *Elem) Equal(x *Elem) bool { return bignum.Equal(e.limbs[:], x.limbs[:]) }

func (e *Elem) IsOdd() bool {
	var std [Limbs]uint64
	bignum.Demont(std[:], e.limbs[:], params)
	return std[0]&1 == 1
}

func (e *Elem) CondAssign(x *Elem, flag uint64) { bignum.CondAssign(e.limbs[:], x.limbs[:], flag) }
func (e *Elem) Zeroize()                        { bignum.Zeroize(e.limbs[:]) }

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
