// Package x25519 implements the RFC 7748 X25519 function: scalar
// multiplication on the Montgomery curve curve25519 via the Montgomery
// ladder, with constant-time swap at every step.
package x25519

import (
	"coreprim.dev/coreerr"
	"coreprim.dev/fp25519"
)

const a24 = 121665

// clamp applies the RFC 7748 §5 scalar decoding rule.
func clamp(k [32]byte) [32]byte {
	k[0] &= 248
	k[31] &= 127
	k[31] |= 64
	return k
}

// X computes the Montgomery-ladder scalar multiplication of a clamped
// scalar against the u-coordinate u. Returns ErrNotOnCurve if the
// result is the all-zero output required to be rejected by callers
// that need a contributory shared secret (RFC 7748 §6.1).
func X(scalar, u [32]byte) ([32]byte, error) {
	k := clamp(scalar)
	x1 := fp25519.FromLEBytes(u)

	x2 := fp25519.One()
	z2 := fp25519.Zero()
	x3 := x1
	z3 := fp25519.One()

	var swap uint64
	for t := 254; t >= 0; t-- {
		byteIdx := t / 8
		bitIdx := uint(t % 8)
		kt := uint64((k[byteIdx] >> bitIdx) & 1)

		swap ^= kt
		x2.CondSwap(&x3, swap)
		z2.CondSwap(&z3, swap)
		swap = kt

		var a, aa, b, bb, e, c, d, da, cb fp25519.Elem
		a.Add(&x2, &z2)
		aa.Sqr(&a)
		b.Sub(&x2, &z2)
		bb.Sqr(&b)
		e.Sub(&aa, &bb)
		c.Add(&x3, &z3)
		d.Sub(&x3, &z3)
		da.Mul(&d, &a)
		cb.Mul(&c, &b)

		var dacb, dasubcb fp25519.Elem
		dacb.Add(&da, &cb)
		x3.Sqr(&dacb)

		dasubcb.Sub(&da, &cb)
		var dasubcb2 fp25519.Elem
		dasubcb2.Sqr(&dasubcb)
		z3.Mul(&x1, &dasubcb2)

		x2.Mul(&aa, &bb)

		var a24e, sum fp25519.Elem
		a24e.MulSmall(&e, a24)
		sum.Add(&aa, &a24e)
		z2.Mul(&e, &sum)
	}
	x2.CondSwap(&x3, swap)
	z2.CondSwap(&z3, swap)

	var zInv, out fp25519.Elem
	zInv.Inverse(&z2)
	out.Mul(&x2, &zInv)

	result := out.ToLEBytes()
	if isAllZero(result) {
		return result, coreerr.ErrNotOnCurve
	}
	return result, nil
}

// Base returns the u-coordinate of the fixed curve25519 base point, 9.
func Base() [32]byte {
	var u [32]byte
	u[0] = 9
	return u
}

// BaseMult computes the X25519 public key for a clamped private scalar.
func BaseMult(scalar [32]byte) ([32]byte, error) {
	return X(scalar, Base())
}

func isAllZero(b [32]byte) bool {
	var acc byte
	for _, v := range b {
		acc |= v
	}
	return acc == 0
}
