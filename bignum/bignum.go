// Package bignum implements width-agnostic big-integer arithmetic over
// 64-bit limbs, little-endian within the limb slice (limb 0 is least
// significant). It never allocates inside a hot path that a caller could
// call with secret-dependent loop bounds: every loop here iterates over a
// length that is a compile-time constant or a non-secret parameter (limb
// count), never over a secret value. See fp256/fp384/fp25519/fn25519 for
// the fixed-width specializations built on top of this package, and rsa
// for the runtime-width consumer.
package bignum

import "math/bits"

// Add computes z = x + y over k limbs and returns the carry out (0 or 1).
// z may alias x or y. Constant-time in the limb values.
func Add(z, x, y []uint64) uint64 {
	var c uint64
	for i := range z {
		var sum uint64
		sum, c = bits.Add64(x[i], y[i], c)
		z[i] = sum
	}
	return c
}

// Sub computes z = x - y over k limbs and returns the borrow out (0 or 1).
func Sub(z, x, y []uint64) uint64 {
	var b uint64
	for i := range z {
		var diff uint64
		diff, b = bits.Sub64(x[i], y[i], b)
		z[i] = diff
	}
	return b
}

// IsZero reports whether every limb of x is zero, in constant time with
// respect to the limb values (the loop bound k is never secret).
func IsZero(x []uint64) bool {
	var acc uint64
	for _, w := range x {
		acc |= w
	}
	return acc == 0
}

// Equal reports whether x == y limb-for-limb, constant-time in the values.
func Equal(x, y []uint64) bool {
	var acc uint64
	for i := range x {
		acc |= x[i] ^ y[i]
	}
	return acc == 0
}

// Cmp returns -1, 0, +1 as x <, ==, > y, treating both as unsigned
// big-endian-by-limb-index integers. Not constant-time. In this package it
// is used by NewMontParams setup and by MontRedc's closing conditional
// subtraction, which runs on secret values.
func Cmp(x, y []uint64) int {
	for i := len(x) - 1; i >= 0; i-- {
		if x[i] != y[i] {
			if x[i] > y[i] {
				return 1
			}
			return -1
		}
	}
	return 0
}

// CondAssign sets z = x if flag == 1, leaves z unchanged if flag == 0.
// flag must be 0 or 1; any other value yields an undefined but bounded
// result. Constant-time, no secret-dependent branch.
func CondAssign(z, x []uint64, flag uint64) {
	mask := -flag // all-ones if flag==1, all-zero if flag==0
	for i := range z {
		z[i] = z[i] ^ (mask & (z[i] ^ x[i]))
	}
}

// CondSwap conditionally swaps a and b in place when flag == 1.
func CondSwap(a, b []uint64, flag uint64) {
	mask := -flag
	for i := range a {
		t := mask & (a[i] ^ b[i])
		a[i] ^= t
		b[i] ^= t
	}
}

// Mul computes the full 2k-limb product z = x*y for k-limb x, y. z must be
// 2*len(x) limbs and must not alias x or y. Schoolbook, constant-time in
// the operand values (loop bounds are the fixed width k).
func Mul(z, x, y []uint64) {
	k := len(x)
	for i := range z {
		z[i] = 0
	}
	for i := 0; i < k; i++ {
		var carry uint64
		yi := y[i]
		for j := 0; j < k; j++ {
			hi, lo := bits.Mul64(x[j], yi)
			var c1, c2 uint64
			lo, c1 = bits.Add64(lo, z[i+j], 0)
			lo, c2 = bits.Add64(lo, carry, 0)
			z[i+j] = lo
			carry = hi + c1 + c2
		}
		z[i+k] = carry
	}
}

// Sqr computes z = x*x over k limbs into a 2k-limb result. Implemented as
// Mul(z, x, x); squaring-specific cross-term halving is a performance
// optimization this core does not carry.
func Sqr(z, x []uint64) {
	Mul(z, x, x)
}

// Zeroize overwrites s with zero. The field packages expose it as a
// per-type Zeroize method; nothing in the core calls it automatically, so
// key material, scratch bignums and round keys are not cleared when they
// go out of scope (the only internal caller is ModInv's failure path,
// which clears its output). A compiler is
// in principle free to elide a plain store that is never read again; the
// loop form with a volatile-like escape (the slice is a heap/stack value
// reachable from the caller) mirrors the defence the rest of the corpus
// uses (memclear-style explicit zero writes) rather than relying on a
// dedicated memory barrier primitive unavailable in portable Go.
func Zeroize(s []uint64) {
	for i := range s {
		s[i] = 0
	}
}
