package bignum

// ModInv computes z = x^-1 mod m for an odd modulus m that need not be
// prime. Operates on standard-form (non-Montgomery) values. No other
// package in this module calls it; rsa key generation inverts e modulo
// the (even) phi(n) with math/big instead.
//
// Unlike the fixed-width field inverses (see Inv, used on every signing
// and key-agreement operation), this runs the classical binary extended
// Euclidean algorithm and is NOT constant-time in x.
// Terminates for any x (behavior at x == 0 or gcd(x,m) != 1 is to
// return a zero result, matching the spec's "implementation-defined but
// must terminate" clause).
func ModInv(z, x, m []uint64) {
	k := len(m)
	u := append([]uint64(nil), x...)
	v := append([]uint64(nil), m...)
	a := make([]uint64, k)
	a[0] = 1
	b := make([]uint64, k)

	// classic extended binary GCD on non-negative big integers represented
	// modulo m throughout, so a and b never need a genuine sign.
	for !IsZero(u) {
		for isEven(u) {
			shiftRight1(u)
			if isEven(a) {
				shiftRight1(a)
			} else {
				addThenShift(a, m)
			}
		}
		for isEven(v) {
			shiftRight1(v)
			if isEven(b) {
				shiftRight1(b)
			} else {
				addThenShift(b, m)
			}
		}
		if Cmp(u, v) >= 0 {
			Sub(u, u, v)
			subMod(a, a, b, m)
		} else {
			Sub(v, v, u)
			subMod(b, b, a, m)
		}
	}
	// v now holds gcd(x, m); if v == 1, b holds x^-1 mod m.
	one := make([]uint64, k)
	one[0] = 1
	if !Equal(v, one) {
		Zeroize(z)
		return
	}
	copy(z, b)
}

func isEven(x []uint64) bool { return x[0]&1 == 0 }

func shiftRight1(x []uint64) {
	var carry uint64
	for i := len(x) - 1; i >= 0; i-- {
		next := x[i] & 1
		x[i] = (x[i] >> 1) | (carry << 63)
		carry = next
	}
}

// addThenShift sets a = (a + m) >> 1, used when a is odd so a+m is even.
func addThenShift(a, m []uint64) {
	carryOut := Add(a, a, m)
	shiftRight1(a)
	if carryOut != 0 {
		a[len(a)-1] |= 1 << 63
	}
}

// subMod computes a = (a - b) mod m, handling an intermediate borrow by
// adding m back once.
func subMod(a, x, y, m []uint64) {
	borrow := Sub(a, x, y)
	if borrow != 0 {
		Add(a, a, m)
	}
}
