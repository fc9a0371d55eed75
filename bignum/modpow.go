package bignum

// ModPow computes z = x^e mod m (all in Montgomery domain) via a
// fixed-length square-and-multiply-always ladder: exactly bitLen
// iterations run regardless of the bit pattern of e, and every iteration
// performs both the multiply and a constant-time conditional-select of
// its result, so there is no secret-dependent branch and no
// secret-dependent loop bound. e is big-endian bytes; bitLen is the
// number of bits of e to consume (the caller fixes this so timing does
// not depend on e's leading zero count).
//
// x must already be in Montgomery form; the result is in Montgomery form.
func ModPow(z, x []uint64, e []byte, bitLen int, p *MontParams) {
	k := p.K
	acc := make([]uint64, k)
	copy(acc, p.R1) // Montgomery form of 1
	base := append([]uint64(nil), x...)
	tmp := make([]uint64, k)

	for i := 0; i < bitLen; i++ {
		bitIndex := bitLen - 1 - i
		byteIdx := bitIndex / 8
		bit := uint64(0)
		if byteIdx < len(e) {
			bit = uint64((e[len(e)-1-byteIdx] >> uint(bitIndex%8)) & 1)
		}

		MontSqr(acc, acc, p)
		MontMul(tmp, acc, base, p)
		CondAssign(acc, tmp, bit)
	}
	copy(z, acc)
}

// Inv computes z = x^-1 mod m for PRIME m, via Fermat's little theorem:
// x^(m-2) mod m, computed with the ModPow square-and-multiply-always
// ladder over all 64*K exponent bits. x and z are in Montgomery form.
// This is the inversion used on the fixed-width prime fields (fp256,
// fp384, fp25519, fn25519) and the curve orders in signing; see ModInv
// in modinv.go for the runtime-width, non-prime odd-modulus case.
//
// Behavior at x == 0 is implementation-defined but terminates: Fermat's
// formula returns 0 for x == 0, which this function reports unchanged.
func Inv(z, x []uint64, p *MontParams) {
	k := p.K
	exp := make([]byte, 8*k)
	mMinus2 := make([]uint64, k)
	two := make([]uint64, k)
	two[0] = 2
	Sub(mMinus2, p.M, two)
	limbsToBE(exp, mMinus2)
	ModPow(z, x, exp, 64*k, p)
}

func limbsToBE(out []byte, limbs []uint64) {
	k := len(limbs)
	for i := 0; i < k; i++ {
		w := limbs[i]
		base := len(out) - (i+1)*8
		for b := 0; b < 8; b++ {
			out[base+7-b] = byte(w)
			w >>= 8
		}
	}
}
