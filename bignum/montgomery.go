package bignum

import "math/bits"

// MontParams is the precomputed Montgomery context for one odd modulus m
// of fixed limb-width K. R = 2^(64*K). Constructed once per modulus (the
// fp256/fp384/fp25519/fn25519 packages each build one at init time) and
// read-only thereafter.
type MontParams struct {
	K     int
	M     []uint64 // modulus, K limbs
	M0inv uint64   // -m^-1 mod 2^64
	R1    []uint64 // R mod m, K limbs (Montgomery form of 1)
	R2    []uint64 // R^2 mod m, K limbs (used by ToMont)
}

// NewMontParams builds the Montgomery context for modulus m (K limbs, m
// odd, m[K-1] != 0). Not constant-time and not meant to run on secret
// data: it runs once, at package init, over public curve/field constants.
func NewMontParams(m []uint64) *MontParams {
	k := len(m)
	p := &MontParams{K: k, M: append([]uint64(nil), m...)}
	p.M0inv = montInverseWord(m[0])

	// R mod m: R = 2^(64k). Build by repeated doubling-with-reduction of 1.
	r1 := make([]uint64, k)
	r1[0] = 1
	for i := 0; i < 64*k; i++ {
		r1 = mulDoubleMod(r1, m)
	}
	p.R1 = r1

	// R^2 mod m: continue doubling R1 another 64k times.
	r2 := append([]uint64(nil), r1...)
	for i := 0; i < 64*k; i++ {
		r2 = mulDoubleMod(r2, m)
	}
	p.R2 = r2
	return p
}

// mulDoubleMod returns (2*x) mod m for x already < m, via a single shift
// and conditional subtract. Helper for the public, one-time NewMontParams
// setup only.
func mulDoubleMod(x, m []uint64) []uint64 {
	k := len(x)
	z := make([]uint64, k)
	carry := Add(z, x, x)
	if carry != 0 || Cmp(z, m) >= 0 {
		Sub(z, z, m)
	}
	return z
}

// montInverseWord computes -m0^-1 mod 2^64 for odd m0, by Hensel/Newton
// lifting: if e = m0*x - 1 satisfies e == 0 mod 2^n, then
// x' = x*(2 - m0*x) satisfies it mod 2^(2n). Doubles precision every
// iteration starting from the 3 bits that x = m0 already gets right.
func montInverseWord(m0 uint64) uint64 {
	x := m0 // correct mod 2^3 already for any odd m0
	for i := 0; i < 5; i++ {
		x = x * (2 - m0*x)
	}
	return -x
}

// MontRedc performs Montgomery reduction of a 2K-limb value t in place,
// writing the K-limb result to z. Per the "almost-Montgomery" contract
// noted in spec's Open Question, t need not be < m*R; the output is
// always reduced to the strict range [0, m) by the closing conditional
// subtraction, regardless of how loose the input was.
func MontRedc(z []uint64, t []uint64, p *MontParams) {
	k := p.K
	// t is left untouched; operate on a local copy sized 2k+1 to hold carry-out.
	buf := make([]uint64, 2*k+1)
	copy(buf, t)

	for i := 0; i < k; i++ {
		u := buf[i] * p.M0inv
		var carry uint64
		for j := 0; j < k; j++ {
			hi, lo := mulAdd(u, p.M[j], buf[i+j], carry)
			buf[i+j] = lo
			carry = hi
		}
		// propagate carry into the remaining limbs
		j := i + k
		for carry != 0 {
			sum := buf[j] + carry
			carryOut := uint64(0)
			if sum < buf[j] {
				carryOut = 1
			}
			buf[j] = sum
			carry = carryOut
			j++
		}
	}

	// The pre-subtraction value is < 2m and can spill into buf[2k] when m
	// is close to R; that carry limb forces the subtraction.
	copy(z, buf[k:2*k])
	if buf[2*k] != 0 || Cmp(z, p.M) >= 0 {
		Sub(z, z, p.M)
	}
}

// mulAdd computes hi,lo = a*b + c + carry.
func mulAdd(a, b, c, carry uint64) (hi, lo uint64) {
	hiM, loM := bits.Mul64(a, b)
	var c1, c2 uint64
	loM, c1 = bits.Add64(loM, c, 0)
	loM, c2 = bits.Add64(loM, carry, 0)
	return hiM + c1 + c2, loM
}

// MontMul computes z = x*y*R^-1 mod m (Montgomery multiplication). Per the
// spec contract: safe whenever x*y <= 2^(64k)*m, in particular whenever
// both operands are already < m.
func MontMul(z, x, y []uint64, p *MontParams) {
	k := p.K
	t := make([]uint64, 2*k)
	Mul(t, x, y)
	MontRedc(z, t, p)
}

// MontSqr computes z = x*x*R^-1 mod m.
func MontSqr(z, x []uint64, p *MontParams) {
	MontMul(z, x, x, p)
}

// ToMont maps x (standard form, < m) to Montgomery form: z = x*R mod m.
func ToMont(z, x []uint64, p *MontParams) {
	MontMul(z, x, p.R2, p)
}

// Demont maps x (Montgomery or "almost-Montgomery": any K-digit value,
// not necessarily < m) back to standard form in [0, m): z = x*R^-1 mod m.
// This is the loose precondition the spec's Open Question asks to be
// preserved; MontRedc's own almost-Montgomery tolerance plus its closing
// conditional subtraction gives exactly that.
func Demont(z, x []uint64, p *MontParams) {
	k := p.K
	t := make([]uint64, 2*k)
	copy(t, x)
	MontRedc(z, t, p)
}
