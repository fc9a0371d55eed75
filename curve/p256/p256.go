// Package p256 implements Jacobian point arithmetic and scalar
// multiplication over the NIST P-256 curve y^2 = x^3 - 3x + b.
package p256

import (
	"coreprim.dev/coreerr"
	"coreprim.dev/fp256"
)

// Jacobian represents the point (X/Z^2, Y/Z^3) in Montgomery-form field
// coordinates. Z == 0 denotes the point at infinity.
type Jacobian struct {
	X, Y, Z fp256.Elem
}

// Affine is an uncompressed affine point.
type Affine struct {
	X, Y     fp256.Elem
	Infinity bool
}

var curveB fp256.Elem

func init() {
	b, err := fp256.FromBytes(beBytes([4]uint64{0x3BCE3C3E27D2604B, 0x651D06B0CC53B0F6, 0xB3EBBD55769886BC, 0x5AC635D8AA3A93E7}))
	if err != nil {
		panic("p256: bad curve constant")
	}
	curveB = b
}

func beBytes(limbsLE [4]uint64) []byte {
	var out [32]byte
	for i := 0; i < 4; i++ {
		w := limbsLE[i]
		base := 32 - (i+1)*8
		for j := 7; j >= 0; j-- {
			out[base+j] = byte(w)
			w >>= 8
		}
	}
	return out[:]
}

// Generator is the base point G.
var Generator = mustAffine(
	[4]uint64{0xF4A13945D898C296, 0x77037D812DEB33A0, 0xF8BCE6E563A440F2, 0x6B17D1F2E12C4247},
	[4]uint64{0xCBB6406837BF51F5, 0x2BCE33576B315ECE, 0x8EE7EB4A7C0F9E16, 0x4FE342E2FE1A7F9B},
)

func mustAffine(xLE, yLE [4]uint64) Affine {
	x, err := fp256.FromBytes(beBytes(xLE))
	if err != nil {
		panic("p256: bad generator x")
	}
	y, err := fp256.FromBytes(beBytes(yLE))
	if err != nil {
		panic("p256: bad generator y")
	}
	return Affine{X: x, Y: y}
}

// Identity returns the point at infinity in Jacobian form.
func Identity() Jacobian {
	var j Jacobian
	j.Y = fp256.One()
	return j
}

func (p *Jacobian) fromAffine(a *Affine) {
	if a.Infinity {
		*p = Identity()
		return
	}
	p.X = a.X
	p.Y = a.Y
	p.Z = fp256.One()
}

// isInfinity reports Z == 0, per the spec's "OR the limbs of Z1" detection.
func (p *Jacobian) isInfinity() bool {
	return p.Z.IsZero()
}

// Double computes p3 = 2*p1 using the standard Jacobian doubling formula
// for a = -3 curves.
func Double(p3, p1 *Jacobian) {
	var xx, yy, yyyy, zz, s, m, t fp256.Elem
	xx.Sqr(&p1.X)
	yy.Sqr(&p1.Y)
	yyyy.Sqr(&yy)
	zz.Sqr(&p1.Z)

	// s = 4*x*yy
	s.Mul(&p1.X, &yy)
	s.Add(&s, &s)
	s.Add(&s, &s)

	// m = 3*xx - 3*zz^2 = 3*(xx - zz^2) [a = -3]
	var zzzz fp256.Elem
	zzzz.Sqr(&zz)
	m.Sub(&xx, &zzzz)
	var m3 fp256.Elem
	m3.Add(&m, &m)
	m3.Add(&m3, &m)
	m = m3

	// t = m^2 - 2*s
	var s2 fp256.Elem
	s2.Add(&s, &s)
	t.Sqr(&m)
	t.Sub(&t, &s2)

	// y3 = m*(s - t) - 8*yyyy
	var yNew, eight fp256.Elem
	yNew.Sub(&s, &t)
	yNew.Mul(&m, &yNew)
	eight.Add(&yyyy, &yyyy)
	eight.Add(&eight, &eight)
	eight.Add(&eight, &eight)
	yNew.Sub(&yNew, &eight)

	// z3 = (y1+z1)^2 - yy - zz
	var zNew, ypz fp256.Elem
	ypz.Add(&p1.Y, &p1.Z)
	zNew.Sqr(&ypz)
	zNew.Sub(&zNew, &yy)
	zNew.Sub(&zNew, &zz)

	p3.X = t
	p3.Y = yNew
	p3.Z = zNew
}

// Add computes p3 = p1 + p2 (both Jacobian), correctly handling p1 = O,
// p2 = O, and p1 = p2 by falling through to the doubling result,
// selected in at the end via constant-time conditional-select.
func Add(p3, p1, p2 *Jacobian) {
	var z1z1, z2z2, u1, u2, s1, s2, h, i, j, r, v fp256.Elem
	z1z1.Sqr(&p1.Z)
	z2z2.Sqr(&p2.Z)
	u1.Mul(&p1.X, &z2z2)
	u2.Mul(&p2.X, &z1z1)
	var z1cubed, z2cubed fp256.Elem
	z1cubed.Mul(&p1.Z, &z1z1)
	z2cubed.Mul(&p2.Z, &z2z2)
	s1.Mul(&p1.Y, &z2cubed)
	s2.Mul(&p2.Y, &z1cubed)

	h.Sub(&u2, &u1)
	var doubleH fp256.Elem
	doubleH.Add(&h, &h)
	i.Sqr(&doubleH)
	j.Mul(&h, &i)
	r.Sub(&s2, &s1)
	r.Add(&r, &r)
	v.Mul(&u1, &i)

	var x3, y3, z3 fp256.Elem
	x3.Sqr(&r)
	x3.Sub(&x3, &j)
	var v2 fp256.Elem
	v2.Add(&v, &v)
	x3.Sub(&x3, &v2)

	var vMinusX3 fp256.Elem
	vMinusX3.Sub(&v, &x3)
	y3.Mul(&r, &vMinusX3)
	var s1j2 fp256.Elem
	s1j2.Mul(&s1, &j)
	s1j2.Add(&s1j2, &s1j2)
	y3.Sub(&y3, &s1j2)

	var zSum fp256.Elem
	zSum.Add(&p1.Z, &p2.Z)
	z3.Sqr(&zSum)
	z3.Sub(&z3, &z1z1)
	z3.Sub(&z3, &z2z2)
	z3.Mul(&z3, &h)

	general := Jacobian{X: x3, Y: y3, Z: z3}

	var doubled Jacobian
	Double(&doubled, p1)

	// Same x-coordinate (h == 0, both finite) is ambiguous between two
	// cases the general formula can't resolve: p1 == p2 (r == 0 too),
	// which needs the doubling result, and p1 == -p2 (r != 0), whose true
	// sum is the point at infinity. All outcomes are folded in via
	// constant-time conditional assignment so no branch depends on the
	// points' secret coordinates.
	sameX := boolToFlag(h.IsZero())
	sameY := boolToFlag(r.IsZero())
	p1Inf := boolToFlag(p1.isInfinity())
	p2Inf := boolToFlag(p2.isInfinity())
	bothFinite := (^p1Inf) & (^p2Inf) & 1
	useDoubled := sameX & sameY & bothFinite & 1
	useInfinity := sameX & (^sameY & 1) & bothFinite & 1

	identity := Identity()

	result := general
	selectJacobian(&result, &general, &doubled, useDoubled)
	selectJacobian(&result, &result, &identity, useInfinity)
	selectJacobian(&result, &result, p2, p1Inf)
	selectJacobian(&result, &result, p1, p2Inf)
	*p3 = result
}

func boolToFlag(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}

// MixAdd computes p3 = p1 + p2 where p2 is affine (Z2 = 1 implicit).
// It converts p2 to Jacobian form with Z = 1 and calls Add, so it does
// the same field operations as Add; no multiplications are saved.
func MixAdd(p3 *Jacobian, p1 *Jacobian, p2 *Affine) {
	var p2j Jacobian
	p2j.fromAffine(p2)
	Add(p3, p1, &p2j)
}

// ToAffine converts a Jacobian point to affine coordinates.
func (p Jacobian) ToAffine() Affine {
	if p.isInfinity() {
		return Affine{Infinity: true}
	}
	var zInv, zInv2, zInv3, x, y fp256.Elem
	zInv.Inverse(&p.Z)
	zInv2.Sqr(&zInv)
	zInv3.Mul(&zInv2, &zInv)
	x.Mul(&p.X, &zInv2)
	y.Mul(&p.Y, &zInv3)
	return Affine{X: x, Y: y}
}

// ScalarMult computes r = k*p for variable base point p, k a 32-byte
// big-endian scalar. Uses a fixed-iteration double-and-add-always ladder:
// every bit performs both a doubling and an addition, and the real
// addition's result is chosen via constant-time conditional assignment,
// so there is no secret-dependent branch.
func ScalarMult(k [32]byte, p Affine) Jacobian {
	var pj Jacobian
	pj.fromAffine(&p)

	acc := Identity()
	for i := 0; i < 256; i++ {
		byteIdx := i / 8
		bitIdx := uint(7 - i%8)
		bit := uint64((k[byteIdx] >> bitIdx) & 1)

		var doubled Jacobian
		Double(&doubled, &acc)

		var added Jacobian
		Add(&added, &doubled, &pj)

		selectJacobian(&acc, &doubled, &added, bit)
	}
	return acc
}

// ScalarBaseMult computes r = k*G.
func ScalarBaseMult(k [32]byte) Jacobian {
	return ScalarMult(k, Generator)
}

func selectJacobian(dst, whenZero, whenOne *Jacobian, flag uint64) {
	dst.X.CondAssign(&whenZero.X, 1)
	dst.Y.CondAssign(&whenZero.Y, 1)
	dst.Z.CondAssign(&whenZero.Z, 1)
	dst.X.CondAssign(&whenOne.X, flag)
	dst.Y.CondAssign(&whenOne.Y, flag)
	dst.Z.CondAssign(&whenOne.Z, flag)
}

// EncodeUncompressed writes the X9.62 uncompressed encoding 0x04‖X‖Y.
func EncodeUncompressed(a *Affine) []byte {
	out := make([]byte, 65)
	out[0] = 0x04
	xb := a.X.Bytes()
	yb := a.Y.Bytes()
	copy(out[1:33], xb[:])
	copy(out[33:65], yb[:])
	return out
}

// DecodeUncompressed parses 0x04‖X‖Y, validating the format byte, the
// coordinate range, and the curve equation.
func DecodeUncompressed(b []byte) (Affine, error) {
	if len(b) != 65 {
		return Affine{}, coreerr.ErrWrongLength
	}
	if b[0] != 0x04 {
		return Affine{}, coreerr.ErrNotUncompressed
	}
	x, err := fp256.FromBytes(b[1:33])
	if err != nil {
		return Affine{}, coreerr.ErrOutOfRange
	}
	y, err := fp256.FromBytes(b[33:65])
	if err != nil {
		return Affine{}, coreerr.ErrOutOfRange
	}
	a := Affine{X: x, Y: y}
	if !isOnCurve(&a) {
		return Affine{}, coreerr.ErrNotOnCurve
	}
	return a, nil
}

func isOnCurve(a *Affine) bool {
	var lhs, rhs, x2, x3, threeX fp256.Elem
	lhs.Sqr(&a.Y)
	x2.Sqr(&a.X)
	x3.Mul(&x2, &a.X)
	threeX.Add(&a.X, &a.X)
	threeX.Add(&threeX, &a.X)
	rhs.Sub(&x3, &threeX)
	rhs.Add(&rhs, &curveB)
	return lhs.Equal(&rhs)
}
