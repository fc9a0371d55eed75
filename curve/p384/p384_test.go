package p384

import "testing"

func TestGeneratorOnCurve(t *testing.T) {
	if !isOnCurve(&Generator) {
		t.Fatal("generator does not satisfy curve equation")
	}
}

func TestScalarMultByOneIsIdentity(t *testing.T) {
	var one [48]byte
	one[47] = 1
	p := ScalarBaseMult(one).ToAffine()
	if !p.X.Equal(&Generator.X) || !p.Y.Equal(&Generator.Y) {
		t.Fatal("1*G != G")
	}
}

func TestAddMatchesDoubleOnEqualPoints(t *testing.T) {
	var g Jacobian
	g.fromAffine(&Generator)

	var viaAdd, viaDouble Jacobian
	Add(&viaAdd, &g, &g)
	Double(&viaDouble, &g)

	a1 := viaAdd.ToAffine()
	a2 := viaDouble.ToAffine()
	if !a1.X.Equal(&a2.X) || !a1.Y.Equal(&a2.Y) {
		t.Fatal("Add(P,P) != Double(P)")
	}
}

func TestScalarMultSumsMatch(t *testing.T) {
	var three [48]byte
	three[47] = 3
	var two [48]byte
	two[47] = 2
	var one [48]byte
	one[47] = 1

	p3 := ScalarBaseMult(three)
	p2 := ScalarBaseMult(two)
	p1 := ScalarBaseMult(one)

	var sum Jacobian
	Add(&sum, &p2, &p1)
	sumAff := sum.ToAffine()
	p3Aff := p3.ToAffine()

	if !sumAff.X.Equal(&p3Aff.X) || !sumAff.Y.Equal(&p3Aff.Y) {
		t.Fatal("2*G + 1*G != 3*G")
	}
}

func TestAddOfPointAndItsNegativeIsIdentity(t *testing.T) {
	var g Jacobian
	g.fromAffine(&Generator)

	var neg Jacobian
	neg.X = Generator.X
	neg.Y = Generator.Y
	neg.Y.Neg(&neg.Y)
	neg.Z = g.Z

	var sum Jacobian
	Add(&sum, &g, &neg)
	if !sum.isInfinity() {
		t.Fatal("G + (-G) did not yield the point at infinity")
	}
}

func TestScalarMultByOrderIsIdentity(t *testing.T) {
	// NIST P-384 group order n. k*G for k == n must return O; the
	// double-and-add-always ladder passes through an intermediate state
	// where 2*acc == -G along the way, exercising Add's same-x/opposite-y
	// case end to end.
	order := [48]byte{
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
		0xc7, 0x63, 0x4d, 0x81, 0xf4, 0x37, 0x2d, 0xdf,
		0x58, 0x1a, 0x0d, 0xb2, 0x48, 0xb0, 0xa7, 0x7a,
		0xec, 0xec, 0x19, 0x6a, 0xcc, 0xc5, 0x29, 0x73,
	}
	p := ScalarBaseMult(order)
	if !p.isInfinity() {
		t.Fatal("n*G did not yield the point at infinity")
	}
}

func TestEncodeDecodeUncompressed(t *testing.T) {
	enc := EncodeUncompressed(&Generator)
	dec, err := DecodeUncompressed(enc)
	if err != nil {
		t.Fatal(err)
	}
	if !dec.X.Equal(&Generator.X) || !dec.Y.Equal(&Generator.Y) {
		t.Fatal("decode(encode(G)) != G")
	}
}
