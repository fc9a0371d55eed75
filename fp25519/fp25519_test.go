package fp25519

import "testing"

func TestAddSubRoundTrip(t *testing.T) {
	var b [32]byte
	a := FromLEBytes(b)
	one := One()
	var sum Elem
	sum.Add(&a, &one)
	var back Elem
	back.Sub(&sum, &one)
	if !back.Equal(&a) {
		t.Fatal("add/sub round trip failed")
	}
}

func TestMulInverse(t *testing.T) {
	var b [32]byte
	b[0] = 9
	x := FromLEBytes(b)
	var inv, prod Elem
	inv.Inverse(&x)
	prod.Mul(&x, &inv)
	one := One()
	if !prod.Equal(&one) {
		t.Fatal("x * x^-1 != 1")
	}
}

func TestFromLEBytesMasksTopBit(t *testing.T) {
	var b [32]byte
	b[31] = 0xff // top bit must be cleared per RFC 7748
	e := FromLEBytes(b)
	var expect [32]byte
	expect[31] = 0x7f
	want := FromLEBytes(expect)
	if !e.Equal(&want) {
		t.Fatal("FromLEBytes did not mask the top bit consistently")
	}
}

func TestMulSmallMatchesRepeatedAdd(t *testing.T) {
	var b [32]byte
	b[0] = 5
	x := FromLEBytes(b)

	var viaSmall Elem
	viaSmall.MulSmall(&x, 3)

	var viaAdd Elem
	viaAdd.Add(&x, &x)
	viaAdd.Add(&viaAdd, &x)

	if !viaSmall.Equal(&viaAdd) {
		t.Fatal("MulSmall(x,3) != x+x+x")
	}
}
