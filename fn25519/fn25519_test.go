package fn25519

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestAddSubRoundTrip(t *testing.T) {
	var zero [32]byte
	a, err := FromLEBytes(zero)
	if err != nil {
		t.Fatal(err)
	}
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
	x, err := FromLEBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	var inv, prod Elem
	inv.Inverse(&x)
	prod.Mul(&x, &inv)
	one := One()
	if !prod.Equal(&one) {
		t.Fatal("x * x^-1 != 1")
	}
}

func TestFromLEBytesRejectsOutOfRange(t *testing.T) {
	// n_25519 itself, little-endian, must be rejected (valid range is [0, n)).
	b := modulusLEBytes()
	if _, err := FromLEBytes(b); err == nil {
		t.Fatal("expected n_25519 itself to be rejected as out of range")
	}
}

func modulusLEBytes() [32]byte {
	var b [32]byte
	for i := 0; i < Limbs; i++ {
		w := modulus[i]
		for j := 0; j < 8; j++ {
			b[i*8+j] = byte(w)
			w >>= 8
		}
	}
	return b
}

func TestBytesRoundTrip(t *testing.T) {
	var b [32]byte
	b[0] = 0x12
	b[31] = 0x10 // keep the top byte small so the value stays below n_25519
	e, err := FromLEBytes(b)
	if err != nil {
		t.Fatal(err)
	}
	out := e.ToLEBytes()
	if out != b {
		t.Fatalf("byte round trip mismatch: got %x want %x", out, b)
	}
}

// Cross-checked against an independent Python reference implementation of
// Horner's-method reduction modulo n_25519.
func TestReduceWideLEKnownVector(t *testing.T) {
	var wide [64]byte
	for i := range wide {
		wide[i] = byte(i + 1)
	}
	got := ReduceWideLE(wide).ToLEBytes()

	want, err := hex.DecodeString("c91e0907d114fd83" + "c1edc396490bb2da" + "fa43c19815b0354e" + "70dc80c317c3cb0a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got[:], want) {
		t.Fatalf("ReduceWideLE mismatch: got %x want %x", got, want)
	}
}

func TestReduceWideLEOfZeroIsZero(t *testing.T) {
	var wide [64]byte
	got := ReduceWideLE(wide)
	if !got.IsZero() {
		t.Fatal("reducing the zero digest should yield zero")
	}
}
