package ghash

import (
	"bytes"
	"testing"
)

func TestEmptyInputIsZero(t *testing.T) {
	var h [16]byte
	g := New(h)
	sum := g.Sum()
	var zero [16]byte
	if sum != zero {
		t.Fatalf("GHASH of nothing with H=0 should be 0, got %x", sum)
	}
}

func TestPartialBlockBuffering(t *testing.T) {
	var h [16]byte
	h[0] = 0x66
	g1 := New(h)
	g1.Write([]byte("abcdefghijklmnop"))

	g2 := New(h)
	g2.Write([]byte("abcdefgh"))
	g2.Write([]byte("ijklmnop"))

	if g1.Sum() != g2.Sum() {
		t.Fatal("split writes produced a different hash than one write")
	}
}

func TestSumDoesNotMutateAccumulator(t *testing.T) {
	var h [16]byte
	h[0] = 0x11
	g := New(h)
	g.Write([]byte("partial"))
	a := g.Sum()
	b := g.Sum()
	if a != b {
		t.Fatal("calling Sum twice changed the result")
	}
	if !bytes.Equal(a[:], b[:]) {
		t.Fatal("Sum is not idempotent")
	}
}
