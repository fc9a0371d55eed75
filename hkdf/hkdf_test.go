package hkdf

import (
	"bytes"
	"encoding/hex"
	"hash"
	"testing"

	"coreprim.dev/sha256"
)

func newSHA256() hash.Hash { return sha256.New() }

// RFC 5869 §A.1, Test Case 1 (SHA-256, 22-byte IKM, 13-byte salt, L=42).
func TestRFC5869TestCase1(t *testing.T) {
	salt, _ := hex.DecodeString("000102030405060708090a0b0c")
	ikm := bytes.Repeat([]byte{0x0b}, 22)
	info, _ := hex.DecodeString("f0f1f2f3f4f5f6f7f8f9")

	prk := Extract(newSHA256, salt, ikm)
	wantPRK, _ := hex.DecodeString("077709362c2e32df0ddc3f0dc47bba6390b6c73bb50f9c3122ec844ad7c2b3e5")
	if !bytes.Equal(prk, wantPRK) {
		t.Fatalf("PRK mismatch: got %x want %x", prk, wantPRK)
	}

	okm := Expand(newSHA256, prk, info, 42)
	wantOKM, _ := hex.DecodeString("3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5b" +
		"f34007208d5b887185865")
	if !bytes.Equal(okm, wantOKM) {
		t.Fatalf("OKM mismatch: got %x want %x", okm, wantOKM)
	}

	derived := Derive(newSHA256, salt, ikm, info, 42)
	if !bytes.Equal(derived, wantOKM) {
		t.Fatalf("Derive mismatch: got %x want %x", derived, wantOKM)
	}
}

func TestExtractWithNoSaltUsesZeroFilled(t *testing.T) {
	ikm := []byte("input keying material")
	a := Extract(newSHA256, nil, ikm)
	b := Extract(newSHA256, make([]byte, 32), ikm)
	if !bytes.Equal(a, b) {
		t.Fatal("nil salt should behave as a zero-filled salt of the hash size")
	}
}

func TestExpandProducesRequestedLength(t *testing.T) {
	prk := Extract(newSHA256, nil, []byte("secret"))
	for _, n := range []int{1, 31, 32, 33, 100} {
		out := Expand(newSHA256, prk, []byte("ctx"), n)
		if len(out) != n {
			t.Fatalf("Expand(%d): got length %d", n, len(out))
		}
	}
}
