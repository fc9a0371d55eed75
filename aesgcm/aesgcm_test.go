package aesgcm

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// NIST SP 800-38D Test Case 1: empty plaintext, empty AAD, all-zero key/IV.
func TestNISTTestCase1EmptyInput(t *testing.T) {
	c, err := New(make([]byte, 16))
	if err != nil {
		t.Fatal(err)
	}
	var nonce [NonceSize]byte

	out := c.Seal(nil, nonce, nil, nil)
	want, err := hex.DecodeString("58e2fccefa7e3061367f1d57a4e7455a")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, want) {
		t.Fatalf("tag mismatch: got %x want %x", out, want)
	}
}

func TestSealOpenRoundTrip(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	c, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	var nonce [NonceSize]byte
	for i := range nonce {
		nonce[i] = byte(i * 2)
	}
	pt := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("header")

	sealed := c.Seal(nil, nonce, pt, aad)
	opened, err := c.Open(nil, nonce, sealed, aad)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opened, pt) {
		t.Fatalf("round trip mismatch: got %q want %q", opened, pt)
	}
}

func TestOpenRejectsTamperedCiphertext(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	var nonce [NonceSize]byte
	sealed := c.Seal(nil, nonce, []byte("hello world"), nil)
	sealed[0] ^= 1

	if _, err := c.Open(nil, nonce, sealed, nil); err == nil {
		t.Fatal("expected tampered ciphertext to be rejected")
	}
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	key := make([]byte, 16)
	c, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	var nonce [NonceSize]byte
	sealed := c.Seal(nil, nonce, []byte("hello world"), []byte("context-a"))

	if _, err := c.Open(nil, nonce, sealed, []byte("context-b")); err == nil {
		t.Fatal("expected mismatched AAD to be rejected")
	}
}
