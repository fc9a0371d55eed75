package aes

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// FIPS 197 Appendix B/C AES-128 known-answer test.
func TestFIPS197AES128KnownAnswer(t *testing.T) {
	key, _ := hex.DecodeString("000102030405060708090a0b0c0d0e0f")
	pt, _ := hex.DecodeString("00112233445566778899aabbccddeeff")
	want, _ := hex.DecodeString("69c4e0d86a7b0430d8cdb78070b4c55a")

	c, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	ct := make([]byte, 16)
	c.Encrypt(ct, pt)
	if !bytes.Equal(ct, want) {
		t.Fatalf("AES-128 mismatch: got %x want %x", ct, want)
	}
}

func TestRejectsBadKeySize(t *testing.T) {
	if _, err := New(make([]byte, 24)); err == nil {
		t.Fatal("expected AES-192 to be rejected")
	}
	if _, err := New(make([]byte, 10)); err == nil {
		t.Fatal("expected bad key size to be rejected")
	}
}

func TestAES256Accepted(t *testing.T) {
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	c, err := New(key)
	if err != nil {
		t.Fatal(err)
	}
	pt := make([]byte, 16)
	ct := make([]byte, 16)
	c.Encrypt(ct, pt)
	// encrypting the same block twice must be deterministic
	ct2 := make([]byte, 16)
	c.Encrypt(ct2, pt)
	if !bytes.Equal(ct, ct2) {
		t.Fatal("AES encryption is not deterministic")
	}
}
