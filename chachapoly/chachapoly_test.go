package chachapoly

import (
	"bytes"
	"testing"

	"coreprim.dev/chacha20"
)

func TestSealOpenRoundTrip(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range nonce {
		nonce[i] = byte(i * 5)
	}
	pt := []byte("the quick brown fox jumps over the lazy dog")
	aad := []byte("associated data")

	sealed := Seal(nil, key, nonce, pt, aad)
	opened, err := Open(nil, key, nonce, sealed, aad)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opened, pt) {
		t.Fatalf("round trip mismatch: got %q want %q", opened, pt)
	}
}

func TestOpenRejectsTamperedTag(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	sealed := Seal(nil, key, nonce, []byte("payload"), nil)
	sealed[len(sealed)-1] ^= 1

	if _, err := Open(nil, key, nonce, sealed, nil); err == nil {
		t.Fatal("expected tampered tag to be rejected")
	}
}

func TestOpenRejectsWrongAAD(t *testing.T) {
	var key [KeySize]byte
	var nonce [NonceSize]byte
	sealed := Seal(nil, key, nonce, []byte("payload"), []byte("ctx-a"))

	if _, err := Open(nil, key, nonce, sealed, []byte("ctx-b")); err == nil {
		t.Fatal("expected mismatched AAD to be rejected")
	}
}

func TestXChaCha20Poly1305RoundTrip(t *testing.T) {
	var key [KeySize]byte
	var nonce [chacha20.NonceSizeX]byte
	for i := range key {
		key[i] = byte(i * 3)
	}
	for i := range nonce {
		nonce[i] = byte(i * 7)
	}
	pt := []byte("extended nonce AEAD round trip")

	sealed := SealX(nil, key, nonce, pt, nil)
	opened, err := OpenX(nil, key, nonce, sealed, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(opened, pt) {
		t.Fatalf("XChaCha20-Poly1305 round trip mismatch: got %q want %q", opened, pt)
	}
}
