package rsa

import (
	"bytes"
	"testing"
)

func TestGenerateEncryptDecryptRoundTrip(t *testing.T) {
	priv, err := GenerateKey(nil, 512)
	if err != nil {
		t.Fatal(err)
	}

	msg := []byte{0x01, 0x02, 0x03, 0x2a}
	ct, err := Encrypt(&priv.PublicKey, msg)
	if err != nil {
		t.Fatal(err)
	}
	pt, err := Decrypt(priv, ct)
	if err != nil {
		t.Fatal(err)
	}

	// Decrypt returns a fixed-size, zero-padded buffer the width of N;
	// the message occupies its low-order bytes.
	got := pt[len(pt)-len(msg):]
	if !bytes.Equal(got, msg) {
		t.Fatalf("round trip mismatch: got %x want %x", got, msg)
	}
}

func TestEncryptRejectsMessageOutOfRange(t *testing.T) {
	priv, err := GenerateKey(nil, 512)
	if err != nil {
		t.Fatal(err)
	}
	tooBig := priv.N.Bytes()
	if _, err := Encrypt(&priv.PublicKey, tooBig); err == nil {
		t.Fatal("expected message >= N to be rejected")
	}
}

func TestDifferentKeysProduceDifferentCiphertexts(t *testing.T) {
	privA, err := GenerateKey(nil, 512)
	if err != nil {
		t.Fatal(err)
	}
	privB, err := GenerateKey(nil, 512)
	if err != nil {
		t.Fatal(err)
	}
	if privA.N.Cmp(privB.N) == 0 {
		t.Fatal("two independently generated keys produced the same modulus")
	}
}
