package chacha20

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// RFC 8439 §2.4.2 test vector.
func TestRFC8439EncryptionVector(t *testing.T) {
	var key [KeySize]byte
	for i := range key {
		key[i] = byte(i)
	}
	nonce, err := hex.DecodeString("000000000000004a00000000")
	if err != nil {
		t.Fatal(err)
	}
	var n [NonceSize]byte
	copy(n[:], nonce)

	pt := []byte("Ladies and Gentlemen of the class of '99: If I could offer you only one tip for the future, sunscreen would be it.")

	c := New(key, n, 1)
	ct := make([]byte, len(pt))
	c.XORKeyStream(ct, pt)

	want, err := hex.DecodeString("6e2e359a2568f98041ba0728dd0d6981e97e7aec1d4360c20a27afccfd9fae0b" +
		"f91b65c5524733ab8f593dabcd62b3571639d624e65152ab8f530c359f0861d8" +
		"07ca0dbf500d6a6156a38e088a22b65e52bc514d16ccf806818ce91ab7793736" +
		"5af90bbf74a35be6b40b8eedf2785e42874d")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(ct, want) {
		t.Fatalf("ciphertext mismatch:\ngot  %x\nwant %x", ct, want)
	}
}

func TestXORKeyStreamIsInvolution(t *testing.T) {
	var key [KeySize]byte
	var n [NonceSize]byte
	for i := range key {
		key[i] = byte(i * 7)
	}
	pt := bytes.Repeat([]byte("round trip through the keystream"), 4)

	enc := New(key, n, 0)
	ct := make([]byte, len(pt))
	enc.XORKeyStream(ct, pt)

	dec := New(key, n, 0)
	back := make([]byte, len(pt))
	dec.XORKeyStream(back, ct)

	if !bytes.Equal(back, pt) {
		t.Fatal("decrypting ciphertext did not recover plaintext")
	}
}

func TestXChaCha20RoundTrip(t *testing.T) {
	var key [KeySize]byte
	var n [NonceSizeX]byte
	for i := range key {
		key[i] = byte(i)
	}
	for i := range n {
		n[i] = byte(i * 3)
	}
	pt := []byte("extended nonce stream cipher round trip test")

	enc := NewX(key, n, 0)
	ct := make([]byte, len(pt))
	enc.XORKeyStream(ct, pt)

	dec := NewX(key, n, 0)
	back := make([]byte, len(pt))
	dec.XORKeyStream(back, ct)

	if !bytes.Equal(back, pt) {
		t.Fatal("XChaCha20 decrypt did not recover plaintext")
	}
}
