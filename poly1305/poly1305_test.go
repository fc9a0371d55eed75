package poly1305

import (
	"bytes"
	"encoding/hex"
	"testing"
)

// RFC 8439 §2.5.2 test vector.
func TestRFC8439Vector(t *testing.T) {
	key, err := hex.DecodeString("85d6be7857556d337f4452fe42d506a80103808afb0db2fd4abff6af4149f51b")
	if err != nil {
		t.Fatal(err)
	}
	var k [32]byte
	copy(k[:], key)

	msg := []byte("Cryptographic Forum Research Group")
	tag := Sum(&k, msg)

	want, err := hex.DecodeString("a8061dc1305136c6c22b8baf0c0127a9")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(tag[:], want) {
		t.Fatalf("tag mismatch: got %x want %x", tag, want)
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	var k [32]byte
	for i := range k {
		k[i] = byte(i)
	}
	msg := bytes.Repeat([]byte("the quick brown fox "), 5)

	oneShot := Sum(&k, msg)

	m := New(&k)
	m.Write(msg[:10])
	m.Write(msg[10:])
	var streamed [TagSize]byte
	copy(streamed[:], m.Sum(nil))

	if oneShot != streamed {
		t.Fatalf("streaming tag differs from one-shot: %x vs %x", streamed, oneShot)
	}
}
