package sha512

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestSHA512KnownVector(t *testing.T) {
	got := Sum512([]byte("abc"))
	want, err := hex.DecodeString("ddaf35a193617abacc417349ae20413112e6fa4e89a97ea20a9eeee64b55d39" +
		"a2192992a274fc1a836ba3c23a3feebbd454d4423643ce80e2a9ac94fa54ca49f")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got[:], want) {
		t.Fatalf("sha512(abc): got %x want %x", got, want)
	}
}

func TestSHA384KnownVector(t *testing.T) {
	got := Sum384([]byte("abc"))
	want, err := hex.DecodeString("cb00753f45a35e8bb5a03d699ac65007272c32ab0eded1631a8b605a43ff5be" +
		"d8086072ba1e7cc2358baeca134c825a7")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got[:], want) {
		t.Fatalf("sha384(abc): got %x want %x", got, want)
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	msg := bytes.Repeat([]byte("sixteen byte blk"), 16)
	oneShot := Sum512(msg)

	d := New()
	d.Write(msg[:50])
	d.Write(msg[50:])
	var streamed [Size512]byte
	copy(streamed[:], d.Sum(nil))

	if oneShot != streamed {
		t.Fatalf("streaming digest differs: %x vs %x", streamed, oneShot)
	}
}
