package sha256

import (
	"bytes"
	"encoding/hex"
	"testing"
)

func TestKnownVectors(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"},
		{"abc", "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"},
	}
	for _, c := range cases {
		got := Sum256([]byte(c.in))
		want, err := hex.DecodeString(c.want)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(got[:], want) {
			t.Fatalf("sha256(%q): got %x want %x", c.in, got, want)
		}
	}
}

func TestStreamingMatchesOneShot(t *testing.T) {
	msg := bytes.Repeat([]byte("block aligned input "), 10)
	oneShot := Sum256(msg)

	d := New()
	d.Write(msg[:7])
	d.Write(msg[7:64])
	d.Write(msg[64:])
	var streamed [Size]byte
	copy(streamed[:], d.Sum(nil))

	if oneShot != streamed {
		t.Fatalf("streaming digest differs: %x vs %x", streamed, oneShot)
	}
}
