package signing

import (
	"crypto/rand"

	"coreprim.dev/curve/x25519"
	"coreprim.dev/fn25519"
	"coreprim.dev/sha512"
)

// X25519KeyPair is an X25519 Diffie-Hellman key pair.
type X25519KeyPair struct {
	Private [32]byte
	Public  [32]byte
}

// GenerateX25519Key draws a random clamped-on-use X25519 private key
// and derives the corresponding public key.
func GenerateX25519Key() (*X25519KeyPair, error) {
	var priv [32]byte
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, err
	}
	pub, err := x25519.BaseMult(priv)
	if err != nil {
		return nil, err
	}
	return &X25519KeyPair{Private: priv, Public: pub}, nil
}

// X25519 computes the shared secret for priv against a peer's public
// key, rejecting the all-zero low-order-point output per RFC 7748 §6.1.
func X25519(priv, peerPublic [32]byte) ([32]byte, error) {
	return x25519.X(priv, peerPublic)
}

// DeriveX25519KeyFromSeed deterministically expands an arbitrary-length
// seed into an X25519 key pair: the seed is hashed with SHA-512 and the
// digest is reduced modulo n_25519 to obtain a uniformly distributed
// scalar, mirroring the seed-expansion step of edwards25519 key
// derivation (RFC 8032 §5.1.5). The resulting scalar is clamped the same
// way any other X25519 private key is, by x25519.X/BaseMult.
func DeriveX25519KeyFromSeed(seed []byte) (*X25519KeyPair, error) {
	digest := sha512.Sum512(seed)
	scalar := fn25519.ReduceWideLE(digest).ToLEBytes()

	pub, err := x25519.BaseMult(scalar)
	if err != nil {
		return nil, err
	}
	return &X25519KeyPair{Private: scalar, Public: pub}, nil
}
