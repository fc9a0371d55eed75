// Package rsa implements the textbook RSA primitive (modular
// exponentiation, no padding scheme) as a generic consumer of the
// bignum Montgomery machinery: modular exponentiation is the
// constant-time, performance-sensitive operation; key generation is
// a one-time, non-secret-dependent-timing-tolerant setup step and
// uses math/big directly, the same way crypto/rsa's own key
// generation does.
package rsa

import (
	"crypto/rand"
	"io"
	"math/big"

	"coreprim.dev/bignum"
	"coreprim.dev/coreerr"
)

const defaultE = 65537

// PublicKey is an RSA public key together with its precomputed
// Montgomery parameters for exponentiation modulo N.
type PublicKey struct {
	N      *big.Int
	E      int
	limbs  int
	params *bignum.MontParams
}

// PrivateKey is an RSA private key. D is used directly for
// exponentiation; no CRT optimization is implemented.
type PrivateKey struct {
	PublicKey
	D *big.Int
}

func newPublicKey(n *big.Int, e int) *PublicKey {
	limbs := (n.BitLen() + 63) / 64
	mod := bigToLimbs(n, limbs)
	return &PublicKey{N: n, E: e, limbs: limbs, params: bignum.NewMontParams(mod)}
}

// GenerateKey generates a fresh RSA key pair of the given bit size
// using two random primes and public exponent 65537, mirroring
// crypto/rsa.GenerateKey's shape.
func GenerateKey(random io.Reader, bits int) (*PrivateKey, error) {
	if random == nil {
		random = rand.Reader
	}
	for {
		p, err := rand.Prime(random, bits/2)
		if err != nil {
			return nil, err
		}
		q, err := rand.Prime(random, bits-bits/2)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		pMinus1 := new(big.Int).Sub(p, big.NewInt(1))
		qMinus1 := new(big.Int).Sub(q, big.NewInt(1))
		phi := new(big.Int).Mul(pMinus1, qMinus1)

		e := big.NewInt(defaultE)
		d := new(big.Int).ModInverse(e, phi)
		if d == nil {
			continue
		}

		pub := newPublicKey(n, defaultE)
		return &PrivateKey{PublicKey: *pub, D: d}, nil
	}
}

// Encrypt computes m^E mod N for a message already reduced mod N.
func Encrypt(pub *PublicKey, m []byte) ([]byte, error) {
	return modExp(pub.N, pub.limbs, pub.params, m, big.NewInt(int64(pub.E)).Bytes(), pub.N.BitLen())
}

// Decrypt computes c^D mod N.
func Decrypt(priv *PrivateKey, c []byte) ([]byte, error) {
	return modExp(priv.N, priv.limbs, priv.params, c, priv.D.Bytes(), priv.N.BitLen())
}

func modExp(n *big.Int, limbs int, params *bignum.MontParams, in, exponent []byte, bitLen int) ([]byte, error) {
	x := new(big.Int).SetBytes(in)
	if x.Cmp(n) >= 0 {
		return nil, coreerr.ErrOutOfRange
	}

	xLimbs := bigToLimbs(x, limbs)
	var xMont = make([]uint64, limbs)
	bignum.ToMont(xMont, xLimbs, params)

	out := make([]uint64, limbs)
	bignum.ModPow(out, xMont, exponent, bitLen, params)

	var std = make([]uint64, limbs)
	bignum.Demont(std, out, params)
	return limbsToBytes(std, (n.BitLen()+7)/8), nil
}

func bigToLimbs(x *big.Int, limbs int) []uint64 {
	buf := x.Bytes()
	out := make([]uint64, limbs)
	// buf is big-endian; fold it into little-endian 64-bit limbs.
	for i := 0; i < len(buf); i++ {
		b := buf[len(buf)-1-i]
		out[i/8] |= uint64(b) << (8 * uint(i%8))
	}
	return out
}

func limbsToBytes(limbs []uint64, size int) []byte {
	out := make([]byte, size)
	for i := 0; i < size; i++ {
		out[size-1-i] = byte(limbs[i/8] >> (8 * uint(i%8)))
	}
	return out
}
